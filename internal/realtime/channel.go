// Package realtime is the push side of the client: one websocket per
// authenticated identity, delivering named JSON events for live messages and
// presence. The request/response API lives in internal/api.
package realtime

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event names pushed by the backend.
const (
	EventActiveUsers      = "fetchActiveUsers"
	EventMessage          = "message"
	EventUserDisconnected = "userDisconnected"
)

// Envelope is the wire frame: a named event and its payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Disconnect is the payload of a userDisconnected event.
type Disconnect struct {
	UserID     string    `json:"userId"`
	LastActive time.Time `json:"lastActive"`
}

// Handler receives the raw payload of one event occurrence. Handlers run on
// the channel's reader goroutine, one at a time.
type Handler func(data json.RawMessage)

// Channel is the single event connection for a session. Only its owner may
// tear it down; consumers attach named listeners and must detach them on
// their own teardown so a re-opened screen never handles an event twice.
type Channel struct {
	conn *websocket.Conn
	done chan struct{}

	mu        sync.Mutex
	listeners map[string]map[string]Handler
	readErr   error
}

// Dial connects the event channel. The identity id travels as the "id" query
// parameter so the backend can attribute presence.
func Dial(ctx context.Context, wsURL string, userID string, tlsConf *tls.Config) (*Channel, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("id", userID)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{
		TLSClientConfig:  tlsConf,
		HandshakeTimeout: 10 * time.Second,
	}
	conn, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return nil, err
	}
	c := &Channel{
		conn:      conn,
		done:      make(chan struct{}),
		listeners: make(map[string]map[string]Handler),
	}
	go c.readLoop()
	return c, nil
}

// On attaches fn to a named event and returns the handle to pass to Off.
func (c *Channel) On(event string, fn Handler) string {
	handle := uuid.NewString()
	c.mu.Lock()
	if c.listeners[event] == nil {
		c.listeners[event] = make(map[string]Handler)
	}
	c.listeners[event][handle] = fn
	c.mu.Unlock()
	return handle
}

// Off detaches a listener. Unknown handles are ignored.
func (c *Channel) Off(event string, handle string) {
	c.mu.Lock()
	if m := c.listeners[event]; m != nil {
		delete(m, handle)
	}
	c.mu.Unlock()
}

// Done is closed when the connection is gone, whether by Close or by a read
// failure. There is no reconnect here; the owner dials again when an
// identity is next present.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Err reports why the read loop stopped, once Done is closed.
func (c *Channel) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readErr
}

// Close tears the connection down immediately.
func (c *Channel) Close() error {
	return c.conn.Close()
}

func (c *Channel) readLoop() {
	defer close(c.done)
	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			c.mu.Lock()
			c.readErr = err
			c.mu.Unlock()
			_ = c.conn.Close()
			return
		}
		c.dispatch(env)
	}
}

func (c *Channel) dispatch(env Envelope) {
	c.mu.Lock()
	fns := make([]Handler, 0, len(c.listeners[env.Event]))
	for _, fn := range c.listeners[env.Event] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(env.Data)
	}
}
