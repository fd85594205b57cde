// Package chat holds the client-side synchronization logic: the conversation
// list controller, the message thread controller and the search debouncer.
// Controllers are plain state holders driven from the UI event loop; network
// results are handed back to them stamped with the generation of the fetch
// that produced them.
package chat

import (
	"strings"
	"time"

	"verdant/internal/api"
)

// DebounceDelay is how long a search query must sit unchanged before the
// directory lookup fires.
const DebounceDelay = 500 * time.Millisecond

// Debouncer tracks the latest keystroke. Each Set supersedes the previous
// pending timer; a timer that comes back with a stale seq simply never fires.
type Debouncer struct {
	seq   int
	value string
}

// Set records a new input value and returns the seq the armed timer must
// carry back to Fire.
func (d *Debouncer) Set(value string) int {
	d.seq++
	d.value = value
	return d.seq
}

// Fire reports whether the timer carrying seq is still the live one and, if
// so, the query to run. Blank queries never fire.
func (d *Debouncer) Fire(seq int) (string, bool) {
	if seq != d.seq || strings.TrimSpace(d.value) == "" {
		return "", false
	}
	return d.value, true
}

// ListState is the fetch lifecycle of the conversation list.
type ListState int

const (
	ListIdle ListState = iota
	ListLoading
	ListReady
)

// List owns the canonical in-memory conversation collection for the current
// session. While a search query is non-empty the rendered list is search
// results instead; the two view modes never merge.
type List struct {
	state    ListState
	gen      uint64
	convos   []api.Conversation
	results  []api.User
	query    string
	debounce Debouncer
}

func NewList() *List {
	return &List{}
}

func (l *List) State() ListState { return l.state }

func (l *List) Conversations() []api.Conversation { return l.convos }

func (l *List) SearchResults() []api.User { return l.results }

func (l *List) Query() string { return l.query }

// Searching reports whether the list renders search results rather than
// conversations.
func (l *List) Searching() bool {
	return l.query != ""
}

// BeginFetch marks a refetch and returns the generation to stamp on the
// response. Switching into loading is re-entrant: each explicit refetch
// request passes through here.
func (l *List) BeginFetch() uint64 {
	l.state = ListLoading
	l.gen++
	return l.gen
}

// SetConversations applies a fetched collection wholesale, no merge with
// prior state. A response whose generation was superseded is discarded.
func (l *List) SetConversations(gen uint64, convos []api.Conversation) bool {
	if gen != l.gen {
		return false
	}
	l.convos = convos
	l.state = ListReady
	return true
}

// FetchFailed leaves the prior collection in place: stale but available.
func (l *List) FetchFailed(gen uint64) {
	if gen != l.gen {
		return
	}
	l.state = ListReady
}

// HandleIncoming merges a pushed message into the conversation whose
// participant pair is {senderId, receiverId}, prepending it and leaving every
// other conversation untouched. When no conversation matches, the new
// conversation must be materialized by the backend: the caller performs one
// full refetch and nothing is applied locally.
func (l *List) HandleIncoming(msg api.Message) (refetch bool) {
	for i := range l.convos {
		if l.convos[i].HasPair(msg.SenderID, msg.ReceiverID) {
			l.convos[i].Messages = append([]api.Message{msg}, l.convos[i].Messages...)
			return false
		}
	}
	return true
}

// ApplyLastMessage refreshes the last-message preview after a send by
// replacing the matching conversation's list with just the new message. This
// is display state, corrected by the next refetch, not authoritative history.
func (l *List) ApplyLastMessage(msg api.Message) {
	for i := range l.convos {
		if l.convos[i].HasPair(msg.SenderID, msg.ReceiverID) {
			l.convos[i].Messages = []api.Message{msg}
		}
	}
}

// SetQuery records a search keystroke. An empty query clears results
// instantly and arms nothing; otherwise the caller schedules a DebounceDelay
// timer carrying the returned seq.
func (l *List) SetQuery(value string) (seq int, armed bool) {
	l.query = value
	if strings.TrimSpace(value) == "" {
		l.results = nil
		l.debounce.Set("")
		return 0, false
	}
	return l.debounce.Set(value), true
}

// QueryReady reports whether the debounce timer carrying seq should fire.
func (l *List) QueryReady(seq int) (string, bool) {
	return l.debounce.Fire(seq)
}

func (l *List) SetSearchResults(users []api.User) {
	l.results = users
}

// ConversationWith returns the conversation whose other participant is
// userID. A search-result target without one is a not-yet-existing
// conversation.
func (l *List) ConversationWith(userID string) (api.Conversation, bool) {
	for _, c := range l.convos {
		if c.OtherUser.ID == userID {
			return c, true
		}
	}
	return api.Conversation{}, false
}
