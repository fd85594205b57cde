package chat

import (
	"sort"
	"strings"
	"time"

	"verdant/internal/api"
	"verdant/internal/timefmt"
)

// Thread owns the message history of the currently open conversation. The
// list controller remains the source of truth for conversation metadata;
// this controller only tracks the visible thread and the peer's presence.
type Thread struct {
	conversationID string
	peer           api.User
	hasPeer        bool
	gen            uint64
	messages       []api.Message
	lastActive     time.Time
	loading        bool
}

func NewThread() *Thread {
	return &Thread{}
}

// Select opens a target and resets the visible list and the tracked
// last-active value to the target's last-known value. A target that came
// from search results has no conversation id yet.
func (t *Thread) Select(conversationID string, peer api.User) {
	t.conversationID = conversationID
	t.peer = peer
	t.hasPeer = true
	t.messages = nil
	t.lastActive = peer.LastActive
	t.loading = false
	t.gen++
}

// Clear closes the thread entirely.
func (t *Thread) Clear() {
	*t = Thread{gen: t.gen + 1}
}

func (t *Thread) ConversationID() string { return t.conversationID }

func (t *Thread) Messages() []api.Message { return t.messages }

func (t *Thread) Loading() bool { return t.loading }

func (t *Thread) Peer() (api.User, bool) { return t.peer, t.hasPeer }

func (t *Thread) LastActive() time.Time { return t.lastActive }

// BeginFetch starts loading the full history for the open target. With no
// conversation id or no peer there is nothing to request: the list clears
// and no fetch goes out.
func (t *Thread) BeginFetch() (gen uint64, fetch bool) {
	t.gen++
	if t.conversationID == "" || !t.hasPeer {
		t.messages = nil
		return t.gen, false
	}
	t.loading = true
	return t.gen, true
}

// SetMessages replaces the full message list. Responses from a superseded
// fetch are discarded, so switching targets while a fetch is in flight can
// never apply stale history.
func (t *Thread) SetMessages(gen uint64, msgs []api.Message) bool {
	if gen != t.gen {
		return false
	}
	t.messages = msgs
	t.loading = false
	return true
}

// FetchFailed degrades to an empty thread.
func (t *Thread) FetchFailed(gen uint64) {
	if gen != t.gen {
		return
	}
	t.messages = nil
	t.loading = false
}

// HandleIncoming appends a pushed message only when its sender or receiver
// is the open peer; messages for other peers belong to the list controller.
func (t *Thread) HandleIncoming(msg api.Message) bool {
	if !t.hasPeer {
		return false
	}
	if msg.SenderID != t.peer.ID && msg.ReceiverID != t.peer.ID {
		return false
	}
	t.messages = append(t.messages, msg)
	return true
}

// HandleDisconnect updates the tracked last-active value only when the event
// names the open peer.
func (t *Thread) HandleDisconnect(userID string, lastActive time.Time) bool {
	if !t.hasPeer || userID != t.peer.ID {
		return false
	}
	t.lastActive = lastActive
	return true
}

// ValidateSend rejects whitespace-only content and sends without a selected
// peer before any request is issued.
func (t *Thread) ValidateSend(content string) bool {
	return t.hasPeer && strings.TrimSpace(content) != ""
}

// ApplySent appends the server-confirmed message and reports whether this
// thread had no conversation id, in which case the caller refetches the
// conversation list so the newly created conversation appears.
func (t *Thread) ApplySent(msg api.Message) (newConversation bool) {
	t.messages = append(t.messages, msg)
	return t.conversationID == ""
}

// StatusLabel is the peer presence line: "online" while the peer id is in
// the active set, otherwise the freshest known last-active time.
func (t *Thread) StatusLabel(activeUsers []string) string {
	if t.hasPeer {
		for _, id := range activeUsers {
			if id == t.peer.ID {
				return "online"
			}
		}
	}
	return "last seen at " + timefmt.Clock(t.lastActive)
}

// Groups partitions the visible messages for display.
func (t *Thread) Groups() []MessageGroup {
	return GroupByDate(t.messages)
}

// MessageGroup is one calendar day of a thread.
type MessageGroup struct {
	Date     time.Time
	Messages []api.Message
}

// GroupByDate partitions messages by calendar date in the viewer's local
// zone, earliest day first. Within a group the input order is kept: history
// arrives chronological and realtime appends are always newest-last.
func GroupByDate(msgs []api.Message) []MessageGroup {
	var groups []MessageGroup
	index := make(map[string]int)
	for _, m := range msgs {
		y, mo, d := m.CreatedAt.Local().Date()
		day := time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
		key := day.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MessageGroup{Date: day})
		}
		groups[i].Messages = append(groups[i].Messages, m)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date.Before(groups[j].Date)
	})
	return groups
}
