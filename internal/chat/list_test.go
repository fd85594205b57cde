package chat

import (
	"testing"
	"time"

	"verdant/internal/api"
)

func msgAt(id, sender, receiver, content string, at time.Time) api.Message {
	return api.Message{ID: id, SenderID: sender, ReceiverID: receiver, Content: content, CreatedAt: at}
}

func conv(id string, a, b string, msgs ...api.Message) api.Conversation {
	return api.Conversation{
		ID:           id,
		Participants: []string{a, b},
		Messages:     msgs,
		OtherUser:    api.User{ID: b, Name: "peer-" + b},
	}
}

func readyList(t *testing.T, convos ...api.Conversation) *List {
	t.Helper()
	l := NewList()
	gen := l.BeginFetch()
	if !l.SetConversations(gen, convos) {
		t.Fatalf("initial SetConversations discarded")
	}
	return l
}

func TestHandleIncomingPrependsToMatchingPair(t *testing.T) {
	base := time.Now()
	old := msgAt("m1", "me", "bob", "old", base.Add(-time.Hour))
	l := readyList(t,
		conv("c1", "me", "bob", old),
		conv("c2", "me", "carol"),
	)

	pushed := msgAt("m2", "bob", "me", "new", base)
	if refetch := l.HandleIncoming(pushed); refetch {
		t.Fatalf("existing pair must not trigger refetch")
	}

	convos := l.Conversations()
	if len(convos) != 2 || convos[0].ID != "c1" || convos[1].ID != "c2" {
		t.Fatalf("conversation set changed: %+v", convos)
	}
	got := convos[0].Messages
	if len(got) != 2 || got[0].ID != "m2" || got[1].ID != "m1" {
		t.Fatalf("expected prepend, got %+v", got)
	}
	if len(convos[1].Messages) != 0 {
		t.Fatalf("other conversation must stay untouched")
	}
}

func TestHandleIncomingUnknownPairRequestsRefetch(t *testing.T) {
	l := readyList(t, conv("c1", "me", "bob"))

	pushed := msgAt("m1", "dave", "me", "hi", time.Now())
	if refetch := l.HandleIncoming(pushed); !refetch {
		t.Fatalf("unknown pair must trigger refetch")
	}
	if len(l.Conversations()) != 1 || len(l.Conversations()[0].Messages) != 0 {
		t.Fatalf("no local conversation may be synthesized")
	}
}

func TestSetConversationsDiscardsStaleGeneration(t *testing.T) {
	l := NewList()
	stale := l.BeginFetch()
	live := l.BeginFetch()

	if l.SetConversations(stale, []api.Conversation{conv("old", "me", "bob")}) {
		t.Fatalf("stale generation must be discarded")
	}
	if !l.SetConversations(live, []api.Conversation{conv("new", "me", "carol")}) {
		t.Fatalf("live generation must apply")
	}
	if got := l.Conversations(); len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("unexpected collection: %+v", got)
	}
}

func TestFetchFailedKeepsPriorCollection(t *testing.T) {
	l := readyList(t, conv("c1", "me", "bob"))
	gen := l.BeginFetch()
	if l.State() != ListLoading {
		t.Fatalf("expected loading state")
	}
	l.FetchFailed(gen)
	if l.State() != ListReady {
		t.Fatalf("expected ready state after failure")
	}
	if got := l.Conversations(); len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("prior collection must survive a failed fetch: %+v", got)
	}
}

func TestApplyLastMessageReplacesPreview(t *testing.T) {
	base := time.Now()
	l := readyList(t,
		conv("c1", "me", "bob",
			msgAt("m1", "bob", "me", "one", base.Add(-2*time.Hour)),
			msgAt("m0", "me", "bob", "zero", base.Add(-3*time.Hour)),
		),
	)

	sent := msgAt("m2", "me", "bob", "latest", base)
	l.ApplyLastMessage(sent)

	got := l.Conversations()[0].Messages
	if len(got) != 1 || got[0].ID != "m2" {
		t.Fatalf("preview must be replaced with the new message only, got %+v", got)
	}
}

func TestSearchModeIsExclusive(t *testing.T) {
	l := readyList(t, conv("c1", "me", "bob"))

	if _, armed := l.SetQuery("bo"); !armed {
		t.Fatalf("non-empty query must arm the debounce timer")
	}
	l.SetSearchResults([]api.User{{ID: "u9", Name: "Bob"}})
	if !l.Searching() {
		t.Fatalf("expected search view mode")
	}

	if _, armed := l.SetQuery(""); armed {
		t.Fatalf("empty query must not debounce")
	}
	if l.Searching() {
		t.Fatalf("empty query must leave search mode")
	}
	if l.SearchResults() != nil {
		t.Fatalf("empty query must clear results instantly")
	}
}

func TestDebounceOnlyLastKeystrokeFires(t *testing.T) {
	l := NewList()
	s1, _ := l.SetQuery("a")
	s2, _ := l.SetQuery("ab")
	s3, _ := l.SetQuery("abc")

	if _, ok := l.QueryReady(s1); ok {
		t.Fatalf("superseded timer must not fire")
	}
	if _, ok := l.QueryReady(s2); ok {
		t.Fatalf("superseded timer must not fire")
	}
	query, ok := l.QueryReady(s3)
	if !ok || query != "abc" {
		t.Fatalf("expected final value to fire, got %q %v", query, ok)
	}
}

func TestDebounceCancelledByClear(t *testing.T) {
	l := NewList()
	seq, _ := l.SetQuery("bob")
	l.SetQuery("")
	if _, ok := l.QueryReady(seq); ok {
		t.Fatalf("clearing the query must cancel the pending timer")
	}
}

func TestConversationWith(t *testing.T) {
	l := readyList(t, conv("c1", "me", "bob"), conv("c2", "me", "carol"))
	if c, ok := l.ConversationWith("carol"); !ok || c.ID != "c2" {
		t.Fatalf("expected c2, got %+v %v", c, ok)
	}
	if _, ok := l.ConversationWith("dave"); ok {
		t.Fatalf("dave has no conversation")
	}
}
