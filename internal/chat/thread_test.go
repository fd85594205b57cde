package chat

import (
	"testing"
	"time"

	"verdant/internal/api"
)

func bob() api.User {
	return api.User{ID: "bob", Name: "Bob", LastActive: time.Date(2026, time.March, 14, 18, 30, 0, 0, time.Local)}
}

func TestSelectResetsThread(t *testing.T) {
	th := NewThread()
	th.Select("c1", bob())
	th.HandleIncoming(msgAt("m1", "bob", "me", "hi", time.Now()))

	carol := api.User{ID: "carol", LastActive: time.Now()}
	th.Select("c2", carol)
	if len(th.Messages()) != 0 {
		t.Fatalf("selecting a target must reset the message list")
	}
	if !th.LastActive().Equal(carol.LastActive) {
		t.Fatalf("last active must reset to the target's value")
	}
}

func TestBeginFetchWithoutConversationSkipsRequest(t *testing.T) {
	th := NewThread()
	th.Select("", bob()) // search-result target: conversation does not exist yet
	if _, fetch := th.BeginFetch(); fetch {
		t.Fatalf("no conversation id means no request")
	}
	if len(th.Messages()) != 0 {
		t.Fatalf("expected an empty thread")
	}
}

func TestSetMessagesDiscardsStaleGeneration(t *testing.T) {
	th := NewThread()

	th.Select("c1", bob())
	stale, fetch := th.BeginFetch()
	if !fetch {
		t.Fatalf("expected a fetch for c1")
	}

	th.Select("c2", api.User{ID: "carol"})
	live, fetch := th.BeginFetch()
	if !fetch {
		t.Fatalf("expected a fetch for c2")
	}

	if th.SetMessages(stale, []api.Message{msgAt("m1", "bob", "me", "stale", time.Now())}) {
		t.Fatalf("response for a superseded selection must be discarded")
	}
	if !th.SetMessages(live, []api.Message{msgAt("m2", "carol", "me", "live", time.Now())}) {
		t.Fatalf("live response must apply")
	}
	if got := th.Messages(); len(got) != 1 || got[0].ID != "m2" {
		t.Fatalf("unexpected thread: %+v", got)
	}
}

func TestHandleIncomingFiltersByOpenPeer(t *testing.T) {
	th := NewThread()
	th.Select("c1", bob())

	if !th.HandleIncoming(msgAt("m1", "bob", "me", "from peer", time.Now())) {
		t.Fatalf("message from the open peer must append")
	}
	if !th.HandleIncoming(msgAt("m2", "me", "bob", "to peer", time.Now())) {
		t.Fatalf("message to the open peer must append")
	}
	if th.HandleIncoming(msgAt("m3", "dave", "me", "other", time.Now())) {
		t.Fatalf("message for another peer must be ignored")
	}
	if got := th.Messages(); len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m2" {
		t.Fatalf("unexpected thread order: %+v", got)
	}
}

func TestHandleDisconnectOnlyForOpenPeer(t *testing.T) {
	th := NewThread()
	th.Select("c1", bob())

	later := time.Now()
	if th.HandleDisconnect("dave", later) {
		t.Fatalf("disconnect for another peer must be ignored")
	}
	if !th.HandleDisconnect("bob", later) {
		t.Fatalf("disconnect for the open peer must apply")
	}
	if !th.LastActive().Equal(later) {
		t.Fatalf("last active must take the pushed value")
	}
}

func TestValidateSend(t *testing.T) {
	th := NewThread()
	if th.ValidateSend("hi") {
		t.Fatalf("no peer selected: send must be rejected")
	}
	th.Select("c1", bob())
	if th.ValidateSend("   \t ") {
		t.Fatalf("whitespace-only content must be rejected")
	}
	if !th.ValidateSend("hi") {
		t.Fatalf("expected send to be allowed")
	}
}

func TestApplySentReportsNewConversation(t *testing.T) {
	th := NewThread()
	th.Select("", bob())
	if !th.ApplySent(msgAt("m1", "me", "bob", "hi", time.Now())) {
		t.Fatalf("thread without a conversation id must request a list refetch")
	}

	th.Select("c1", bob())
	if th.ApplySent(msgAt("m2", "me", "bob", "again", time.Now())) {
		t.Fatalf("established conversation must not request a refetch")
	}
}

func TestGroupByDateSplitsCalendarDays(t *testing.T) {
	day1 := time.Date(2026, time.March, 14, 23, 50, 0, 0, time.Local)
	day2 := time.Date(2026, time.March, 15, 0, 10, 0, 0, time.Local)

	groups := GroupByDate([]api.Message{
		msgAt("m1", "me", "bob", "late", day1),
		msgAt("m2", "bob", "me", "early", day2),
		msgAt("m3", "me", "bob", "later", day2.Add(time.Hour)),
	})

	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %d", len(groups))
	}
	if !groups[0].Date.Before(groups[1].Date) {
		t.Fatalf("groups must be ordered earliest day first")
	}
	if len(groups[0].Messages) != 1 || groups[0].Messages[0].ID != "m1" {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if len(groups[1].Messages) != 2 || groups[1].Messages[0].ID != "m2" || groups[1].Messages[1].ID != "m3" {
		t.Fatalf("in-group order must follow input order: %+v", groups[1])
	}
}

func TestGroupByDateSingleDay(t *testing.T) {
	at := time.Now()
	groups := GroupByDate([]api.Message{
		msgAt("m1", "me", "bob", "a", at),
		msgAt("m2", "bob", "me", "b", at.Add(time.Minute)),
	})
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
}

func TestStatusLabel(t *testing.T) {
	th := NewThread()
	th.Select("c1", bob())

	if got := th.StatusLabel([]string{"carol", "bob"}); got != "online" {
		t.Fatalf("expected online, got %q", got)
	}
	if got := th.StatusLabel([]string{"carol"}); got != "last seen at 18:30" {
		t.Fatalf("expected last seen label, got %q", got)
	}
}

// First-contact flow: a search-result target with no history sends one
// message, the thread shows it, and the list refetches exactly once.
func TestFirstMessageToSearchResult(t *testing.T) {
	l := NewList()
	gen := l.BeginFetch()
	l.SetConversations(gen, nil)

	th := NewThread()
	th.Select("", bob())
	if _, fetch := th.BeginFetch(); fetch {
		t.Fatalf("empty history: no messages request expected")
	}

	if !th.ValidateSend("hi") {
		t.Fatalf("send must be allowed")
	}
	confirmed := msgAt("m1", "me", "bob", "hi", time.Now())
	refetches := 0
	l.ApplyLastMessage(confirmed)
	if th.ApplySent(confirmed) {
		l.BeginFetch()
		refetches++
	}

	if got := th.Messages(); len(got) != 1 || got[0].Content != "hi" {
		t.Fatalf("thread must show the sent message, got %+v", got)
	}
	if refetches != 1 {
		t.Fatalf("expected exactly one list refetch, got %d", refetches)
	}
}
