package api

import "time"

// User is an identity as the backend reports it.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ProfilePic string    `json:"profilePic"`
	LastActive time.Time `json:"lastActive"`
}

// Message is immutable once created; sender and receiver are distinct and
// both belong to the enclosing conversation's participant pair.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Conversation is the two-party history container. Messages are ordered most
// recent first; Participants always holds exactly two distinct ids and the
// unordered pair uniquely identifies the conversation.
type Conversation struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"`
	OtherUser    User      `json:"otherUser"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials is the payload of a successful login, register or refresh.
type Credentials struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

type searchResult struct {
	Item User `json:"item"`
}

// HasPair reports whether the conversation's participant pair equals the
// unordered pair {a, b}.
func (c Conversation) HasPair(a, b string) bool {
	return c.hasParticipant(a) && c.hasParticipant(b)
}

func (c Conversation) hasParticipant(id string) bool {
	for _, p := range c.Participants {
		if p == id {
			return true
		}
	}
	return false
}
