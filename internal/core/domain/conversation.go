package domain

import "time"

// Conversation is the two-party container of a message history.
type Conversation struct {
	ID           string    `json:"id"`
	Users        []string  `json:"users"`
	LastSequence int64     `json:"lastSequenceNumber"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasParticipant reports whether userID is one of the two members.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, u := range c.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the member that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	for _, u := range c.Users {
		if u != userID {
			return u
		}
	}
	return ""
}

// Message is an entry of a conversation, ordered by SequenceNumber.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SequenceNumber int64     `json:"sequenceNumber"`
	SenderID       string    `json:"senderId"`
	ReceiverID     string    `json:"receiverId"`
	Text           string    `json:"text"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}
