package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageSender identifies which side of the conversation wrote a message.
type MessageSender string

const (
	SenderCustomer MessageSender = "customer"
	SenderAgent    MessageSender = "agent"
)

func (s MessageSender) Valid() bool {
	return s == SenderCustomer || s == SenderAgent
}

// MessageStatus tracks whether a customer message has been read by staff.
type MessageStatus string

const (
	StatusSent MessageStatus = "sent"
	StatusRead MessageStatus = "read"
)

// Message is a single entry in a chat transcript. Messages are totally
// ordered by CreatedAt with the insertion id as tie-break.
type Message struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ChatID primitive.ObjectID `json:"chat_id" bson:"chat_id"`
	Text   string             `json:"text" bson:"text"`
	Sender MessageSender      `json:"sender" bson:"sender"`
	Status MessageStatus      `json:"status" bson:"status"`
	// AgentID is set only when a human agent sent the message. Bot replies
	// carry sender=agent with an empty AgentID.
	AgentID   string    `json:"agent_id,omitempty" bson:"agent_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
