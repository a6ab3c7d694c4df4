package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminSender identifies which side of the internal admin channel wrote a
// message.
type AdminSender string

const (
	AdminSideAgent AdminSender = "agent"
	AdminSideAdmin AdminSender = "admin"
)

func (s AdminSender) Valid() bool {
	return s == AdminSideAgent || s == AdminSideAdmin
}

// AdminChatMode is the two-state mode of the admin side-channel.
type AdminChatMode string

const (
	AdminModeBot    AdminChatMode = "bot"
	AdminModeManual AdminChatMode = "manual"
)

func (m AdminChatMode) Valid() bool {
	return m == AdminModeBot || m == AdminModeManual
}

// AdminMessage is one entry in the internal agent-admin conversation. The
// thread is keyed by the agent id, not by a chat. The mode is stamped on
// every message; the channel's current mode is not stored anywhere.
type AdminMessage struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AgentID    string             `json:"agent_id" bson:"agent_id"`
	Text       string             `json:"text" bson:"text"`
	Sender     AdminSender        `json:"sender" bson:"sender"`
	SenderName string             `json:"sender_name,omitempty" bson:"sender_name,omitempty"`
	Mode       AdminChatMode      `json:"mode" bson:"mode"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// AdminThread is an agent's full admin conversation. Mode is event-sourced:
// it is the mode of the latest message, bot when the thread is empty. There
// is deliberately no stored current-mode field.
type AdminThread struct {
	AgentID  string         `json:"id"`
	Mode     AdminChatMode  `json:"mode"`
	Messages []AdminMessage `json:"messages"`
}

// NewAdminThread derives the thread view from an ordered message history.
func NewAdminThread(agentID string, messages []AdminMessage) AdminThread {
	mode := AdminModeBot
	if len(messages) > 0 {
		mode = messages[len(messages)-1].Mode
	}
	if messages == nil {
		messages = []AdminMessage{}
	}
	return AdminThread{AgentID: agentID, Mode: mode, Messages: messages}
}
