package entity

import (
	"AsmiDesk/internal/lib/validate"
	"net/http"
)

// ChatCreate is the dashboard request body for explicit chat creation.
// Creation is idempotent on the contact key.
type ChatCreate struct {
	CustomerName    string      `json:"customer_name" validate:"required"`
	ContactKey      string      `json:"customer_phone" validate:"required"`
	CustomerEmail   string      `json:"customer_email" validate:"omitempty,email"`
	CustomerAddress string      `json:"customer_address" validate:"omitempty"`
	Channel         ChatChannel `json:"channel" validate:"omitempty,oneof=whatsapp telegram email"`
}

func (c *ChatCreate) Bind(_ *http.Request) error {
	if c.Channel == "" {
		c.Channel = ChannelWhatsApp
	}
	return validate.Struct(c)
}

// ChatUpdate is the dashboard request body for mode/assignment changes.
// Absent fields leave the chat untouched.
type ChatUpdate struct {
	Mode            *ChatMode `json:"mode" validate:"omitempty,oneof=bot agent paused closed"`
	AssignedAgentID *string   `json:"assigned_agent_id"`
	Online          *bool     `json:"online"`
	UnreadCount     *int      `json:"unread_count" validate:"omitempty,min=0"`
}

func (c *ChatUpdate) Bind(_ *http.Request) error {
	return validate.Struct(c)
}

// MessageCreate is the dashboard request body for sending a message into a
// chat. AgentID is filled from the caller identity for agent sends.
type MessageCreate struct {
	ChatID  string        `json:"chat_id" validate:"required"`
	Text    string        `json:"text" validate:"required"`
	Sender  MessageSender `json:"sender" validate:"required,oneof=customer agent"`
	AgentID string        `json:"agent_id" validate:"omitempty"`
}

func (c *MessageCreate) Bind(_ *http.Request) error {
	return validate.Struct(c)
}
