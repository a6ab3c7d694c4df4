package entity

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMode is the routing state of a chat. It decides whether inbound
// customer messages get an automated reply.
type ChatMode string

const (
	ModeBot    ChatMode = "bot"
	ModeAgent  ChatMode = "agent"
	ModePaused ChatMode = "paused"
	ModeClosed ChatMode = "closed"
)

func (m ChatMode) Valid() bool {
	switch m {
	case ModeBot, ModeAgent, ModePaused, ModeClosed:
		return true
	}
	return false
}

// ChatChannel is the transport a chat arrived on.
type ChatChannel string

const (
	ChannelWhatsApp ChatChannel = "whatsapp"
	ChannelTelegram ChatChannel = "telegram"
	ChannelEmail    ChatChannel = "email"
)

func (c ChatChannel) Valid() bool {
	switch c {
	case ChannelWhatsApp, ChannelTelegram, ChannelEmail:
		return true
	}
	return false
}

// Chat represents a persisted customer conversation thread. Exactly one chat
// exists per contact key; messages belong to it and are removed with it.
type Chat struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ContactKey      string             `json:"contact_key" bson:"contact_key"`
	CustomerName    string             `json:"name" bson:"customer_name"`
	CustomerEmail   string             `json:"email,omitempty" bson:"customer_email,omitempty"`
	CustomerAddress string             `json:"address,omitempty" bson:"customer_address,omitempty"`
	Channel         ChatChannel        `json:"channel" bson:"channel"`
	Mode            ChatMode           `json:"mode" bson:"mode"`
	Online          bool               `json:"online" bson:"online"`
	UnreadCount     int                `json:"unread" bson:"unread_count"`
	AssignedAgentID string             `json:"assigned_agent_id,omitempty" bson:"assigned_agent_id,omitempty"`
	LastHumanReply  time.Time          `json:"-" bson:"last_human_reply_at,omitempty"`
	LastMessageAt   time.Time          `json:"last_message_at" bson:"last_message_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// ChatSummary is the chat list projection for the dashboard.
type ChatSummary struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	Name          string             `json:"name" bson:"customer_name"`
	Channel       ChatChannel        `json:"channel" bson:"channel"`
	Online        bool               `json:"online" bson:"online"`
	Unread        int                `json:"unread" bson:"unread_count"`
	Mode          ChatMode           `json:"mode" bson:"mode"`
	LastMessageAt time.Time          `json:"last_message_at" bson:"last_message_at"`
}

// CustomerProfile is the contact card shown on the chat detail view.
type CustomerProfile struct {
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	LastActive string `json:"lastActive"`
}

// ChatDetail is a chat with its full transcript.
type ChatDetail struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Channel  ChatChannel        `json:"channel"`
	Online   bool               `json:"online"`
	Unread   int                `json:"unread"`
	Mode     ChatMode           `json:"mode"`
	Profile  CustomerProfile    `json:"profile"`
	Messages []Message          `json:"messages"`
}

// Profile builds the customer profile card for a chat.
func (c *Chat) Profile() CustomerProfile {
	lastActive := "Online"
	if !c.Online {
		lastActive = c.LastMessageAt.Format("2006-01-02 15:04")
	}
	return CustomerProfile{
		Phone:      c.ContactKey,
		Email:      c.CustomerEmail,
		Address:    c.CustomerAddress,
		LastActive: lastActive,
	}
}

// HumanRepliedWithin reports whether a human handled this contact within the
// given window, counting back from now.
func (c *Chat) HumanRepliedWithin(window time.Duration, now time.Time) bool {
	if c.LastHumanReply.IsZero() {
		return false
	}
	return now.Sub(c.LastHumanReply) < window
}

// contact key suffixes appended by messaging transports
var transportSuffixes = []string{"@c.us", "@s.whatsapp.net", "@g.us"}

// DisplayNameFromKey derives a presentable name from a raw contact key by
// stripping transport suffixes.
func DisplayNameFromKey(key string) string {
	name := key
	for _, suffix := range transportSuffixes {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}

// isRawIdentifier reports whether a stored name is just a contact key rather
// than something a human typed in.
func isRawIdentifier(name string) bool {
	for _, suffix := range transportSuffixes {
		if strings.Contains(name, suffix) {
			return true
		}
	}
	// local numbers arrive with the country prefix, never typed by staff
	return strings.HasPrefix(name, "62") || strings.HasPrefix(name, "+62")
}

// ShouldReplaceName decides whether an incoming display name may overwrite
// the stored one. A name entered by staff is never clobbered with a raw
// phone number from a later gateway event.
func ShouldReplaceName(stored, incoming string) bool {
	if incoming == "" || incoming == stored {
		return false
	}
	if stored == "" {
		return true
	}
	if isRawIdentifier(stored) {
		return true
	}
	return strings.HasPrefix(stored, "Test")
}
