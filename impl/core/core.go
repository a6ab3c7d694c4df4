package core

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"AsmiDesk/entity"
	"AsmiDesk/internal/lib/locker"
	"AsmiDesk/internal/lib/sl"
)

var (
	ErrChatNotFound = errors.New("chat not found")
	ErrInvalidID    = errors.New("invalid chat id")
)

// Repository is the persistence surface the core needs. Implemented by the
// Mongo repository; tests supply an in-memory fake.
type Repository interface {
	ResolveOrCreateChat(ctx context.Context, contactKey, displayName string, channel entity.ChatChannel) (*entity.Chat, error)
	UpdateChatName(ctx context.Context, id primitive.ObjectID, name string) error
	GetChat(ctx context.Context, id primitive.ObjectID) (*entity.Chat, error)
	GetChatByContact(ctx context.Context, contactKey string) (*entity.Chat, error)
	ListChats(ctx context.Context, agentID string) ([]entity.ChatSummary, error)
	UpdateChat(ctx context.Context, id primitive.ObjectID, update entity.ChatUpdate) (*entity.Chat, error)
	UpdateCustomerProfile(ctx context.Context, id primitive.ObjectID, email, address string) error
	SetChatMode(ctx context.Context, id primitive.ObjectID, mode entity.ChatMode) error
	TouchHumanReply(ctx context.Context, id primitive.ObjectID, at time.Time) error

	AppendMessage(ctx context.Context, msg entity.Message) (*entity.Message, error)
	ListMessages(ctx context.Context, chatID primitive.ObjectID) ([]entity.Message, error)
	MarkAllRead(ctx context.Context, chatID primitive.ObjectID) error

	SaveAdminMessage(ctx context.Context, msg entity.AdminMessage) (*entity.AdminMessage, error)
	GetAdminMessages(ctx context.Context, agentID string) ([]entity.AdminMessage, error)
}

// Responder generates a customer reply. Two implementations exist: the
// OpenAI-augmented one and the keyword-only table. The core never knows
// which is active.
type Responder interface {
	Reply(ctx context.Context, contact, text string) string
}

// Dispatcher schedules best-effort outbound delivery after persistence.
type Dispatcher interface {
	Enqueue(to, text string) string
}

// MailSender relays replies for email-channel chats.
type MailSender interface {
	SendText(to, subject, text string) error
}

// EventHub pushes live updates to connected dashboards.
type EventHub interface {
	BroadcastMessage(msg *entity.Message)
	BroadcastChatUpdate(chat *entity.Chat)
}

// Core orchestrates conversation routing: it owns the webhook flow, the
// dashboard chat operations and the admin side-channel. Collaborators are
// injected through setters, wired in main.
type Core struct {
	repo       Repository
	responder  Responder
	dispatcher Dispatcher
	mail       MailSender
	hub        EventHub

	locks    *locker.Locker
	admins   map[string]bool
	cooldown time.Duration
	log      *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		locks:    locker.New(),
		admins:   make(map[string]bool),
		cooldown: time.Hour,
		log:      log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetResponder(responder Responder) {
	c.responder = responder
}

func (c *Core) SetDispatcher(dispatcher Dispatcher) {
	c.dispatcher = dispatcher
}

func (c *Core) SetMailSender(mail MailSender) {
	c.mail = mail
}

func (c *Core) SetEventHub(hub EventHub) {
	c.hub = hub
}

// SetAdmins installs the administrator allow-list from a comma-separated
// contact key string.
func (c *Core) SetAdmins(raw string) {
	for _, key := range strings.Split(raw, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			c.admins[key] = true
		}
	}
}

// SetCooldown overrides the human-intervention cooldown window.
func (c *Core) SetCooldown(window time.Duration) {
	if window > 0 {
		c.cooldown = window
	}
}

// IsAdmin reports whether a contact key carries command privileges.
func (c *Core) IsAdmin(contactKey string) bool {
	return c.admins[contactKey]
}

func (c *Core) broadcastMessage(msg *entity.Message) {
	if c.hub != nil {
		c.hub.BroadcastMessage(msg)
	}
}

func (c *Core) broadcastChat(chat *entity.Chat) {
	if c.hub != nil {
		c.hub.BroadcastChatUpdate(chat)
	}
}
