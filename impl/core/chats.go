package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"AsmiDesk/entity"
	"AsmiDesk/internal/lib/sl"
)

// ListChats returns the dashboard chat list. Agent callers only see chats
// assigned to them; admins and anonymous internal callers see everything.
func (c *Core) ListChats(ctx context.Context, caller *entity.UserAuth) ([]entity.ChatSummary, error) {
	agentID := ""
	if caller != nil && caller.IsAgent() {
		agentID = caller.ID
	}
	chats, err := c.repo.ListChats(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if chats == nil {
		chats = []entity.ChatSummary{}
	}
	return chats, nil
}

// GetChatDetail returns one chat with its ordered transcript and customer
// profile.
func (c *Core) GetChatDetail(ctx context.Context, id string) (*entity.ChatDetail, error) {
	chatID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	chat, err := c.repo.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	messages, err := c.repo.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []entity.Message{}
	}

	return &entity.ChatDetail{
		ID:       chat.ID,
		Name:     chat.CustomerName,
		Channel:  chat.Channel,
		Online:   chat.Online,
		Unread:   chat.UnreadCount,
		Mode:     chat.Mode,
		Profile:  chat.Profile(),
		Messages: messages,
	}, nil
}

// CreateChat creates a chat explicitly from the dashboard. Idempotent on
// the contact key: an existing chat is returned instead of a duplicate.
func (c *Core) CreateChat(ctx context.Context, req entity.ChatCreate) (*entity.ChatDetail, error) {
	c.locks.Lock(req.ContactKey)
	defer c.locks.Unlock(req.ContactKey)

	chat, err := c.repo.ResolveOrCreateChat(ctx, req.ContactKey, req.CustomerName, req.Channel)
	if err != nil {
		return nil, err
	}

	if req.CustomerEmail != "" || req.CustomerAddress != "" {
		if err := c.repo.UpdateCustomerProfile(ctx, chat.ID, req.CustomerEmail, req.CustomerAddress); err != nil {
			c.log.With(sl.Err(err)).Warn("update customer profile")
		}
	}

	return c.GetChatDetail(ctx, chat.ID.Hex())
}

// UpdateChat applies a dashboard mode/assignment update. This is the
// administrative path that reopens closed chats.
func (c *Core) UpdateChat(ctx context.Context, id string, req entity.ChatUpdate) (*entity.ChatDetail, error) {
	chatID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	chat, err := c.repo.UpdateChat(ctx, chatID, req)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	c.broadcastChat(chat)

	return c.GetChatDetail(ctx, id)
}

// SendMessage posts a message into a chat from the dashboard. Agent sends
// are attributed to the caller, stamp the human-intervention cooldown and
// are relayed to the customer's channel, best effort.
func (c *Core) SendMessage(ctx context.Context, req entity.MessageCreate, caller *entity.UserAuth) (*entity.Message, error) {
	chatID, err := primitive.ObjectIDFromHex(req.ChatID)
	if err != nil {
		return nil, ErrInvalidID
	}

	chat, err := c.repo.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	agentID := ""
	if req.Sender == entity.SenderAgent {
		agentID = req.AgentID
		if agentID == "" && caller != nil {
			agentID = caller.ID
		}
	}

	c.locks.Lock(chat.ContactKey)
	defer c.locks.Unlock(chat.ContactKey)

	msg, err := c.repo.AppendMessage(ctx, entity.Message{
		ChatID:  chatID,
		Text:    req.Text,
		Sender:  req.Sender,
		Status:  entity.StatusSent,
		AgentID: agentID,
	})
	if err != nil {
		return nil, err
	}
	c.broadcastMessage(msg)

	if req.Sender == entity.SenderAgent {
		if err := c.repo.TouchHumanReply(ctx, chatID, time.Now()); err != nil {
			c.log.With(sl.Err(err)).Warn("touch human reply")
		}
		c.relayToCustomer(chat, req.Text)
	}

	return msg, nil
}

// relayToCustomer forwards an agent message over the chat's channel. Any
// failure is logged and swallowed; the message is already persisted.
func (c *Core) relayToCustomer(chat *entity.Chat, text string) {
	switch chat.Channel {
	case entity.ChannelWhatsApp:
		c.dispatcher.Enqueue(chat.ContactKey, text)
	case entity.ChannelEmail:
		if c.mail == nil {
			c.log.With(
				slog.String("contact", chat.ContactKey),
			).Warn("mail sender not configured, message not relayed")
			return
		}
		subject := fmt.Sprintf("Re: support conversation with %s", chat.CustomerName)
		go func() {
			if err := c.mail.SendText(chat.ContactKey, subject, text); err != nil {
				c.log.With(sl.Err(err)).Warn("relay mail")
			}
		}()
	default:
		c.log.With(
			slog.String("channel", string(chat.Channel)),
		).Debug("no outbound relay for channel")
	}
}

// MarkChatRead marks the whole chat as read. Idempotent.
func (c *Core) MarkChatRead(ctx context.Context, id string) error {
	chatID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	chat, err := c.repo.GetChat(ctx, chatID)
	if err != nil {
		return err
	}
	if chat == nil {
		return ErrChatNotFound
	}

	c.locks.Lock(chat.ContactKey)
	defer c.locks.Unlock(chat.ContactKey)

	return c.repo.MarkAllRead(ctx, chatID)
}
