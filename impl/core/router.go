package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"AsmiDesk/bot"
	"AsmiDesk/entity"
	"AsmiDesk/internal/lib/sl"
)

// HandleInboundEvent is the webhook ingestion path. It parses the gateway
// event, resolves the chat, persists the inbound message and decides on a
// reply via the mode state machine and the classifier. Malformed events
// are ignored, never errored; dispatch failures never reach this result.
func (c *Core) HandleInboundEvent(ctx context.Context, raw []byte) entity.WebhookResult {
	sender, name, text, ok := entity.ParseInboundEvent(raw)
	if !ok {
		c.log.Debug("webhook ignored: missing sender or text")
		return entity.WebhookResult{Status: "ignored", Reason: "missing sender or text"}
	}

	if c.IsAdmin(sender) {
		return c.handleAdminCommand(ctx, sender, text)
	}

	// chat resolution and append are serialized per contact
	c.locks.Lock(sender)
	defer c.locks.Unlock(sender)

	chat, err := c.repo.ResolveOrCreateChat(ctx, sender, name, entity.ChannelWhatsApp)
	if err != nil {
		c.log.With(
			slog.String("contact", sender),
			sl.Err(err),
		).Error("resolve chat")
		return entity.WebhookResult{Status: "error", Reason: "chat resolution failed"}
	}

	if entity.ShouldReplaceName(chat.CustomerName, name) {
		if err := c.repo.UpdateChatName(ctx, chat.ID, name); err != nil {
			c.log.With(sl.Err(err)).Warn("update chat name")
		} else {
			chat.CustomerName = name
		}
	}

	inbound, err := c.repo.AppendMessage(ctx, entity.Message{
		ChatID: chat.ID,
		Text:   text,
		Sender: entity.SenderCustomer,
		Status: entity.StatusSent,
	})
	if err != nil {
		c.log.With(
			slog.String("contact", sender),
			sl.Err(err),
		).Error("append inbound message")
		return entity.WebhookResult{Status: "error", Reason: "message persistence failed"}
	}
	c.broadcastMessage(inbound)

	decision := bot.Transition(chat.Mode, text)
	if decision.Next != chat.Mode {
		if err := c.repo.SetChatMode(ctx, chat.ID, decision.Next); err != nil {
			c.log.With(sl.Err(err)).Error("set chat mode")
			return entity.WebhookResult{Status: "error", Reason: "mode update failed"}
		}
		chat.Mode = decision.Next
		c.broadcastChat(chat)
	}

	result := entity.WebhookResult{
		Status: "ok",
		Mode:   string(chat.Mode),
		ChatID: chat.ID.Hex(),
	}

	reply := decision.Reply
	if decision.Classify {
		if chat.HumanRepliedWithin(c.cooldown, time.Now()) {
			c.log.With(
				slog.String("contact", sender),
			).Debug("human cooldown active, no automated reply")
			return result
		}
		reply = c.responder.Reply(ctx, sender, text)
	}
	if reply == "" {
		return result
	}

	outbound, err := c.repo.AppendMessage(ctx, entity.Message{
		ChatID: chat.ID,
		Text:   reply,
		Sender: entity.SenderAgent,
		Status: entity.StatusSent,
	})
	if err != nil {
		c.log.With(sl.Err(err)).Error("append reply message")
		return entity.WebhookResult{Status: "error", Reason: "reply persistence failed"}
	}
	c.broadcastMessage(outbound)
	c.dispatcher.Enqueue(sender, reply)
	result.BotReplied = true

	return result
}

// handleAdminCommand executes administrator verbs against another
// contact's chat. Administrators never receive automated replies, only
// command acknowledgments.
func (c *Core) handleAdminCommand(ctx context.Context, admin, text string) entity.WebhookResult {
	cmd, ok := bot.ParseCommand(text)
	if !ok {
		c.log.With(
			slog.String("admin", admin),
		).Debug("unrecognized admin command, dropped")
		return entity.WebhookResult{Status: "ok", Reason: "admin"}
	}

	c.locks.Lock(cmd.Target)
	defer c.locks.Unlock(cmd.Target)

	chat, err := c.repo.ResolveOrCreateChat(ctx, cmd.Target, "", entity.ChannelWhatsApp)
	if err != nil {
		c.log.With(
			slog.String("target", cmd.Target),
			sl.Err(err),
		).Error("resolve admin command target")
		return entity.WebhookResult{Status: "error", Reason: "chat resolution failed"}
	}

	switch cmd.Verb {
	case bot.CmdAssign:
		if err := c.repo.SetChatMode(ctx, chat.ID, entity.ModeAgent); err != nil {
			c.log.With(sl.Err(err)).Error("assign target")
			return entity.WebhookResult{Status: "error", Reason: "mode update failed"}
		}
		chat.Mode = entity.ModeAgent
		c.broadcastChat(chat)
		c.dispatcher.Enqueue(admin, fmt.Sprintf("Assigned agent for %s.", cmd.Target))

	case bot.CmdUnassign:
		if err := c.repo.SetChatMode(ctx, chat.ID, entity.ModeBot); err != nil {
			c.log.With(sl.Err(err)).Error("unassign target")
			return entity.WebhookResult{Status: "error", Reason: "mode update failed"}
		}
		chat.Mode = entity.ModeBot
		c.broadcastChat(chat)
		c.dispatcher.Enqueue(admin, fmt.Sprintf("Unassigned agent for %s.", cmd.Target))

	case bot.CmdReply:
		if err := c.repo.TouchHumanReply(ctx, chat.ID, time.Now()); err != nil {
			c.log.With(sl.Err(err)).Error("touch human reply")
			return entity.WebhookResult{Status: "error", Reason: "cooldown update failed"}
		}
		msg, err := c.repo.AppendMessage(ctx, entity.Message{
			ChatID: chat.ID,
			Text:   cmd.Text,
			Sender: entity.SenderAgent,
			Status: entity.StatusSent,
		})
		if err != nil {
			c.log.With(sl.Err(err)).Error("append admin reply")
			return entity.WebhookResult{Status: "error", Reason: "message persistence failed"}
		}
		c.broadcastMessage(msg)
		c.dispatcher.Enqueue(cmd.Target, cmd.Text)
	}

	return entity.WebhookResult{
		Status: "ok",
		Reason: "admin",
		ChatID: chat.ID.Hex(),
	}
}
