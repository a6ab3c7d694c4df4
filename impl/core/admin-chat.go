package core

import (
	"context"

	"AsmiDesk/bot"
	"AsmiDesk/entity"
)

// autoAdminName is the display name stamped on generated acknowledgments.
const autoAdminName = "Auto Admin"

// GetAdminThread returns an agent's admin side-channel with its derived
// current mode.
func (c *Core) GetAdminThread(ctx context.Context, agentID string) (*entity.AdminThread, error) {
	messages, err := c.repo.GetAdminMessages(ctx, agentID)
	if err != nil {
		return nil, err
	}
	thread := entity.NewAdminThread(agentID, messages)
	return &thread, nil
}

// PostAdminMessage appends a message to an agent's admin channel. When an
// agent writes while the channel runs in bot mode, one canned
// acknowledgment is generated and persisted as Auto Admin before
// returning.
func (c *Core) PostAdminMessage(ctx context.Context, agentID string, post entity.AdminMessagePost) (*entity.AdminMessage, error) {
	msg, err := c.repo.SaveAdminMessage(ctx, entity.AdminMessage{
		AgentID:    agentID,
		Text:       post.Text,
		Sender:     post.Sender,
		SenderName: post.SenderName,
		Mode:       post.Mode,
	})
	if err != nil {
		return nil, err
	}

	if post.Mode == entity.AdminModeBot && post.Sender == entity.AdminSideAgent {
		_, err = c.repo.SaveAdminMessage(ctx, entity.AdminMessage{
			AgentID:    agentID,
			Text:       bot.AutoAdminReply(post.Text),
			Sender:     entity.AdminSideAdmin,
			SenderName: autoAdminName,
			Mode:       entity.AdminModeBot,
		})
		if err != nil {
			return nil, err
		}
	}

	return msg, nil
}
