package adminchat

import (
	"context"

	"AsmiDesk/entity"
)

// Core is the admin side-channel surface.
type Core interface {
	GetAdminThread(ctx context.Context, agentID string) (*entity.AdminThread, error)
	PostAdminMessage(ctx context.Context, agentID string, post entity.AdminMessagePost) (*entity.AdminMessage, error)
}
