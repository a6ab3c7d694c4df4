package chat

import (
	"context"

	"AsmiDesk/entity"
)

// Core is the chat operation surface the dashboard handlers need.
type Core interface {
	ListChats(ctx context.Context, caller *entity.UserAuth) ([]entity.ChatSummary, error)
	GetChatDetail(ctx context.Context, id string) (*entity.ChatDetail, error)
	CreateChat(ctx context.Context, req entity.ChatCreate) (*entity.ChatDetail, error)
	UpdateChat(ctx context.Context, id string, req entity.ChatUpdate) (*entity.ChatDetail, error)
	SendMessage(ctx context.Context, req entity.MessageCreate, caller *entity.UserAuth) (*entity.Message, error)
	MarkChatRead(ctx context.Context, id string) error
}
