package core

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"AsmiDesk/entity"
)

// fakeRepo is the in-memory Repository used across the core tests. It keeps
// the same observable behavior as the Mongo implementation: one chat per
// contact key, messages in insertion order, unread counting on customer
// messages.
type fakeRepo struct {
	mu       sync.Mutex
	chats    map[primitive.ObjectID]*entity.Chat
	messages []entity.Message
	admin    map[string][]entity.AdminMessage
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		chats: make(map[primitive.ObjectID]*entity.Chat),
		admin: make(map[string][]entity.AdminMessage),
	}
}

func (f *fakeRepo) ResolveOrCreateChat(_ context.Context, contactKey, displayName string, channel entity.ChatChannel) (*entity.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, chat := range f.chats {
		if chat.ContactKey == contactKey {
			copied := *chat
			return &copied, nil
		}
	}

	if displayName == "" {
		displayName = entity.DisplayNameFromKey(contactKey)
	}
	now := time.Now()
	chat := &entity.Chat{
		ID:            primitive.NewObjectID(),
		ContactKey:    contactKey,
		CustomerName:  displayName,
		Channel:       channel,
		Mode:          entity.ModeBot,
		Online:        true,
		LastMessageAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.chats[chat.ID] = chat
	copied := *chat
	return &copied, nil
}

func (f *fakeRepo) UpdateChatName(_ context.Context, id primitive.ObjectID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if chat, ok := f.chats[id]; ok {
		chat.CustomerName = name
	}
	return nil
}

func (f *fakeRepo) GetChat(_ context.Context, id primitive.ObjectID) (*entity.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chat, ok := f.chats[id]
	if !ok {
		return nil, nil
	}
	copied := *chat
	return &copied, nil
}

func (f *fakeRepo) GetChatByContact(_ context.Context, contactKey string) (*entity.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, chat := range f.chats {
		if chat.ContactKey == contactKey {
			copied := *chat
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListChats(_ context.Context, agentID string) ([]entity.ChatSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.ChatSummary
	for _, chat := range f.chats {
		if agentID != "" && chat.AssignedAgentID != agentID {
			continue
		}
		out = append(out, entity.ChatSummary{
			ID:            chat.ID,
			Name:          chat.CustomerName,
			Channel:       chat.Channel,
			Online:        chat.Online,
			Unread:        chat.UnreadCount,
			Mode:          chat.Mode,
			LastMessageAt: chat.LastMessageAt,
		})
	}
	return out, nil
}

func (f *fakeRepo) UpdateChat(_ context.Context, id primitive.ObjectID, update entity.ChatUpdate) (*entity.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chat, ok := f.chats[id]
	if !ok {
		return nil, nil
	}
	if update.Mode != nil {
		chat.Mode = *update.Mode
	}
	if update.AssignedAgentID != nil {
		chat.AssignedAgentID = *update.AssignedAgentID
	}
	if update.Online != nil {
		chat.Online = *update.Online
	}
	if update.UnreadCount != nil {
		chat.UnreadCount = *update.UnreadCount
	}
	chat.UpdatedAt = time.Now()
	copied := *chat
	return &copied, nil
}

func (f *fakeRepo) UpdateCustomerProfile(_ context.Context, id primitive.ObjectID, email, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if chat, ok := f.chats[id]; ok {
		if email != "" {
			chat.CustomerEmail = email
		}
		if address != "" {
			chat.CustomerAddress = address
		}
	}
	return nil
}

func (f *fakeRepo) SetChatMode(_ context.Context, id primitive.ObjectID, mode entity.ChatMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if chat, ok := f.chats[id]; ok {
		chat.Mode = mode
	}
	return nil
}

func (f *fakeRepo) TouchHumanReply(_ context.Context, id primitive.ObjectID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if chat, ok := f.chats[id]; ok {
		chat.LastHumanReply = at
	}
	return nil
}

func (f *fakeRepo) AppendMessage(_ context.Context, msg entity.Message) (*entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chat, ok := f.chats[msg.ChatID]
	if !ok {
		return nil, ErrChatNotFound
	}
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, msg)
	chat.LastMessageAt = msg.CreatedAt
	if msg.Sender == entity.SenderCustomer {
		chat.UnreadCount++
	}
	copied := msg
	return &copied, nil
}

func (f *fakeRepo) ListMessages(_ context.Context, chatID primitive.ObjectID) ([]entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Message
	for _, msg := range f.messages {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkAllRead(_ context.Context, chatID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		if f.messages[i].ChatID == chatID && f.messages[i].Sender == entity.SenderCustomer {
			f.messages[i].Status = entity.StatusRead
		}
	}
	if chat, ok := f.chats[chatID]; ok {
		chat.UnreadCount = 0
	}
	return nil
}

func (f *fakeRepo) SaveAdminMessage(_ context.Context, msg entity.AdminMessage) (*entity.AdminMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	f.admin[msg.AgentID] = append(f.admin[msg.AgentID], msg)
	copied := msg
	return &copied, nil
}

func (f *fakeRepo) GetAdminMessages(_ context.Context, agentID string) ([]entity.AdminMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.AdminMessage(nil), f.admin[agentID]...), nil
}

func (f *fakeRepo) chatByContact(contactKey string) *entity.Chat {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, chat := range f.chats {
		if chat.ContactKey == contactKey {
			copied := *chat
			return &copied
		}
	}
	return nil
}

func (f *fakeRepo) messagesFor(chatID primitive.ObjectID) []entity.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Message
	for _, msg := range f.messages {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out
}

// fakeDispatcher records outbound sends instead of delivering them.
type fakeDispatcher struct {
	mu    sync.Mutex
	sends []outboundSend
}

type outboundSend struct {
	To   string
	Text string
}

func (f *fakeDispatcher) Enqueue(to, text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, outboundSend{To: to, Text: text})
	return "test-dispatch"
}

func (f *fakeDispatcher) sent() []outboundSend {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]outboundSend(nil), f.sends...)
}
