package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"AsmiDesk/entity"
)

// ResolveOrCreateChat upserts the chat for a contact key. An existing chat
// is marked online with a fresh last_message_at; a missing one is created
// in bot mode. The unique contact_key index makes concurrent first-contact
// events collide on a duplicate key, which is resolved by retrying the
// upsert once; the second attempt finds the winner's document.
func (m *MongoDB) ResolveOrCreateChat(ctx context.Context, contactKey, displayName string, channel entity.ChatChannel) (*entity.Chat, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)

	if displayName == "" {
		displayName = entity.DisplayNameFromKey(contactKey)
	}
	now := time.Now()

	filter := bson.D{{Key: "contact_key", Value: contactKey}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "online", Value: true},
			{Key: "last_message_at", Value: now},
			{Key: "updated_at", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "contact_key", Value: contactKey},
			{Key: "customer_name", Value: displayName},
			{Key: "channel", Value: channel},
			{Key: "mode", Value: entity.ModeBot},
			{Key: "unread_count", Value: 0},
			{Key: "created_at", Value: now},
		}},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var chat entity.Chat
	err = collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&chat)
	if mongo.IsDuplicateKeyError(err) {
		// lost the first-contact race, the retry hits the existing document
		err = collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&chat)
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb resolve chat: %w", err)
	}

	return &chat, nil
}

// UpdateChatName overwrites the display name. The caller decides whether
// the overwrite is allowed, see entity.ShouldReplaceName.
func (m *MongoDB) UpdateChatName(ctx context.Context, id primitive.ObjectID, name string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)
	_, err = collection.UpdateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "customer_name", Value: name},
			{Key: "updated_at", Value: time.Now()},
		}},
	})
	if err != nil {
		return fmt.Errorf("mongodb update chat name: %w", err)
	}
	return nil
}

// GetChat returns a chat by id, nil when it does not exist.
func (m *MongoDB) GetChat(ctx context.Context, id primitive.ObjectID) (*entity.Chat, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)

	var chat entity.Chat
	err = collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&chat)
	if err != nil {
		return nil, m.findError(err)
	}
	return &chat, nil
}

// GetChatByContact returns the chat for a contact key, nil when absent.
func (m *MongoDB) GetChatByContact(ctx context.Context, contactKey string) (*entity.Chat, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)

	var chat entity.Chat
	err = collection.FindOne(ctx, bson.D{{Key: "contact_key", Value: contactKey}}).Decode(&chat)
	if err != nil {
		return nil, m.findError(err)
	}
	return &chat, nil
}

// ListChats returns chat summaries newest-activity first. A non-empty
// agentID restricts the list to chats assigned to that agent.
func (m *MongoDB) ListChats(ctx context.Context, agentID string) ([]entity.ChatSummary, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)

	filter := bson.D{}
	if agentID != "" {
		filter = bson.D{{Key: "assigned_agent_id", Value: agentID}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find chats: %w", err)
	}
	defer cursor.Close(ctx)

	var chats []entity.ChatSummary
	if err = cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("mongodb decode chats: %w", err)
	}
	return chats, nil
}

// UpdateChat applies a partial dashboard update.
func (m *MongoDB) UpdateChat(ctx context.Context, id primitive.ObjectID, update entity.ChatUpdate) (*entity.Chat, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)

	set := bson.D{{Key: "updated_at", Value: time.Now()}}
	if update.Mode != nil {
		set = append(set, bson.E{Key: "mode", Value: *update.Mode})
	}
	if update.AssignedAgentID != nil {
		set = append(set, bson.E{Key: "assigned_agent_id", Value: *update.AssignedAgentID})
	}
	if update.Online != nil {
		set = append(set, bson.E{Key: "online", Value: *update.Online})
	}
	if update.UnreadCount != nil {
		set = append(set, bson.E{Key: "unread_count", Value: *update.UnreadCount})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var chat entity.Chat
	err = collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&chat)
	if err != nil {
		return nil, m.findError(err)
	}
	return &chat, nil
}

// UpdateCustomerProfile sets the contact card fields supplied on explicit
// chat creation.
func (m *MongoDB) UpdateCustomerProfile(ctx context.Context, id primitive.ObjectID, email, address string) error {
	set := bson.D{{Key: "updated_at", Value: time.Now()}}
	if email != "" {
		set = append(set, bson.E{Key: "customer_email", Value: email})
	}
	if address != "" {
		set = append(set, bson.E{Key: "customer_address", Value: address})
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)
	_, err = collection.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("mongodb update customer profile: %w", err)
	}
	return nil
}

// SetChatMode forces the mode of a chat, used by administrator overrides
// and dashboard mode updates.
func (m *MongoDB) SetChatMode(ctx context.Context, id primitive.ObjectID, mode entity.ChatMode) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)
	_, err = collection.UpdateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "mode", Value: mode},
			{Key: "updated_at", Value: time.Now()},
		}},
	})
	if err != nil {
		return fmt.Errorf("mongodb set chat mode: %w", err)
	}
	return nil
}

// TouchHumanReply records that a human handled this chat now. Bot replies
// are suppressed for the cooldown window measured from this timestamp.
func (m *MongoDB) TouchHumanReply(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)
	_, err = collection.UpdateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "last_human_reply_at", Value: at},
			{Key: "updated_at", Value: time.Now()},
		}},
	})
	if err != nil {
		return fmt.Errorf("mongodb touch human reply: %w", err)
	}
	return nil
}
