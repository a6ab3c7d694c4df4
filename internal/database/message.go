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

// AppendMessage inserts a message and updates its chat in one transaction:
// last_message_at always moves forward, unread_count is incremented for
// customer messages only.
func (m *MongoDB) AppendMessage(ctx context.Context, msg entity.Message) (*entity.Message, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	db := connection.Database(m.database)
	messages := db.Collection(messagesCollection)
	chats := db.Collection(chatsCollection)

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	if msg.Status == "" {
		msg.Status = entity.StatusSent
	}
	msg.ID = primitive.NewObjectID()

	chatUpdate := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "last_message_at", Value: msg.CreatedAt},
			{Key: "updated_at", Value: msg.CreatedAt},
		}},
	}
	if msg.Sender == entity.SenderCustomer {
		chatUpdate = append(chatUpdate, bson.E{
			Key: "$inc", Value: bson.D{{Key: "unread_count", Value: 1}},
		})
	}

	session, err := connection.StartSession()
	if err != nil {
		return nil, fmt.Errorf("mongodb start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := messages.InsertOne(sc, msg); err != nil {
			return nil, fmt.Errorf("insert message: %w", err)
		}
		result, err := chats.UpdateByID(sc, msg.ChatID, chatUpdate)
		if err != nil {
			return nil, fmt.Errorf("update chat: %w", err)
		}
		if result.MatchedCount == 0 {
			return nil, fmt.Errorf("chat %s not found", msg.ChatID.Hex())
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("mongodb append message: %w", err)
	}

	return &msg, nil
}

// ListMessages returns the full transcript ordered by created_at ascending
// with the insertion id as tie-break.
func (m *MongoDB) ListMessages(ctx context.Context, chatID primitive.ObjectID) ([]entity.Message, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(messagesCollection)

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := collection.Find(ctx, bson.D{{Key: "chat_id", Value: chatID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var result []entity.Message
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("mongodb decode messages: %w", err)
	}
	return result, nil
}

// MarkAllRead flips every sent customer message of a chat to read and
// resets the unread counter, atomically. Idempotent: a second call matches
// no messages and the counter stays zero.
func (m *MongoDB) MarkAllRead(ctx context.Context, chatID primitive.ObjectID) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	db := connection.Database(m.database)
	messages := db.Collection(messagesCollection)
	chats := db.Collection(chatsCollection)

	session, err := connection.StartSession()
	if err != nil {
		return fmt.Errorf("mongodb start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, err := messages.UpdateMany(sc,
			bson.D{
				{Key: "chat_id", Value: chatID},
				{Key: "sender", Value: entity.SenderCustomer},
				{Key: "status", Value: entity.StatusSent},
			},
			bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: entity.StatusRead}}}},
		)
		if err != nil {
			return nil, fmt.Errorf("mark messages: %w", err)
		}
		_, err = chats.UpdateByID(sc, chatID, bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "unread_count", Value: 0},
				{Key: "updated_at", Value: time.Now()},
			}},
		})
		if err != nil {
			return nil, fmt.Errorf("reset unread: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("mongodb mark all read: %w", err)
	}
	return nil
}
