package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"AsmiDesk/entity"
)

// SaveAdminMessage appends a message to an agent's admin side-channel.
func (m *MongoDB) SaveAdminMessage(ctx context.Context, msg entity.AdminMessage) (*entity.AdminMessage, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(adminMessagesCollection)

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	msg.ID = primitive.NewObjectID()

	if _, err := collection.InsertOne(ctx, msg); err != nil {
		return nil, fmt.Errorf("mongodb insert admin message: %w", err)
	}
	return &msg, nil
}

// GetAdminMessages returns an agent's admin thread ordered by time. The
// thread's current mode is derived from the last element by the caller.
func (m *MongoDB) GetAdminMessages(ctx context.Context, agentID string) ([]entity.AdminMessage, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(adminMessagesCollection)

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := collection.Find(ctx, bson.D{{Key: "agent_id", Value: agentID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find admin messages: %w", err)
	}
	defer cursor.Close(ctx)

	var result []entity.AdminMessage
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("mongodb decode admin messages: %w", err)
	}
	return result, nil
}
