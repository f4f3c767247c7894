package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

const collectionMessages = "messages"

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type mongoMessage struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ConversationID string             `bson:"conversation_id"`
	SequenceNumber int64              `bson:"sequence_number"`
	Sender         string             `bson:"sender"`
	Receiver       string             `bson:"receiver"`
	Text           string             `bson:"text"`
	Read           bool               `bson:"read"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (m *mongoMessage) toDomain() domain.Message {
	return domain.Message{
		ID:             m.ID.Hex(),
		ConversationID: m.ConversationID,
		SequenceNumber: m.SequenceNumber,
		SenderID:       m.Sender,
		ReceiverID:     m.Receiver,
		Text:           m.Text,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMessage{
		ConversationID: msg.ConversationID,
		SequenceNumber: msg.SequenceNumber,
		Sender:         msg.SenderID,
		Receiver:       msg.ReceiverID,
		Text:           msg.Text,
		Read:           msg.Read,
		CreatedAt:      msg.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	out := doc.toDomain()
	return &out, nil
}

func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sequence_number", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	var docs []mongoMessage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	out := make([]domain.Message, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func unreadFilter(conversationID, receiverID string) bson.M {
	return bson.M{"conversation_id": conversationID, "receiver": receiverID, "read": false}
}

func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, receiverID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx, unreadFilter(conversationID, receiverID), bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, conversationID, receiverID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, unreadFilter(conversationID, receiverID))
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

// EnsureIndexes keeps (conversation, sequence) unique.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conversation_id", Value: 1}, {Key: "sequence_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "receiver", Value: 1}, {Key: "read", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("messages indexes: %w", err)
	}
	return nil
}
