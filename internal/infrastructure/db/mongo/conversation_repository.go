package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

const collectionConversations = "conversations"

type ConversationRepository struct {
	col *mongo.Collection
}

func NewConversationRepository(db *mongo.Database) *ConversationRepository {
	return &ConversationRepository{col: db.Collection(collectionConversations)}
}

type mongoConversation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Users        []string           `bson:"users"`
	PairKey      string             `bson:"pair_key"`
	LastSequence int64              `bson:"last_sequence"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (m *mongoConversation) toDomain() *domain.Conversation {
	return &domain.Conversation{
		ID:           m.ID.Hex(),
		Users:        m.Users,
		LastSequence: m.LastSequence,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FindOrCreate upserts on the unordered pair key, so concurrent callers end
// up with the same document.
func (r *ConversationRepository) FindOrCreate(ctx context.Context, a, b string) (*domain.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	key := domain.PairKey(a, b)
	update := bson.M{"$setOnInsert": bson.M{
		"users":         bson.A{a, b},
		"pair_key":      key,
		"last_sequence": int64(0),
		"created_at":    now,
		"updated_at":    now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var mc mongoConversation
	err := r.col.FindOneAndUpdate(ctx, bson.M{"pair_key": key}, update, opts).Decode(&mc)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// lost an upsert race; the winner's document is there now
		err = r.col.FindOne(ctx, bson.M{"pair_key": key}).Decode(&mc)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert conversation: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	oid, err := objectID(id, domain.ErrConversationNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoConversation
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ConversationRepository) ListForUser(ctx context.Context, userID string) ([]domain.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"users": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	var docs []mongoConversation
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}
	out := make([]domain.Conversation, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

// NextSequence increments last_sequence in place and returns the new value.
func (r *ConversationRepository) NextSequence(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id, domain.ErrConversationNotFound)
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"last_sequence": 1})
	var mc mongoConversation
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"last_sequence": 1}}, opts).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrConversationNotFound
		}
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return mc.LastSequence, nil
}

func (r *ConversationRepository) Touch(ctx context.Context, id string, at time.Time) error {
	oid, err := objectID(id, domain.ErrConversationNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.UpdateByID(ctx, oid, bson.M{"$max": bson.M{"updated_at": at}}); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}

func (r *ConversationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "pair_key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "users", Value: 1}, {Key: "updated_at", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("conversations indexes: %w", err)
	}
	return nil
}
