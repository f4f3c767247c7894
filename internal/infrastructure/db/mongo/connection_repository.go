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

const collectionConnections = "connections"

type ConnectionRepository struct {
	col *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{col: db.Collection(collectionConnections)}
}

type mongoConnection struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Requester string             `bson:"requester"`
	Receiver  string             `bson:"receiver"`
	PairKey   string             `bson:"pair_key"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m *mongoConnection) toDomain() *domain.Connection {
	return &domain.Connection{
		ID:          m.ID.Hex(),
		RequesterID: m.Requester,
		ReceiverID:  m.Receiver,
		Status:      domain.ConnectionStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Create relies on the unique pair_key index to reject a second record for
// the same two users in either direction.
func (r *ConnectionRepository) Create(ctx context.Context, c *domain.Connection) (*domain.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoConnection{
		Requester: c.RequesterID,
		Receiver:  c.ReceiverID,
		PairKey:   domain.PairKey(c.RequesterID, c.ReceiverID),
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConnectionExists
		}
		return nil, fmt.Errorf("insert connection: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ConnectionRepository) findOne(ctx context.Context, filter bson.M) (*domain.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoConnection
	if err := r.col.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, fmt.Errorf("find connection: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ConnectionRepository) FindByID(ctx context.Context, id string) (*domain.Connection, error) {
	oid, err := objectID(id, domain.ErrConnectionNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ConnectionRepository) FindBetween(ctx context.Context, a, b string) (*domain.Connection, error) {
	return r.findOne(ctx, bson.M{"pair_key": domain.PairKey(a, b)})
}

func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id string, status domain.ConnectionStatus) error {
	oid, err := objectID(id, domain.ErrConnectionNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("update connection: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}

func (r *ConnectionRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrConnectionNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}

func (r *ConnectionRepository) ListPendingFor(ctx context.Context, receiverID string) ([]domain.Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"receiver": receiverID, "status": string(domain.ConnectionPending)}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	var docs []mongoConnection
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode connections: %w", err)
	}
	out := make([]domain.Connection, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

func (r *ConnectionRepository) CountAccepted(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status": string(domain.ConnectionAccepted),
		"$or":    bson.A{bson.M{"requester": userID}, bson.M{"receiver": userID}},
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count connections: %w", err)
	}
	return n, nil
}

func (r *ConnectionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "pair_key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "receiver", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "requester", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("connections indexes: %w", err)
	}
	return nil
}
