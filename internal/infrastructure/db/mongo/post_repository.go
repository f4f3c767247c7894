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

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      string             `bson:"user"`
	Content   string             `bson:"content"`
	Image     string             `bson:"image,omitempty"`
	Likes     []string           `bson:"likes"`
	Comments  []string           `bson:"comments"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m *mongoPost) toDomain() *domain.Post {
	likes := m.Likes
	if likes == nil {
		likes = []string{}
	}
	comments := m.Comments
	if comments == nil {
		comments = []string{}
	}
	return &domain.Post{
		ID:         m.ID.Hex(),
		UserID:     m.User,
		Content:    m.Content,
		Image:      m.Image,
		Likes:      likes,
		CommentIDs: comments,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		User:      p.UserID,
		Content:   p.Content,
		Image:     p.Image,
		Likes:     []string{},
		Comments:  []string{},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := objectID(id, domain.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) Feed(ctx context.Context, limit int) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	out := make([]domain.Post, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrPostNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// ToggleLike first tries a conditional $addToSet that only matches when the
// user is absent; when nothing matched the like is removed with $pull. Each
// step is a single-document atomic update.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	oid, err := objectID(postID, domain.ErrPostNotFound)
	if err != nil {
		return false, 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	var mp mongoPost
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}},
		opts,
	).Decode(&mp)
	if err == nil {
		return true, len(mp.Likes), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, 0, fmt.Errorf("like post: %w", err)
	}

	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"likes": userID}},
		opts,
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, 0, domain.ErrPostNotFound
		}
		return false, 0, fmt.Errorf("unlike post: %w", err)
	}
	return false, len(mp.Likes), nil
}

func (r *PostRepository) AddComment(ctx context.Context, postID, commentID string) error {
	return r.updateComments(ctx, postID, bson.M{"$push": bson.M{"comments": commentID}})
}

func (r *PostRepository) RemoveComment(ctx context.Context, postID, commentID string) error {
	return r.updateComments(ctx, postID, bson.M{"$pull": bson.M{"comments": commentID}})
}

func (r *PostRepository) updateComments(ctx context.Context, postID string, update bson.M) error {
	oid, err := objectID(postID, domain.ErrPostNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update post comments: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("posts indexes: %w", err)
	}
	return nil
}
