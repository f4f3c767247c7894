package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoExperience struct {
	Title       string     `bson:"title"`
	Company     string     `bson:"company"`
	Location    string     `bson:"location,omitempty"`
	StartDate   *time.Time `bson:"start_date,omitempty"`
	EndDate     *time.Time `bson:"end_date,omitempty"`
	Current     bool       `bson:"current"`
	Description string     `bson:"description,omitempty"`
}

type mongoUser struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	Gender         string             `bson:"gender"`
	PasswordHash   string             `bson:"password_hash"`
	IsVerified     bool               `bson:"is_verified"`
	IsAdmin        bool               `bson:"is_admin"`
	IsBlocked      bool               `bson:"is_blocked"`
	VerifyToken    string             `bson:"verify_token,omitempty"`
	ResetToken     string             `bson:"reset_token,omitempty"`
	ResetExpires   *time.Time         `bson:"reset_expires,omitempty"`
	Location       string             `bson:"location"`
	ProfilePicture string             `bson:"profile_picture"`
	DateOfBirth    time.Time          `bson:"date_of_birth"`
	Headline       string             `bson:"headline"`
	Bio            string             `bson:"bio"`
	Work           string             `bson:"work"`
	Experiences    []mongoExperience  `bson:"experiences"`
	Resume         string             `bson:"resume,omitempty"`
	ProfileViews   int64              `bson:"profile_views"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func experiencesToDoc(in []domain.Experience) []mongoExperience {
	out := make([]mongoExperience, 0, len(in))
	for _, e := range in {
		out = append(out, mongoExperience(e))
	}
	return out
}

func (m *mongoUser) toDomain() *domain.User {
	exps := make([]domain.Experience, 0, len(m.Experiences))
	for _, e := range m.Experiences {
		exps = append(exps, domain.Experience(e))
	}
	return &domain.User{
		ID:             m.ID.Hex(),
		Username:       m.Username,
		Email:          m.Email,
		Gender:         m.Gender,
		PasswordHash:   m.PasswordHash,
		IsVerified:     m.IsVerified,
		IsAdmin:        m.IsAdmin,
		IsBlocked:      m.IsBlocked,
		VerifyToken:    m.VerifyToken,
		ResetToken:     m.ResetToken,
		ResetExpires:   m.ResetExpires,
		Location:       m.Location,
		ProfilePicture: m.ProfilePicture,
		DateOfBirth:    m.DateOfBirth,
		Headline:       m.Headline,
		Bio:            m.Bio,
		Work:           m.Work,
		Experiences:    exps,
		Resume:         m.Resume,
		ProfileViews:   m.ProfileViews,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:       u.Username,
		Email:          u.Email,
		Gender:         u.Gender,
		PasswordHash:   u.PasswordHash,
		IsVerified:     u.IsVerified,
		IsAdmin:        u.IsAdmin,
		IsBlocked:      u.IsBlocked,
		VerifyToken:    u.VerifyToken,
		Location:       u.Location,
		ProfilePicture: u.ProfilePicture,
		DateOfBirth:    u.DateOfBirth,
		Headline:       u.Headline,
		Bio:            u.Bio,
		Work:           u.Work,
		Experiences:    experiencesToDoc(u.Experiences),
		Resume:         u.Resume,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

var summaryProjection = bson.M{"username": 1, "profile_picture": 1}

func (r *UserRepository) FindSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error) {
	out := make(map[string]domain.UserSummary, len(ids))
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find().SetProjection(summaryProjection))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for i := range docs {
		out[docs[i].ID.Hex()] = docs[i].toDomain().Summary()
	}
	return out, nil
}

// Search matches a case-insensitive username substring. The input is quoted
// so it is never interpreted as a pattern.
func (r *UserRepository) Search(ctx context.Context, username string, limit int) ([]domain.UserSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"username": primitive.Regex{Pattern: regexp.QuoteMeta(username), Options: "i"}}
	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "username", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]domain.UserSummary, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain().Summary())
	}
	return out, nil
}

func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"is_verified": true, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"verify_token": ""},
	}
	var mu mongoUser
	err := r.col.FindOneAndUpdate(ctx, bson.M{"verify_token": token}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("verify user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"reset_token":   token,
		"reset_expires": expires,
		"updated_at":    time.Now().UTC(),
	}})
}

func resetFilter(token string, now time.Time) bson.M {
	return bson.M{"reset_token": token, "reset_expires": bson.M{"$gt": now}}
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	u, err := r.findOne(ctx, resetFilter(token, now))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidToken
	}
	return u, err
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": now},
		"$unset": bson.M{"reset_token": "", "reset_expires": ""},
	}
	res, err := r.col.UpdateOne(ctx, resetFilter(token, now), update)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidToken
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, up ports.ProfileUpdate) (*domain.User, error) {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"headline":   up.Headline,
		"work":       up.Work,
		"bio":        up.Bio,
		"updated_at": time.Now().UTC(),
	}
	if up.ReplaceExperiences {
		set["experiences"] = experiencesToDoc(up.Experiences)
	}

	var mu mongoUser
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return mu.toDomain(), nil
}

// swapField sets field to value and returns the value it replaced.
func (r *UserRepository) swapField(ctx context.Context, id, field, value string) (string, error) {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.M{field: 1})
	var prev bson.M
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{field: value, "updated_at": time.Now().UTC()}}, opts).Decode(&prev)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("update %s: %w", field, err)
	}
	old, _ := prev[field].(string)
	return old, nil
}

func (r *UserRepository) SetProfilePicture(ctx context.Context, id, path string) (string, error) {
	return r.swapField(ctx, id, "profile_picture", path)
}

func (r *UserRepository) SetResume(ctx context.Context, id, path string) (string, error) {
	return r.swapField(ctx, id, "resume", path)
}

func (r *UserRepository) IncrementProfileViews(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{"$inc": bson.M{"profile_views": 1}})
}

func (r *UserRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"is_blocked": blocked, "updated_at": time.Now().UTC()}})
}

// SetAdmin grants or revokes administrator rights.
func (r *UserRepository) SetAdmin(ctx context.Context, id string, admin bool) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"is_admin": admin, "updated_at": time.Now().UTC()}})
}

// IsAdmin backs the admin route guard.
func (r *UserRepository) IsAdmin(ctx context.Context, id string) (bool, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}

// IsBlocked backs the session guard of secured routes.
func (r *UserRepository) IsBlocked(ctx context.Context, id string) (bool, error) {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		IsBlocked bool `bson:"is_blocked"`
	}
	opts := options.FindOne().SetProjection(bson.M{"is_blocked": 1})
	err = r.col.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, domain.ErrUserNotFound
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	return doc.IsBlocked, nil
}

func (r *UserRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := objectID(id, domain.ErrUserNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique account keys and the token lookups.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "verify_token", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "reset_token", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	return nil
}
