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

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type mongoApplicant struct {
	User      string    `bson:"user"`
	AppliedAt time.Time `bson:"applied_at"`
	Status    string    `bson:"status"`
}

type mongoJob struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Company     string             `bson:"company"`
	Location    string             `bson:"location"`
	Type        string             `bson:"type"`
	Description string             `bson:"description"`
	PostedBy    string             `bson:"posted_by"`
	Applicants  []mongoApplicant   `bson:"applicants"`
	IsActive    bool               `bson:"is_active"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m *mongoJob) toDomain() *domain.Job {
	applicants := make([]domain.Applicant, 0, len(m.Applicants))
	for _, a := range m.Applicants {
		applicants = append(applicants, domain.Applicant{
			UserID:    a.User,
			AppliedAt: a.AppliedAt,
			Status:    domain.ApplicationStatus(a.Status),
		})
	}
	return &domain.Job{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Company:     m.Company,
		Location:    m.Location,
		Type:        domain.JobType(m.Type),
		Description: m.Description,
		PostedBy:    m.PostedBy,
		Applicants:  applicants,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Type:        string(j.Type),
		Description: j.Description,
		PostedBy:    j.PostedBy,
		Applicants:  []mongoApplicant{},
		IsActive:    j.IsActive,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := objectID(id, domain.ErrJobNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mj mongoJob
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

func (r *JobRepository) ListActive(ctx context.Context) ([]domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	var docs []mongoJob
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	out := make([]domain.Job, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

// AddApplicant pushes the entry only if the filter still holds, which makes
// the duplicate and own-job checks part of the same atomic update.
func (r *JobRepository) AddApplicant(ctx context.Context, jobID string, a domain.Applicant) error {
	oid, err := objectID(jobID, domain.ErrJobNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":             oid,
		"posted_by":       bson.M{"$ne": a.UserID},
		"applicants.user": bson.M{"$ne": a.UserID},
	}
	update := bson.M{
		"$push": bson.M{"applicants": mongoApplicant{User: a.UserID, AppliedAt: a.AppliedAt, Status: string(a.Status)}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("add applicant: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	job, err := r.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.PostedBy == a.UserID {
		return domain.ErrOwnJob
	}
	return domain.ErrAlreadyApplied
}

func (r *JobRepository) Deactivate(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrJobNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("deactivate job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("jobs indexes: %w", err)
	}
	return nil
}
