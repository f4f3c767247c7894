package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// integrationDB connects to MONGO_URI and hands out a throwaway database
// that is dropped when the test ends. Without MONGO_URI the test is skipped.
func integrationDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	name := fmt.Sprintf("socialsphere_it_%d", time.Now().UnixNano())
	client, db, err := Connect(ctx, Config{URI: uri, Database: name})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestIntegration_NextSequenceIsGaplessUnderConcurrency(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	repo := NewConversationRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	conv, err := repo.FindOrCreate(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}
	again, err := repo.FindOrCreate(ctx, "bob", "alice")
	if err != nil || again.ID != conv.ID {
		t.Fatalf("expected the same conversation, got %v (%v)", again, err)
	}

	const n = 40
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seqs []int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := repo.NextSequence(ctx, conv.ID)
			if err != nil {
				t.Errorf("next sequence: %v", err)
				return
			}
			mu.Lock()
			seqs = append(seqs, seq)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	for i, s := range seqs {
		if s != int64(i+1) {
			t.Fatalf("sequence %d = %d, want %d", i, s, i+1)
		}
	}
}

func TestIntegration_AddApplicantIsGuarded(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	repo := NewJobRepository(db)

	job, err := repo.Create(ctx, &domain.Job{Title: "Go dev", Company: "Acme", Location: "Remote", Type: domain.JobFullTime, PostedBy: "owner", IsActive: true})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	apply := func(user string) error {
		return repo.AddApplicant(ctx, job.ID, domain.Applicant{UserID: user, AppliedAt: time.Now().UTC(), Status: domain.ApplicationPending})
	}

	if err := apply("owner"); !errors.Is(err, domain.ErrOwnJob) {
		t.Fatalf("expected ErrOwnJob, got %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- apply("carol")
		}()
	}
	wg.Wait()
	close(results)

	accepted := 0
	for err := range results {
		switch {
		case err == nil:
			accepted++
		case !errors.Is(err, domain.ErrAlreadyApplied):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accepted != 1 {
		t.Fatalf("accepted %d applications, want 1", accepted)
	}
	stored, err := repo.FindByID(ctx, job.ID)
	if err != nil || len(stored.Applicants) != 1 {
		t.Fatalf("expected one applicant, got %+v (%v)", stored, err)
	}
}

func TestIntegration_ToggleLike(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	repo := NewPostRepository(db)

	post, err := repo.Create(ctx, &domain.Post{UserID: "author", Content: "hello", CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	liked, count, err := repo.ToggleLike(ctx, post.ID, "u1")
	if err != nil || !liked || count != 1 {
		t.Fatalf("first toggle = %v %d %v", liked, count, err)
	}
	liked, count, err = repo.ToggleLike(ctx, post.ID, "u2")
	if err != nil || !liked || count != 2 {
		t.Fatalf("second user toggle = %v %d %v", liked, count, err)
	}
	liked, count, err = repo.ToggleLike(ctx, post.ID, "u1")
	if err != nil || liked || count != 1 {
		t.Fatalf("unlike = %v %d %v", liked, count, err)
	}
	if _, _, err := repo.ToggleLike(ctx, "000000000000000000000000", "u1"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestIntegration_ConnectionPairKeyIsUnique(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	repo := NewConnectionRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	now := time.Now().UTC()
	if _, err := repo.Create(ctx, &domain.Connection{RequesterID: "a", ReceiverID: "b", Status: domain.ConnectionPending, CreatedAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(ctx, &domain.Connection{RequesterID: "b", ReceiverID: "a", Status: domain.ConnectionPending, CreatedAt: now})
	if !errors.Is(err, domain.ErrConnectionExists) {
		t.Fatalf("expected ErrConnectionExists for the reverse pair, got %v", err)
	}
	found, err := repo.FindBetween(ctx, "b", "a")
	if err != nil || found.RequesterID != "a" {
		t.Fatalf("find between = %+v (%v)", found, err)
	}
}
