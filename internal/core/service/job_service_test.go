package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

type jobFixture struct {
	users *stubUserRepo
	jobs  *stubJobRepo
	convs *stubConversationRepo
	msgs  *stubMessageRepo
	svc   *JobService
}

func newJobFixture() *jobFixture {
	f := &jobFixture{
		users: newStubUserRepo(),
		jobs:  newStubJobRepo(),
		convs: newStubConversationRepo(),
		msgs:  &stubMessageRepo{},
	}
	f.svc = NewJobService(f.users, f.jobs, f.convs, f.msgs, "http://localhost:8080", discardLogger)
	return f
}

func TestJobService_CreateDefaults(t *testing.T) {
	f := newJobFixture()
	poster := f.users.add(domain.User{Username: "hr"})

	job, err := f.svc.Create(context.Background(), poster, ports.CreateJobInput{Title: "Dev", Company: "Acme", Location: "Remote"})
	require.NoError(t, err)
	assert.Equal(t, domain.JobFullTime, job.Type)
	assert.Equal(t, domain.DefaultJobDescription, job.Description)
	assert.True(t, job.IsActive)

	_, err = f.svc.Create(context.Background(), poster, ports.CreateJobInput{Title: "Dev", Company: "Acme"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Create(context.Background(), poster, ports.CreateJobInput{Title: "Dev", Company: "Acme", Location: "x", Type: "Gig"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestJobService_ApplyRules(t *testing.T) {
	f := newJobFixture()
	poster := f.users.add(domain.User{Username: "hr"})
	applicant := f.users.add(domain.User{Username: "dev<script>", Headline: "Gopher"})
	ctx := context.Background()
	job, err := f.svc.Create(ctx, poster, ports.CreateJobInput{Title: "Dev", Company: "Acme", Location: "Remote"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Apply(ctx, job.ID, poster), domain.ErrOwnJob)
	require.NoError(t, f.svc.Apply(ctx, job.ID, applicant))
	assert.ErrorIs(t, f.svc.Apply(ctx, job.ID, applicant), domain.ErrAlreadyApplied)
	assert.ErrorIs(t, f.svc.Apply(ctx, "missing", applicant), domain.ErrJobNotFound)

	require.Len(t, f.msgs.msgs, 1)
	msg := f.msgs.msgs[0]
	assert.Equal(t, int64(1), msg.SequenceNumber)
	assert.Equal(t, poster, msg.ReceiverID)
	assert.Contains(t, msg.Text, "Gopher")
	assert.Contains(t, msg.Text, "No experience listed")
	assert.False(t, strings.Contains(msg.Text, "<script>"), "user content must be escaped")
}

func TestJobService_ApplicationSharesMessageSequence(t *testing.T) {
	f := newJobFixture()
	poster := f.users.add(domain.User{Username: "hr"})
	applicant := f.users.add(domain.User{Username: "dev"})
	ctx := context.Background()
	messaging := NewMessagingService(f.users, f.convs, f.msgs, discardLogger)

	_, err := messaging.SendMessage(ctx, ports.SendMessageInput{SenderID: applicant, ReceiverID: poster, Text: "hello"})
	require.NoError(t, err)

	job, err := f.svc.Create(ctx, poster, ports.CreateJobInput{Title: "Dev", Company: "Acme", Location: "Remote"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Apply(ctx, job.ID, applicant))

	require.Len(t, f.msgs.msgs, 2)
	assert.Equal(t, int64(2), f.msgs.msgs[1].SequenceNumber)
	assert.Equal(t, f.msgs.msgs[0].ConversationID, f.msgs.msgs[1].ConversationID)
}

func TestJobService_ListAndDeactivate(t *testing.T) {
	f := newJobFixture()
	poster := f.users.add(domain.User{Username: "hr"})
	other := f.users.add(domain.User{Username: "dev"})
	ctx := context.Background()
	job, err := f.svc.Create(ctx, poster, ports.CreateJobInput{Title: "Dev", Company: "Acme", Location: "Remote"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Apply(ctx, job.ID, other))

	list, err := f.svc.ListActive(ctx, other)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].HasApplied)
	assert.False(t, list[0].IsOwner)
	assert.Equal(t, "hr", list[0].PostedBy.Username)
	assert.Equal(t, "Just now", list[0].PostedAgo)

	assert.ErrorIs(t, f.svc.Deactivate(ctx, job.ID, other), domain.ErrForbidden)
	require.NoError(t, f.svc.Deactivate(ctx, job.ID, poster))
	list, err = f.svc.ListActive(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := map[time.Duration]string{
		30 * time.Second:     "Just now",
		5 * time.Minute:      "5m ago",
		3 * time.Hour:        "3h ago",
		50 * time.Hour:       "2d ago",
		24 * 40 * time.Hour:  "1mo ago",
		24 * 800 * time.Hour: "2y ago",
	}
	for age, want := range cases {
		assert.Equal(t, want, timeAgo(now.Add(-age), now), age.String())
	}
}
