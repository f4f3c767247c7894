package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// JobService implements job postings and applications.
type JobService struct {
	users         ports.UserRepository
	jobs          ports.JobRepository
	conversations ports.ConversationRepository
	writer        messageWriter
	baseURL       string
	log           zerolog.Logger
	now           func() time.Time
}

func NewJobService(
	users ports.UserRepository,
	jobs ports.JobRepository,
	conversations ports.ConversationRepository,
	messages ports.MessageRepository,
	baseURL string,
	log zerolog.Logger,
) *JobService {
	now := func() time.Time { return time.Now().UTC() }
	return &JobService{
		users:         users,
		jobs:          jobs,
		conversations: conversations,
		writer:        messageWriter{conversations: conversations, messages: messages, now: now},
		baseURL:       strings.TrimRight(baseURL, "/"),
		log:           log,
		now:           now,
	}
}

func (s *JobService) Create(ctx context.Context, posterID string, in ports.CreateJobInput) (*domain.Job, error) {
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company)
	location := strings.TrimSpace(in.Location)
	if title == "" || company == "" || location == "" {
		return nil, domain.Invalid("Title, company and location are required.")
	}

	jobType := domain.JobType(strings.TrimSpace(in.Type))
	if jobType == "" {
		jobType = domain.JobFullTime
	}
	if !jobType.Valid() {
		return nil, domain.Invalid("Unknown job type: " + string(jobType))
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = domain.DefaultJobDescription
	}

	now := s.now()
	job, err := s.jobs.Create(ctx, &domain.Job{
		Title:       title,
		Company:     company,
		Location:    location,
		Type:        jobType,
		Description: description,
		PostedBy:    posterID,
		Applicants:  []domain.Applicant{},
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("job_id", job.ID).Msg("job posted")
	return job, nil
}

func (s *JobService) ListActive(ctx context.Context, callerID string) ([]ports.JobListing, error) {
	jobs, err := s.jobs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.PostedBy)
	}
	posters, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]ports.JobListing, 0, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		out = append(out, ports.JobListing{
			Job:        *j,
			PostedBy:   posters[j.PostedBy],
			HasApplied: j.HasApplicant(callerID),
			IsOwner:    j.PostedBy == callerID,
			PostedAgo:  timeAgo(j.CreatedAt, now),
		})
	}
	return out, nil
}

// Apply records the application and sends the poster an application message
// in their shared conversation. The applicant entry is written first so that
// a repeated request cannot produce a second message.
func (s *JobService) Apply(ctx context.Context, jobID, applicantID string) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.PostedBy == applicantID {
		return domain.ErrOwnJob
	}
	if job.HasApplicant(applicantID) {
		return domain.ErrAlreadyApplied
	}
	applicant, err := s.users.FindByID(ctx, applicantID)
	if err != nil {
		return err
	}

	if err := s.jobs.AddApplicant(ctx, job.ID, domain.Applicant{
		UserID:    applicantID,
		AppliedAt: s.now(),
		Status:    domain.ApplicationPending,
	}); err != nil {
		return err
	}

	body, err := renderApplication(job, applicant, s.baseURL)
	if err != nil {
		return err
	}
	conv, err := s.conversations.FindOrCreate(ctx, applicantID, job.PostedBy)
	if err != nil {
		return err
	}
	if _, err := s.writer.append(ctx, conv, applicantID, job.PostedBy, body); err != nil {
		s.log.Error().Err(err).Str("job_id", job.ID).Msg("application recorded but message failed")
		return err
	}

	s.log.Info().Str("job_id", job.ID).Str("user_id", applicantID).Msg("application sent")
	return nil
}

func (s *JobService) Deactivate(ctx context.Context, jobID, callerID string) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.PostedBy != callerID {
		return domain.ErrForbidden
	}
	return s.jobs.Deactivate(ctx, job.ID)
}
