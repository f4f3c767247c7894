package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
)

// ProfileService serves profiles and the uploads attached to them.
type ProfileService struct {
	users       ports.UserRepository
	connections ports.ConnectionRepository
	files       ports.FileStore
	views       ports.ViewDeduper
	log         zerolog.Logger
}

func NewProfileService(
	users ports.UserRepository,
	connections ports.ConnectionRepository,
	files ports.FileStore,
	views ports.ViewDeduper,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{users: users, connections: connections, files: files, views: views, log: log}
}

func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*ports.ProfileView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.ProfileView{
		User:         user,
		Status:       user.Completeness(),
		IsOwnProfile: true,
		Connection:   ports.ConnectionState{Status: "none"},
	}, nil
}

func (s *ProfileService) GetByUsername(ctx context.Context, viewerID, username string) (*ports.ProfileView, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	own := user.ID == viewerID
	if !own && s.countView(ctx, viewerID, user.ID) {
		if err := s.users.IncrementProfileViews(ctx, user.ID); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("profile view increment failed")
		} else {
			user.ProfileViews++
		}
	}

	view := &ports.ProfileView{
		User:         user,
		Status:       user.Completeness(),
		IsOwnProfile: own,
		Connection:   ports.ConnectionState{Status: "none"},
	}
	if own {
		return view, nil
	}

	conn, err := s.connections.FindBetween(ctx, viewerID, user.ID)
	switch {
	case errors.Is(err, domain.ErrConnectionNotFound):
	case err != nil:
		return nil, err
	default:
		view.Connection = ports.ConnectionState{
			Status:       string(conn.Status),
			ConnectionID: conn.ID,
			IsRequester:  conn.RequesterID == viewerID,
			Connection:   conn,
		}
	}
	return view, nil
}

// countView falls back to counting when the dedup store is unavailable.
func (s *ProfileService) countView(ctx context.Context, viewerID, profileID string) bool {
	if s.views == nil {
		return true
	}
	first, err := s.views.FirstView(ctx, viewerID, profileID)
	if err != nil {
		s.log.Warn().Err(err).Msg("profile view dedup unavailable")
		return true
	}
	return first
}

func (s *ProfileService) Update(ctx context.Context, userID string, in ports.UpdateProfileInput) (*ports.ProfileView, error) {
	headline := strings.TrimSpace(in.Headline)
	work := strings.TrimSpace(in.Work)
	bio := strings.TrimSpace(in.Bio)
	if headline == "" || work == "" || bio == "" {
		return nil, domain.Invalid("Headline, work and bio are required.")
	}
	if utf8.RuneCountInString(headline) > domain.MaxHeadlineLen {
		return nil, domain.Invalid(fmt.Sprintf("Headline must be at most %d characters.", domain.MaxHeadlineLen))
	}
	if utf8.RuneCountInString(work) > domain.MaxWorkLen {
		return nil, domain.Invalid(fmt.Sprintf("Work must be at most %d characters.", domain.MaxWorkLen))
	}
	if utf8.RuneCountInString(bio) > domain.MaxBioLen {
		return nil, domain.Invalid(fmt.Sprintf("Bio must be at most %d characters.", domain.MaxBioLen))
	}

	update := ports.ProfileUpdate{Headline: headline, Work: work, Bio: bio}
	if in.Experiences != nil {
		exps, err := parseExperiences(in.Experiences)
		if err != nil {
			return nil, err
		}
		update.Experiences = exps
		update.ReplaceExperiences = true
	}

	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	return &ports.ProfileView{
		User:         user,
		Status:       user.Completeness(),
		IsOwnProfile: true,
		Connection:   ports.ConnectionState{Status: "none"},
	}, nil
}

var experienceDateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01"}

func parseExperienceDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	for _, layout := range experienceDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.Invalid("Invalid experience date: " + v)
}

// parseExperiences drops entries without a title and company.
func parseExperiences(in []ports.ExperienceInput) ([]domain.Experience, error) {
	out := make([]domain.Experience, 0, len(in))
	for _, e := range in {
		title := strings.TrimSpace(e.Title)
		company := strings.TrimSpace(e.Company)
		if title == "" || company == "" {
			continue
		}
		start, err := parseExperienceDate(e.StartDate)
		if err != nil {
			return nil, err
		}
		var end *time.Time
		if !e.Current {
			if end, err = parseExperienceDate(e.EndDate); err != nil {
				return nil, err
			}
		}
		out = append(out, domain.Experience{
			Title:       title,
			Company:     company,
			Location:    strings.TrimSpace(e.Location),
			StartDate:   start,
			EndDate:     end,
			Current:     e.Current,
			Description: strings.TrimSpace(e.Description),
		})
	}
	return out, nil
}

func (s *ProfileService) UploadResume(ctx context.Context, userID string, file ports.FileInput) (string, error) {
	return s.replaceUpload(ctx, userID, domain.UploadResume, file, s.users.SetResume)
}

func (s *ProfileService) UploadProfilePicture(ctx context.Context, userID string, file ports.FileInput) (string, error) {
	return s.replaceUpload(ctx, userID, domain.UploadProfilePicture, file, s.users.SetProfilePicture)
}

// replaceUpload stores the new file, points the record at it and only then
// removes the previous upload. A failed record update removes the new file.
func (s *ProfileService) replaceUpload(
	ctx context.Context,
	userID string,
	kind domain.UploadKind,
	file ports.FileInput,
	set func(ctx context.Context, id, path string) (string, error),
) (string, error) {
	ref, err := s.files.Save(ctx, kind, file)
	if err != nil {
		return "", err
	}

	previous, err := set(ctx, userID, ref)
	if err != nil {
		if rmErr := s.files.Remove(ctx, ref); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("path", ref).Msg("upload cleanup failed")
		}
		return "", err
	}

	if isReplaceableUpload(previous) && previous != ref {
		if err := s.files.Remove(ctx, previous); err != nil {
			s.log.Warn().Err(err).Str("path", previous).Msg("previous upload removal failed")
		}
	}
	s.log.Info().Str("user_id", userID).Str("kind", string(kind)).Msg("upload stored")
	return ref, nil
}

func isReplaceableUpload(path string) bool {
	if path == "" {
		return false
	}
	u := domain.User{ProfilePicture: path}
	return u.HasCustomPicture()
}

func (s *ProfileService) ProfileViews(ctx context.Context, userID string) (int64, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.ProfileViews, nil
}
