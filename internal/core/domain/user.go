package domain

import (
	"strings"
	"time"
)

const (
	DefaultProfilePicture = "/uploads/default-avatars/default.png"
	DefaultLocation       = "Location not set"

	MaxHeadlineLen = 220
	MaxBioLen      = 2600
	MaxWorkLen     = 500
)

// Experience is a single entry of a user's work history.
type Experience struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// User models an account holder of the network.
type User struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	Gender         string       `json:"gender"`
	PasswordHash   string       `json:"-"`
	IsVerified     bool         `json:"isVerified"`
	IsAdmin        bool         `json:"isAdmin"`
	IsBlocked      bool         `json:"isBlocked"`
	VerifyToken    string       `json:"-"`
	ResetToken     string       `json:"-"`
	ResetExpires   *time.Time   `json:"-"`
	Location       string       `json:"location"`
	ProfilePicture string       `json:"profilePicture"`
	DateOfBirth    time.Time    `json:"dateOfBirth"`
	Headline       string       `json:"headline"`
	Bio            string       `json:"bio"`
	Work           string       `json:"work"`
	Experiences    []Experience `json:"experiences"`
	Resume         string       `json:"resume,omitempty"`
	ProfileViews   int64        `json:"profileViews"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// UserSummary is the public projection embedded in feeds, comments and lists.
type UserSummary struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// Summary returns the public projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}

// HasCustomPicture reports whether the stored picture is an uploaded file
// rather than a default avatar.
func (u *User) HasCustomPicture() bool {
	p := u.ProfilePicture
	return p != "" && !strings.Contains(p, "default-avatars") && !strings.Contains(p, "ui-avatars.com")
}

// LatestExperience returns the experience with the most recent start date.
func (u *User) LatestExperience() *Experience {
	var latest *Experience
	for i := range u.Experiences {
		e := &u.Experiences[i]
		if latest == nil {
			latest = e
			continue
		}
		if e.StartDate != nil && (latest.StartDate == nil || e.StartDate.After(*latest.StartDate)) {
			latest = e
		}
	}
	return latest
}

// ProfileStatus reports which profile sections are still empty.
type ProfileStatus struct {
	IsComplete    bool     `json:"isComplete"`
	MissingFields []string `json:"missingFields"`
}

// Completeness checks headline, bio, work and experiences.
func (u *User) Completeness() ProfileStatus {
	missing := []string{}
	if strings.TrimSpace(u.Headline) == "" {
		missing = append(missing, "Headline")
	}
	if strings.TrimSpace(u.Bio) == "" {
		missing = append(missing, "Bio")
	}
	if strings.TrimSpace(u.Work) == "" {
		missing = append(missing, "Current Work")
	}
	if len(u.Experiences) == 0 {
		missing = append(missing, "Work Experience")
	}
	return ProfileStatus{IsComplete: len(missing) == 0, MissingFields: missing}
}

// Identity is the authenticated caller carried by a session credential.
type Identity struct {
	ID    string
	Email string
}
