package domain

import "time"

// JobType enumerates the accepted employment types.
type JobType string

const (
	JobFullTime   JobType = "Full-time"
	JobPartTime   JobType = "Part-time"
	JobContract   JobType = "Contract"
	JobFreelance  JobType = "Freelance"
	JobInternship JobType = "Internship"

	DefaultJobDescription = "no description provided"
)

// Valid reports whether t is one of the known job types.
func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobContract, JobFreelance, JobInternship:
		return true
	}
	return false
}

// ApplicationStatus tracks an applicant entry on a job.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationRejected ApplicationStatus = "rejected"
	ApplicationAccepted ApplicationStatus = "accepted"
)

// Applicant is an entry of a job's embedded applicant list.
type Applicant struct {
	UserID    string            `json:"userId"`
	AppliedAt time.Time         `json:"appliedAt"`
	Status    ApplicationStatus `json:"status"`
}

// Job is a posting owned by one user. Deactivation is a soft delete.
type Job struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	Type        JobType     `json:"type"`
	Description string      `json:"description"`
	PostedBy    string      `json:"postedBy"`
	Applicants  []Applicant `json:"applicants"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// HasApplicant reports whether userID already applied.
func (j *Job) HasApplicant(userID string) bool {
	for _, a := range j.Applicants {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
