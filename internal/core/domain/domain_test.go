package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestPairKey_OrderIndependent(t *testing.T) {
	if PairKey("b", "a") != PairKey("a", "b") {
		t.Fatalf("pair key must not depend on argument order")
	}
	if PairKey("a", "b") != "a:b" {
		t.Fatalf("unexpected key %q", PairKey("a", "b"))
	}
	if PairKey("a", "b") == PairKey("a", "c") {
		t.Fatalf("distinct pairs must not collide")
	}
}

func TestUser_Completeness(t *testing.T) {
	u := &User{Headline: "Engineer", Bio: "  "}
	st := u.Completeness()
	if st.IsComplete {
		t.Fatalf("expected incomplete profile")
	}
	want := []string{"Bio", "Current Work", "Work Experience"}
	if fmt.Sprint(st.MissingFields) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, st.MissingFields)
	}

	u.Bio, u.Work = "Hello", "Acme"
	u.Experiences = []Experience{{Title: "Dev", Company: "Acme"}}
	if st := u.Completeness(); !st.IsComplete || len(st.MissingFields) != 0 {
		t.Fatalf("expected complete profile, got %+v", st)
	}
}

func TestUser_LatestExperience(t *testing.T) {
	if (&User{}).LatestExperience() != nil {
		t.Fatalf("expected nil without experiences")
	}

	older := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	u := &User{Experiences: []Experience{
		{Title: "Undated"},
		{Title: "Old", StartDate: &older},
		{Title: "New", StartDate: &newer},
	}}
	if got := u.LatestExperience(); got == nil || got.Title != "New" {
		t.Fatalf("expected New, got %+v", got)
	}
}

func TestUser_HasCustomPicture(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"", false},
		{DefaultProfilePicture, false},
		{"https://ui-avatars.com/api/?name=A", false},
		{"/uploads/profile-pictures/profile-1-abcd.png", true},
	}
	for _, tc := range tests {
		u := &User{ProfilePicture: tc.path}
		if got := u.HasCustomPicture(); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.path, tc.want, got)
		}
	}
}

func TestJobType_Valid(t *testing.T) {
	for _, jt := range []JobType{JobFullTime, JobPartTime, JobContract, JobFreelance, JobInternship} {
		if !jt.Valid() {
			t.Fatalf("%q should be valid", jt)
		}
	}
	if JobType("full-time").Valid() || JobType("").Valid() {
		t.Fatalf("unknown types must be rejected")
	}
}

func TestJob_HasApplicant(t *testing.T) {
	j := &Job{Applicants: []Applicant{{UserID: "u1"}}}
	if !j.HasApplicant("u1") || j.HasApplicant("u2") {
		t.Fatalf("unexpected applicant lookup")
	}
}

func TestConversation_Participants(t *testing.T) {
	c := &Conversation{Users: []string{"u1", "u2"}}
	if !c.HasParticipant("u2") || c.HasParticipant("u3") {
		t.Fatalf("unexpected participant check")
	}
	if c.OtherParticipant("u1") != "u2" {
		t.Fatalf("expected u2")
	}
}

func TestPost_HasBody(t *testing.T) {
	if (&Post{Content: "   "}).HasBody() {
		t.Fatalf("blank post must have no body")
	}
	if !(&Post{Image: "/uploads/posts/post-1.png"}).HasBody() {
		t.Fatalf("image-only post has a body")
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create job: %w", Invalid("Title is required."))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is to match ErrValidation")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Msg != "Title is required." {
		t.Fatalf("expected message to survive wrapping, got %v", err)
	}
}
