package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

var applicationTmpl = template.Must(template.New("application").Parse(
	`<div style="font-family: sans-serif; border: 1px solid #e5e7eb; border-radius: 12px; padding: 20px; background-color: #f9fafb; max-width: 600px;">` +
		`<h3 style="margin-top: 0; color: #1f2937;">Application: {{.Job.Title}}</h3>` +
		`<p style="color: #4b5563;">Hello! I'm interested in the <strong>{{.Job.Title}}</strong> role at <strong>{{.Job.Company}}</strong>.</p>` +
		`<hr style="border: 0; border-top: 1px solid #d1d5db; margin: 15px 0;">` +
		`<div style="display: flex; gap: 15px; align-items: start;">` +
		`<img src="{{.Picture}}" style="width: 60px; height: 60px; border-radius: 50%; object-fit: cover; border: 2px solid #3b82f6;">` +
		`<div><h4 style="margin: 0; font-size: 18px; color: #111827;">{{.Applicant.Username}}</h4>` +
		`<p style="margin: 4px 0; color: #6b7280; font-size: 14px;">{{.Headline}}</p>` +
		`<p style="margin: 0; font-size: 13px; color: #9ca3af;">{{.Location}}</p></div></div>` +
		`<div style="margin-top: 15px; background: white; padding: 15px; border-radius: 8px; border: 1px solid #e5e7eb;">` +
		`<strong style="color: #374151; font-size: 14px; display: block; margin-bottom: 5px;">LATEST EXPERIENCE</strong>` +
		`{{with .Experience}}<div style="font-size: 14px;"><span style="color: #111827; font-weight: 600;">{{.Title}}</span> at <span style="color: #2563eb;">{{.Company}}</span>` +
		`<div style="color: #6b7280; font-size: 12px; margin-top: 2px;">{{$.Period}}</div></div>` +
		`{{else}}<span style="color: #9ca3af; font-size: 14px;">No experience listed</span>{{end}}</div>` +
		`<div style="margin-top: 20px; text-align: center;"><a href="{{.ProfileLink}}" style="background-color: #2563eb; color: white; padding: 10px 20px; text-decoration: none; border-radius: 6px; font-weight: bold; font-size: 14px; display: inline-block;">View Full Profile</a></div>` +
		`</div>`,
))

type applicationData struct {
	Job         *domain.Job
	Applicant   *domain.User
	Picture     string
	Headline    string
	Location    string
	Experience  *domain.Experience
	Period      string
	ProfileLink string
}

// renderApplication builds the message an applicant sends to the poster.
// Every user supplied value is escaped by html/template.
func renderApplication(job *domain.Job, applicant *domain.User, baseURL string) (string, error) {
	data := applicationData{
		Job:         job,
		Applicant:   applicant,
		Picture:     applicant.ProfilePicture,
		Headline:    applicant.Headline,
		Location:    applicant.Location,
		Experience:  applicant.LatestExperience(),
		ProfileLink: baseURL + "/profile/" + applicant.Username,
	}
	if data.Picture == "" {
		data.Picture = domain.DefaultProfilePicture
	}
	if data.Headline == "" {
		data.Headline = applicant.Work
	}
	if data.Headline == "" {
		data.Headline = "No headline"
	}
	if data.Location == "" {
		data.Location = domain.DefaultLocation
	}
	if exp := data.Experience; exp != nil {
		data.Period = experiencePeriod(exp)
	}

	var buf bytes.Buffer
	if err := applicationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render application: %w", err)
	}
	return buf.String(), nil
}

func experiencePeriod(e *domain.Experience) string {
	year := func(t *time.Time) string {
		if t == nil {
			return "?"
		}
		return strconv.Itoa(t.Year())
	}
	end := "Present"
	if !e.Current {
		end = year(e.EndDate)
	}
	return year(e.StartDate) + " - " + end
}

// timeAgo renders the age of t relative to now in a compact form.
func timeAgo(t, now time.Time) string {
	seconds := now.Sub(t).Seconds()
	steps := []struct {
		span   float64
		suffix string
	}{
		{31536000, "y ago"},
		{2592000, "mo ago"},
		{86400, "d ago"},
		{3600, "h ago"},
		{60, "m ago"},
	}
	for _, st := range steps {
		if n := seconds / st.span; n > 1 {
			return strconv.Itoa(int(n)) + st.suffix
		}
	}
	return "Just now"
}
