package seed

import (
	"time"

	"github.com/yesser147/linkedinSocialMedia/internal/core/domain"
)

// SamplePassword is shared by every sample account.
const SamplePassword = "password123"

type sampleUser struct {
	Username    string
	Email       string
	Password    string
	Gender      string
	DateOfBirth time.Time
	Headline    string
	Work        string
	Bio         string
	Experiences []domain.Experience
}

type samplePost struct {
	author  int
	content string
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var sampleUsers = []sampleUser{
	{
		Username:    "sarah_jenkins",
		Email:       "sarah@techgiant.com",
		Password:    SamplePassword,
		Gender:      "Female",
		DateOfBirth: *day(1990, time.May, 15),
		Headline:    "Recruiter at TechGiant | Hiring Senior Frontend Engineers",
		Work:        "TechGiant Inc.",
		Bio:         "Connecting talented engineers with exciting opportunities. 5+ years in tech recruitment.",
		Experiences: []domain.Experience{
			{Title: "Senior Recruiter", Company: "TechGiant Inc.", Location: "San Francisco, CA", StartDate: day(2020, time.January, 15), Current: true},
			{Title: "HR Specialist", Company: "StartupXYZ", Location: "Remote", StartDate: day(2018, time.June, 1), EndDate: day(2019, time.December, 31)},
		},
	},
	{
		Username:    "david_cho",
		Email:       "david@cybersec.com",
		Password:    SamplePassword,
		Gender:      "Male",
		DateOfBirth: *day(1988, time.August, 22),
		Headline:    "Cybersecurity Analyst",
		Work:        "SecureNet Solutions",
		Bio:         "Security engineer with 8+ years in penetration testing and incident response.",
		Experiences: []domain.Experience{
			{Title: "Senior Cybersecurity Analyst", Company: "SecureNet Solutions", Location: "New York, NY", StartDate: day(2019, time.March, 1), Current: true},
			{Title: "Cybersecurity Engineer", Company: "TechDefense Corp", Location: "Boston, MA", StartDate: day(2016, time.July, 15), EndDate: day(2019, time.February, 28)},
		},
	},
	{
		Username:    "emma_wilson",
		Email:       "emma@designstudio.com",
		Password:    SamplePassword,
		Gender:      "Female",
		DateOfBirth: *day(1995, time.March, 10),
		Headline:    "UX/UI Designer",
		Work:        "DesignStudio Creative",
		Bio:         "Product designer focused on user research, prototyping and design systems.",
		Experiences: []domain.Experience{
			{Title: "Lead UX/UI Designer", Company: "DesignStudio Creative", Location: "Los Angeles, CA", StartDate: day(2021, time.February, 1), Current: true},
		},
	},
	{
		Username:    "alex_patel",
		Email:       "alex@fullstack.dev",
		Password:    SamplePassword,
		Gender:      "Male",
		DateOfBirth: *day(1992, time.November, 30),
		Headline:    "Full Stack Developer | Open Source Contributor",
		Work:        "TechInnovate Labs",
		Bio:         "Full stack developer with 7+ years of experience across web backends and frontends.",
		Experiences: []domain.Experience{
			{Title: "Senior Full Stack Developer", Company: "TechInnovate Labs", Location: "Seattle, WA", StartDate: day(2020, time.June, 1), Current: true},
		},
	},
}

var samplePosts = []samplePost{
	{0, "We are looking for Senior Frontend Engineers! Send me a message or apply on the jobs page. #hiring"},
	{1, "The shift towards passkeys is inevitable. What is everyone's take on removing passwords entirely?"},
	{2, "Design tip: test your UI with real data, not placeholder content. Real data reveals the edge cases."},
	{3, "Fixed a long-standing bug in a library used by thousands of developers today. Contributing back feels great."},
	{0, "Great week with the engineering team: five features shipped and two performance issues closed."},
}
