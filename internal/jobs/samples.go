package jobs

import (
	"time"

	"github.com/spigell/devmatch/internal/posting"
)

type sample struct {
	title       string
	company     string
	location    string
	description string
	required    []string
	preferred   []string
	level       string
	salaryMin   float64
	salaryMax   float64
	remote      string
	postedDays  int
	expiresDays int
}

var samples = []sample{
	{
		title:       "Full Stack Developer",
		company:     "TechCorp Inc.",
		location:    "San Francisco, CA",
		description: "Join our team as a Full Stack Developer working with React, Node.js, and cloud technologies.",
		required:    []string{"JavaScript", "React", "Node.js", "MongoDB", "Git"},
		preferred:   []string{"TypeScript", "AWS", "Docker"},
		level:       "Mid",
		salaryMin:   90000,
		salaryMax:   130000,
		remote:      posting.Hybrid,
		postedDays:  5,
		expiresDays: 25,
	},
	{
		title:       "Python Data Scientist",
		company:     "DataTech Solutions",
		location:    "Remote",
		description: "Looking for a Python Data Scientist to work on machine learning projects and data analysis.",
		required:    []string{"Python", "Pandas", "NumPy", "Scikit-learn", "SQL"},
		preferred:   []string{"TensorFlow", "PyTorch", "Docker", "Kubernetes"},
		level:       "Senior",
		salaryMin:   120000,
		salaryMax:   160000,
		remote:      posting.RemoteOnly,
		postedDays:  3,
		expiresDays: 27,
	},
	{
		title:       "Frontend React Developer",
		company:     "StartupXYZ",
		location:    "Austin, TX",
		description: "Seeking a Frontend Developer specialized in React to build modern web applications.",
		required:    []string{"JavaScript", "React", "HTML5", "CSS3", "REST APIs"},
		preferred:   []string{"TypeScript", "Redux", "Webpack", "Jest"},
		level:       "Junior",
		salaryMin:   70000,
		salaryMax:   95000,
		remote:      posting.OnSite,
		postedDays:  2,
		expiresDays: 28,
	},
	{
		title:       "DevOps Engineer",
		company:     "CloudFirst Technologies",
		location:    "Seattle, WA",
		description: "Join our DevOps team to manage cloud infrastructure and CI/CD pipelines.",
		required:    []string{"AWS", "Docker", "Kubernetes", "Terraform", "Jenkins"},
		preferred:   []string{"Python", "Go", "Ansible", "Prometheus"},
		level:       "Mid",
		salaryMin:   110000,
		salaryMax:   145000,
		remote:      posting.Hybrid,
		postedDays:  1,
		expiresDays: 29,
	},
	{
		title:       "C# Backend Developer",
		company:     "Enterprise Systems Ltd.",
		location:    "New York, NY",
		description: "Looking for an experienced C# developer to work on enterprise-grade backend systems.",
		required:    []string{"C#", ".NET Core", "ASP.NET", "SQL Server", "Web APIs"},
		preferred:   []string{"Azure", "Entity Framework", "Microservices", "Redis"},
		level:       "Senior",
		salaryMin:   115000,
		salaryMax:   155000,
		remote:      posting.Hybrid,
		postedDays:  4,
		expiresDays: 26,
	},
}

// SamplePostings returns the fixed set served when no source is reachable.
// Dates are relative to now; ids are 1 to 5 in declaration order.
func SamplePostings(now time.Time) []posting.Posting {
	out := make([]posting.Posting, 0, len(samples))
	for i, s := range samples {
		location := s.location
		description := s.description
		level := s.level
		salaryMin, salaryMax := s.salaryMin, s.salaryMax
		expires := now.AddDate(0, 0, s.expiresDays)

		out = append(out, posting.Posting{
			ID:              int64(i + 1),
			Title:           s.title,
			Company:         s.company,
			Location:        &location,
			Description:     &description,
			RequiredSkills:  append([]string(nil), s.required...),
			PreferredSkills: append([]string(nil), s.preferred...),
			ExperienceLevel: &level,
			SalaryMin:       &salaryMin,
			SalaryMax:       &salaryMax,
			Remote:          s.remote == posting.RemoteOnly,
			RemoteOptions:   s.remote,
			PostedAt:        now.AddDate(0, 0, -s.postedDays),
			ExpiresAt:       &expires,
			Active:          true,
			Source:          posting.SourceSample,
		})
	}
	return out
}
