// Package report renders pipeline results for a terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/muesli/termenv"

	"github.com/spigell/devmatch/internal/assessment"
	"github.com/spigell/devmatch/internal/matching"
	"github.com/spigell/devmatch/internal/pipeline"
	"github.com/spigell/devmatch/internal/posting"
	"github.com/spigell/devmatch/internal/profile"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	colorGood    = "2"
	colorFair    = "6"
	colorWeak    = "3"
	colorPoor    = "1"
	colorHeading = "4"
	colorLink    = "#87CEEB"
)

type Printer struct {
	out    io.Writer
	output *termenv.Output
	color  bool
}

func New(out io.Writer, mode ColorMode) *Printer {
	var opts []termenv.OutputOption
	if mode == ColorAlways {
		opts = append(opts, termenv.WithProfile(termenv.ANSI256))
	}
	output := termenv.NewOutput(out, opts...)
	return &Printer{
		out:    out,
		output: output,
		color:  colorEnabled(output, mode),
	}
}

func colorEnabled(output *termenv.Output, mode ColorMode) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok && mode != ColorAlways {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func NormalizeColorMode(value string) ColorMode {
	switch ColorMode(strings.ToLower(strings.TrimSpace(value))) {
	case ColorAlways:
		return ColorAlways
	case ColorNever:
		return ColorNever
	default:
		return ColorAuto
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) paint(text, color string) string {
	if !p.color {
		return text
	}
	return p.output.String(text).Foreground(p.output.Color(color)).String()
}

func (p *Printer) heading(text string) string {
	if !p.color {
		return text
	}
	return p.output.String(text).Bold().Foreground(p.output.Color(colorHeading)).String()
}

// ScoreColor picks the colour of a score by match tier.
func ScoreColor(score float64) string {
	switch {
	case score >= 0.8:
		return colorGood
	case score >= 0.6:
		return colorFair
	case score >= 0.4:
		return colorWeak
	default:
		return colorPoor
	}
}

// Result prints the profile, its assessment and the ranked matches.
func (p *Printer) Result(r *pipeline.Result) {
	p.Profile(r.Snapshot)
	p.Assessment(r.Assessment)
	fmt.Fprintf(p.out, "\n%s (%d of %d postings scored)\n", p.heading("Matches"), len(r.Matches), r.Postings)
	p.Matches(r.Matches)
}

func (p *Printer) Profile(s *profile.Snapshot) {
	if s == nil {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.heading("Profile"), s.DisplayName())
	fmt.Fprintf(p.out, "  %s\n", p.paint(s.HTMLURL, colorLink))
	if loc := s.LocationHint(); loc != "" {
		fmt.Fprintf(p.out, "  location: %s\n", loc)
	}
	fmt.Fprintf(p.out, "  repositories: %d  followers: %d  estimated commits: %d\n",
		s.PublicRepos, s.Followers, s.TotalCommits)
	if names := s.Languages.Names(5); len(names) > 0 {
		fmt.Fprintf(p.out, "  languages: %s\n", strings.Join(names, ", "))
	}
}

func (p *Printer) Assessment(a *assessment.Assessment) {
	if a == nil {
		return
	}
	fmt.Fprintf(p.out, "\n%s %s, score %s (%s)\n",
		p.heading("Assessment"),
		a.ExperienceLevel,
		p.paint(fmt.Sprintf("%.2f", a.OverallScore), ScoreColor(a.OverallScore)),
		a.Source,
	)
	if a.Summary != "" {
		fmt.Fprintf(p.out, "  %s\n", a.Summary)
	}
	p.list("skills", a.Skills)
	p.list("tech stack", a.TechStack)
	p.list("strengths", a.Strengths)
	p.list("improve", a.ImprovementAreas)
}

func (p *Printer) list(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(p.out, "  %s: %s\n", label, strings.Join(items, ", "))
}

func (p *Printer) Matches(matches []matching.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(p.out, "  no matches")
		return
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTITLE\tCOMPANY\tMATCHING\tMISSING")
	for _, m := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			p.paint(fmt.Sprintf("%.2f", m.Score), ScoreColor(m.Score)),
			m.JobTitle, m.Company, len(m.MatchingSkills), len(m.MissingSkills),
		)
	}
	_ = tw.Flush()
}

// Match prints one match with the posting it was scored against, if known.
func (p *Printer) Match(m matching.Match, post *posting.Posting) {
	fmt.Fprintf(p.out, "%s %s at %s\n", p.heading("Match"), m.JobTitle, m.Company)
	fmt.Fprintf(p.out, "  score: %s\n", p.paint(fmt.Sprintf("%.2f", m.Score), ScoreColor(m.Score)))
	fmt.Fprintf(p.out, "  %s\n", m.Reason)
	p.list("matching", m.MatchingSkills)
	p.list("missing", m.MissingSkills)
	if post != nil {
		p.postingDetails(*post)
	}
}

func (p *Printer) postingDetails(post posting.Posting) {
	if post.Location != nil {
		fmt.Fprintf(p.out, "  location: %s (%s)\n", *post.Location, post.RemoteOptions)
	}
	if s := salary(post); s != "" {
		fmt.Fprintf(p.out, "  salary: %s\n", s)
	}
	if post.URL != "" {
		fmt.Fprintf(p.out, "  %s\n", p.paint(post.URL, colorLink))
	}
}

// Postings prints a table of postings.
func (p *Printer) Postings(postings []posting.Posting) {
	if len(postings) == 0 {
		fmt.Fprintln(p.out, "no postings")
		return
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tLEVEL\tSALARY\tSOURCE\tPOSTED")
	for _, post := range postings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			post.ID, post.Title, post.Company,
			deref(post.Location), deref(post.ExperienceLevel), salary(post),
			post.Source, post.PostedAt.Format("2006-01-02"),
		)
	}
	_ = tw.Flush()
}

func salary(post posting.Posting) string {
	switch {
	case post.SalaryMin != nil && post.SalaryMax != nil && *post.SalaryMin != *post.SalaryMax:
		return fmt.Sprintf("%.0f-%.0f", *post.SalaryMin, *post.SalaryMax)
	case post.SalaryMin != nil:
		return fmt.Sprintf("%.0f", *post.SalaryMin)
	case post.SalaryMax != nil:
		return fmt.Sprintf("%.0f", *post.SalaryMax)
	default:
		return ""
	}
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
