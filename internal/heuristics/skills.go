package heuristics

import "strings"

// Vocabulary is the ordered list of technology terms recognised in posting text.
var Vocabulary = []string{
	// languages
	"JavaScript", "TypeScript", "Python", "Java", "C#", "C++", "PHP", "Ruby", "Go", "Rust", "Swift", "Kotlin",
	// frontend
	"React", "Angular", "Vue.js", "Vue", "Svelte", "HTML", "CSS", "SCSS", "SASS", "Bootstrap", "Tailwind",
	// backend
	"Node.js", "Express", "Django", "Flask", "Spring", "Laravel", "ASP.NET", ".NET Core", "FastAPI",
	// mobile
	"React Native", "Flutter", "Xamarin", "Android", "iOS", "Mobile Development",
	// databases
	"SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis", "SQLite", "NoSQL", "Firebase",
	// cloud and devops
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git", "GitHub", "GitLab",
	// practices
	"GraphQL", "REST API", "Microservices", "Agile", "Scrum", "Test Driven Development", "TDD",
}

// languageSkills maps a lower-cased language to adjacent ecosystem skills.
var languageSkills = map[string][]string{
	"javascript": {"Node.js", "React", "Web Development", "Frontend"},
	"typescript": {"Node.js", "Angular", "Web Development", "Frontend"},
	"python":     {"Django", "Flask", "Data Science", "Machine Learning"},
	"java":       {"Spring", "Android", "Enterprise Development"},
	"kotlin":     {"Android", "Spring"},
	"c#":         {".NET", "ASP.NET", "Backend Development"},
	"go":         {"Microservices", "Cloud Development", "DevOps"},
	"rust":       {"Systems Programming", "WebAssembly"},
	"ruby":       {"Ruby on Rails", "Backend Development"},
	"php":        {"Laravel", "Web Development"},
	"swift":      {"iOS", "Mobile Development"},
}

// languageTooling maps a lower-cased language to its build and package tooling.
var languageTooling = map[string][]string{
	"javascript": {"npm", "Webpack", "Babel"},
	"typescript": {"npm", "Webpack"},
	"python":     {"pip", "Virtual Environments"},
	"java":       {"Maven", "Gradle"},
	"kotlin":     {"Gradle"},
	"go":         {"Go Modules", "Docker"},
	"rust":       {"Cargo"},
	"c#":         {"NuGet"},
}

var baseTechStack = []string{"Git", "GitHub"}

// ExtractSkills returns vocabulary terms found in text, case-insensitively, in
// vocabulary order.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, term := range Vocabulary {
		if strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return Distinct(found)
}

// InferSkills maps languages to adjacent skills using a static table.
func InferSkills(languages []string) []string {
	skills := make([]string, 0)
	for _, lang := range languages {
		skills = append(skills, languageSkills[strings.ToLower(lang)]...)
	}
	return Distinct(skills)
}

// InferTechStack returns the base toolset plus per-language tooling.
func InferTechStack(languages []string) []string {
	stack := append([]string{}, baseTechStack...)
	for _, lang := range languages {
		stack = append(stack, languageTooling[strings.ToLower(lang)]...)
	}
	return Distinct(stack)
}

// Distinct removes exact duplicates keeping the first occurrence.
func Distinct(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
