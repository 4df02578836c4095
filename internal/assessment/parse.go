package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/heuristics"
)

// DefaultScore is used when the answer carries no overall score.
const DefaultScore = 0.75

type payload struct {
	Summary          string   `mapstructure:"summary"`
	Skills           []string `mapstructure:"skills"`
	ExperienceLevel  *string  `mapstructure:"experienceLevel"`
	PrimaryLanguages []string `mapstructure:"primaryLanguages"`
	TechStack        []string `mapstructure:"techStack"`
	Strengths        []string `mapstructure:"strengths"`
	ImprovementAreas []string `mapstructure:"improvementAreas"`
	OverallScore     *float64 `mapstructure:"overallScore"`
}

// ParseResponse extracts the JSON object spanning from the first '{' to the
// last '}' of raw and maps it onto an Assessment. Absent fields default to
// empty lists, the Mid tier and DefaultScore.
func ParseResponse(username, raw string, now time.Time) (*Assessment, error) {
	object, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	data, err := decodeObject(object)
	if err != nil {
		return nil, err
	}

	var p payload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errs.Parse("assessment", "decode answer", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, errs.Parse("assessment", "decode answer", err)
	}

	level := heuristics.Mid
	if p.ExperienceLevel != nil {
		level = heuristics.ParseLevel(*p.ExperienceLevel)
	}

	score := DefaultScore
	if p.OverallScore != nil {
		score = clamp(*p.OverallScore)
	}

	return &Assessment{
		Username:         username,
		Summary:          strings.TrimSpace(p.Summary),
		Skills:           cleanList(p.Skills),
		ExperienceLevel:  level,
		PrimaryLanguages: cleanList(p.PrimaryLanguages),
		TechStack:        cleanList(p.TechStack),
		Strengths:        cleanList(p.Strengths),
		ImprovementAreas: cleanList(p.ImprovementAreas),
		OverallScore:     score,
		AnalyzedAt:       now,
		Source:           SourceReasoning,
	}, nil
}

func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", errs.Parse("assessment", "locate json", errors.New("no json object in answer"))
	}
	return raw[start : end+1], nil
}

// decodeObject tries strict JSON first and then the lenient JSON5 dialect
// models tend to produce (single quotes, trailing commas, bare keys).
func decodeObject(object string) (map[string]any, error) {
	var data map[string]any
	strictErr := json.Unmarshal([]byte(object), &data)
	if strictErr == nil {
		return data, nil
	}

	data = nil
	if err := json5.Unmarshal([]byte(object), &data); err != nil {
		return nil, errs.Parse("assessment", "parse json", fmt.Errorf("%w; json5: %v", strictErr, err))
	}
	return data, nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func clamp(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return DefaultScore
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
