package heuristics

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	salaryNoise  = regexp.MustCompile(`(?i)[$,€£]|per year|per month|annually`)
	salaryRange  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(k)?\s*[-–]\s*(\d+(?:\.\d+)?)\s*(k)?`)
	salarySingle = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(k)?`)
)

// ParseSalary extracts a salary range from free text such as "$50,000 - $80,000"
// or "50k-80k". A single figure is used for both bounds. Text without a figure
// yields nil bounds and never an error.
func ParseSalary(text string) (min, max *float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	clean := salaryNoise.ReplaceAllString(text, "")

	if m := salaryRange.FindStringSubmatch(clean); m != nil {
		lo, okLo := salaryValue(m[1], m[2])
		hi, okHi := salaryValue(m[3], m[4])
		if okLo && okHi {
			return &lo, &hi
		}
	}

	if m := salarySingle.FindStringSubmatch(clean); m != nil {
		if v, ok := salaryValue(m[1], m[2]); ok {
			lo, hi := v, v
			return &lo, &hi
		}
	}

	return nil, nil
}

func salaryValue(number, marker string) (float64, bool) {
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false
	}
	if marker != "" {
		v *= 1000
	}
	return v, true
}
