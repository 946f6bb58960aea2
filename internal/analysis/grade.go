package analysis

import (
	"strconv"
	"strings"
)

// Default underperformance thresholds. Percent-like grades compare against
// the percent threshold on their raw scale; GPA-like grades against the GPA
// threshold.
const (
	DefaultGPAThreshold     = 2.0
	DefaultPercentThreshold = 70.0
)

// letterGrades maps letter grades onto the 0.0–4.0 scale. Initialized once,
// never mutated.
var letterGrades = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
	"P": 3.0, "PASS": 3.0,
}

// ClassifyGrade parses a free-form grade string into a normalized 0.0–4.0
// score. Letter grades use the static table. Numeric grades are treated as
// percentages when the text contains '%' or the value exceeds 5 (rescaled by
// value/100*4), otherwise as an already-0–4 value; either way the result is
// clamped to [0, 4]. An absent or unrecognizable grade returns nil; absence
// is not a failure.
func ClassifyGrade(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if score, ok := letterGrades[strings.ToUpper(trimmed)]; ok {
		return &score
	}

	value, percent, ok := parseNumericGrade(trimmed)
	if !ok {
		return nil
	}
	if percent {
		value = value / 100 * 4
	}
	value = clamp(value, 0, 4)
	return &value
}

// IsUnderperforming reports whether a grade falls below the failing line.
// Numeric grades compare on their raw scale: percent-like values against
// percentThreshold, GPA-like values against gpaThreshold. Non-numeric grades
// fall back to the normalized 0–4 score compared against 2.0. The two paths
// are separate because the thresholds differ in scale. An absent or
// unparseable grade is never underperforming.
func IsUnderperforming(raw string, gpaThreshold, percentThreshold float64) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}

	if value, percent, ok := parseNumericGrade(trimmed); ok {
		if percent {
			return value < percentThreshold
		}
		return value < gpaThreshold
	}

	score := ClassifyGrade(trimmed)
	if score == nil {
		return false
	}
	return *score < 2.0
}

// parseNumericGrade parses a numeric grade, stripping a trailing '%'. The
// percent flag is set when the raw text carries '%' or the value exceeds 5.
func parseNumericGrade(raw string) (value float64, percent bool, ok bool) {
	hasPercentSign := strings.Contains(raw, "%")
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false, false
	}
	return value, hasPercentSign || value > 5, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
