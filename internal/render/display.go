package render

import (
	"fmt"
	"strings"

	"github.com/k1lgor/RepoDoctor/internal/schema"
)

// Rule: code is for machines, words are for humans. These helpers turn
// the JSON-level codes into CLI-facing text; keep the raw codes for
// JSON fields and equality comparisons.

var severityNames = map[schema.Severity]string{
	schema.SeverityCritical: "CRITICAL",
	schema.SeverityHigh:     "HIGH",
	schema.SeverityMedium:   "MEDIUM",
	schema.SeverityLow:      "LOW",
	schema.SeverityInfo:     "INFO",
}

// SeverityName returns the display form of a severity code.
// Unknown codes are upper-cased as-is.
func SeverityName(s schema.Severity) string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return strings.ToUpper(string(s))
}

// severityRank orders severities for sorting, worst first.
var severityRank = map[schema.Severity]int{
	schema.SeverityCritical: 0,
	schema.SeverityHigh:     1,
	schema.SeverityMedium:   2,
	schema.SeverityLow:      3,
	schema.SeverityInfo:     4,
}

// SeverityRank returns the sort rank for a severity, worst first.
// Unknown codes sort last.
func SeverityRank(s schema.Severity) int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

var confidenceNames = map[schema.Confidence]string{
	schema.ConfidenceHigh:   "high",
	schema.ConfidenceMedium: "medium",
	schema.ConfidenceLow:    "low",
}

// ConfidenceName returns the display form of a confidence code.
func ConfidenceName(c schema.Confidence) string {
	if name, ok := confidenceNames[c]; ok {
		return name
	}
	return string(c)
}

// GradeMark pairs a letter grade with a pass/fail marker.
// "B" -> "✓ B", "F" -> "✗ F".
func GradeMark(score schema.HealthScore) string {
	if score.Healthy() {
		return "✓ " + score.Grade
	}
	return "✗ " + score.Grade
}

// LineRange formats a [start, end] pair as "12-40"; a missing range
// renders as "-".
func LineRange(r []int) string {
	if len(r) != 2 {
		return "-"
	}
	return fmt.Sprintf("%d-%d", r[0], r[1])
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
