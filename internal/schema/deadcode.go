package schema

// DeadCodeFinding is a single piece of suspected dead code.
type DeadCodeFinding struct {
	FilePath       string     `json:"file_path"`
	LineRange      []int      `json:"line_range,omitempty"` // [start, end]
	CodeType       string     `json:"code_type"`
	Confidence     Confidence `json:"confidence"`
	Reason         string     `json:"reason"`
	Suggestion     string     `json:"suggestion,omitempty"`
	EstimatedLines int        `json:"estimated_lines,omitempty"`
}

// DeadCodeSummary aggregates findings by confidence.
type DeadCodeSummary struct {
	TotalFindings         int `json:"total_findings"`
	HighConfidenceCount   int `json:"high_confidence_count,omitempty"`
	MediumConfidenceCount int `json:"medium_confidence_count,omitempty"`
	LowConfidenceCount    int `json:"low_confidence_count,omitempty"`
	EstimatedTotalLines   int `json:"estimated_total_lines,omitempty"`
}

// DeadCodeOutput is the full payload the deadcode command expects back.
type DeadCodeOutput struct {
	CommandOutput
	Findings      []DeadCodeFinding `json:"findings,omitempty"`
	Summary       DeadCodeSummary   `json:"summary"`
	AnalysisNotes string            `json:"analysis_notes,omitempty"`
}

// DeadCode validates the deadcode command's output envelope.
var DeadCode = mustCompile("deadcode", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "allOf": [{"$ref": "base.json#/$defs/command_output"}],
  "type": "object",
  "required": ["summary"],
  "properties": {
    "findings": {"type": "array", "items": {"$ref": "base.json#/$defs/deadcode_finding"}},
    "summary": {"$ref": "base.json#/$defs/deadcode_summary"},
    "analysis_notes": {"type": ["string", "null"]}
  }
}`)
