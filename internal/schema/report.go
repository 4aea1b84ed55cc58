package schema

// ReportOutput is the payload the report command expects back. Extra
// fields (issues, recommendations, anything newer) are tolerated.
type ReportOutput struct {
	Command             string `json:"command,omitempty"`
	Success             bool   `json:"success,omitempty"`
	MarkdownContent     string `json:"markdown_content"`
	ReportTitle         string `json:"report_title"`
	GenerationTimestamp string `json:"generation_timestamp"`
}

// Report validates the report command's output.
var Report = mustCompile("report", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["markdown_content", "report_title", "generation_timestamp"],
  "properties": {
    "markdown_content": {"type": "string"},
    "report_title": {"type": "string"},
    "generation_timestamp": {"type": "string"}
  }
}`)
