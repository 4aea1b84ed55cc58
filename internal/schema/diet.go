package schema

// FileInfo describes one file by size.
type FileInfo struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	SizeHuman string `json:"size_human"`
}

// DirectoryInfo describes one directory by aggregate size.
type DirectoryInfo struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	SizeHuman string `json:"size_human"`
	FileCount int    `json:"file_count"`
}

// MissingFile is a standard hygiene file the repository lacks.
type MissingFile struct {
	Filename    string `json:"filename"`
	Importance  string `json:"importance"`
	TemplateURL string `json:"template_url,omitempty"`
}

// BloatAnalysis is the repository bloat and hygiene analysis.
type BloatAnalysis struct {
	TotalSizeBytes      int64           `json:"total_size_bytes"`
	TotalSizeHuman      string          `json:"total_size_human"`
	LargestFiles        []FileInfo      `json:"largest_files,omitempty"`
	LargestDirectories  []DirectoryInfo `json:"largest_directories,omitempty"`
	SuspectedArtifacts  []string        `json:"suspected_artifacts,omitempty"`
	MissingHygieneFiles []MissingFile   `json:"missing_hygiene_files,omitempty"`
}

// DietOutput is the full payload the diet command expects back.
type DietOutput struct {
	CommandOutput
	Analysis     BloatAnalysis `json:"analysis"`
	DietMarkdown string        `json:"diet_markdown"`
}

// Bloat validates a bare BloatAnalysis payload.
var Bloat = mustCompile("bloat", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$ref": "base.json#/$defs/bloat_analysis"
}`)

// Diet validates the diet command's full output envelope.
var Diet = mustCompile("diet", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "allOf": [{"$ref": "base.json#/$defs/command_output"}],
  "type": "object",
  "required": ["analysis", "diet_markdown"],
  "properties": {
    "analysis": {"$ref": "base.json#/$defs/bloat_analysis"},
    "diet_markdown": {"type": "string"}
  }
}`)
