package schema

// StackInfo describes the technology stack the assistant detected.
type StackInfo struct {
	Languages  []string `json:"languages,omitempty"`
	Frameworks []string `json:"frameworks,omitempty"`
	Tools      []string `json:"tools,omitempty"`
	Databases  []string `json:"databases,omitempty"`
}

// EntryPoint is one way into the codebase.
type EntryPoint struct {
	FilePath    string `json:"file_path"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// DirectoryGuide explains one directory's purpose.
type DirectoryGuide struct {
	Path     string   `json:"path"`
	Purpose  string   `json:"purpose"`
	KeyFiles []string `json:"key_files,omitempty"`
}

// TourSummary is the guided tour of the repository.
type TourSummary struct {
	Stack                   StackInfo        `json:"stack"`
	EntryPoints             []EntryPoint     `json:"entry_points,omitempty"`
	DirectoryStructure      []DirectoryGuide `json:"directory_structure,omitempty"`
	RecommendedReadingOrder []string         `json:"recommended_reading_order,omitempty"`
	ArchitectureNotes       string           `json:"architecture_notes,omitempty"`
}

// TourOutput is the full payload the tour command expects back.
type TourOutput struct {
	CommandOutput
	Tour         TourSummary `json:"tour"`
	TourMarkdown string      `json:"tour_markdown"`
}

// Tour validates the tour command's output envelope.
var Tour = mustCompile("tour", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "allOf": [{"$ref": "base.json#/$defs/command_output"}],
  "type": "object",
  "required": ["tour", "tour_markdown"],
  "properties": {
    "tour": {"$ref": "base.json#/$defs/tour_summary"},
    "tour_markdown": {"type": "string"}
  }
}`)
