package schema

// DockerIssue is one problem in a Dockerfile.
type DockerIssue struct {
	IssueType   string   `json:"issue_type"`
	LineNumber  int      `json:"line_number,omitempty"`
	Current     string   `json:"current"`
	Suggested   string   `json:"suggested,omitempty"`
	Explanation string   `json:"explanation"`
	Severity    Severity `json:"severity"`
}

// DockerfileAnalysis is the review of one Dockerfile.
type DockerfileAnalysis struct {
	DockerfilePath      string        `json:"dockerfile_path"`
	BaseImage           string        `json:"base_image,omitempty"`
	Issues              []DockerIssue `json:"issues,omitempty"`
	Optimizations       []string      `json:"optimizations,omitempty"`
	MissingDockerignore bool          `json:"missing_dockerignore,omitempty"`
	SizeEstimate        string        `json:"size_estimate,omitempty"`
}

// PatchedDockerfile carries the improved Dockerfile content.
type PatchedDockerfile struct {
	OriginalPath   string   `json:"original_path"`
	PatchedContent string   `json:"patched_content"`
	ChangesSummary []string `json:"changes_summary,omitempty"`
}

// DockerOutput is the full payload the docker command expects back.
type DockerOutput struct {
	CommandOutput
	Dockerfiles             []DockerfileAnalysis `json:"dockerfiles,omitempty"`
	PatchedDockerfile       *PatchedDockerfile   `json:"patched_dockerfile,omitempty"`
	DockerignoreSuggestions []string             `json:"dockerignore_suggestions,omitempty"`
}

// Docker validates the docker command's output envelope.
var Docker = mustCompile("docker", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "allOf": [{"$ref": "base.json#/$defs/command_output"}],
  "type": "object",
  "properties": {
    "dockerfiles": {"type": "array", "items": {"$ref": "base.json#/$defs/dockerfile_analysis"}},
    "patched_dockerfile": {
      "oneOf": [{"$ref": "base.json#/$defs/patched_dockerfile"}, {"type": "null"}]
    },
    "dockerignore_suggestions": {"type": "array", "items": {"type": "string"}}
  }
}`)
