package schema

// ModuleResult records one scan module's outcome.
type ModuleResult struct {
	ModuleName  string `json:"module_name"`
	Success     bool   `json:"success"`
	IssuesCount int    `json:"issues_count,omitempty"`
	Score       *int   `json:"score,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ScanResult aggregates a full repository scan. It is built locally by
// the scan command, cached under .repodoc/, and revalidated when the
// report command loads it back.
type ScanResult struct {
	HealthScore     HealthScore          `json:"health_score"`
	ModuleResults   []ModuleResult       `json:"module_results,omitempty"`
	DietAnalysis    *BloatAnalysis       `json:"diet_analysis,omitempty"`
	TourSummary     *TourSummary         `json:"tour_summary,omitempty"`
	DockerAnalysis  []DockerfileAnalysis `json:"docker_analysis,omitempty"`
	DeadCodeSummary *DeadCodeSummary     `json:"deadcode_summary,omitempty"`
}

// Scan validates a ScanResult, e.g. the cached last_scan.json.
var Scan = mustCompile("scan", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["health_score"],
  "properties": {
    "health_score": {"$ref": "base.json#/$defs/health_score"},
    "module_results": {"type": "array", "items": {"$ref": "base.json#/$defs/module_result"}},
    "diet_analysis": {
      "oneOf": [{"$ref": "base.json#/$defs/bloat_analysis"}, {"type": "null"}]
    },
    "tour_summary": {
      "oneOf": [{"$ref": "base.json#/$defs/tour_summary"}, {"type": "null"}]
    },
    "docker_analysis": {"type": "array", "items": {"$ref": "base.json#/$defs/dockerfile_analysis"}},
    "deadcode_summary": {
      "oneOf": [{"$ref": "base.json#/$defs/deadcode_summary"}, {"type": "null"}]
    }
  }
}`)
