package schema

// Severity ranks an issue or recommendation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Confidence ranks how certain a finding is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Issue is a single problem found during analysis.
type Issue struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	FilePath    string   `json:"file_path,omitempty"`
	LineNumber  int      `json:"line_number,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// Recommendation is an actionable follow-up.
type Recommendation struct {
	Action          string   `json:"action"`
	Priority        Severity `json:"priority"`
	Reason          string   `json:"reason"`
	EstimatedImpact string   `json:"estimated_impact,omitempty"`
}

// HealthScore is the repository health score with breakdown.
type HealthScore struct {
	OverallScore   int            `json:"overall_score"`
	CategoryScores map[string]int `json:"category_scores,omitempty"`
	Grade          string         `json:"grade"`
}

// Healthy reports whether the repository clears the healthy threshold.
func (h HealthScore) Healthy() bool { return h.OverallScore >= 70 }

// CommandOutput is the envelope shared by every command's output.
type CommandOutput struct {
	Command         string            `json:"command,omitempty"`
	Success         bool              `json:"success,omitempty"`
	Issues          []Issue           `json:"issues,omitempty"`
	Recommendations []Recommendation  `json:"recommendations,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// baseSchema holds the shared $defs every task document references.
// Structures mirror the typed structs in this package; required lists
// name the fields a payload must carry, everything else is optional,
// and unknown fields are allowed everywhere.
const baseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "severity": {
      "type": "string",
      "enum": ["critical", "high", "medium", "low", "info"]
    },
    "confidence": {
      "type": "string",
      "enum": ["high", "medium", "low"]
    },
    "issue": {
      "type": "object",
      "required": ["title", "description", "severity", "category"],
      "properties": {
        "title": {"type": "string"},
        "description": {"type": "string"},
        "severity": {"$ref": "#/$defs/severity"},
        "category": {"type": "string"},
        "file_path": {"type": ["string", "null"]},
        "line_number": {"type": ["integer", "null"]},
        "suggestion": {"type": ["string", "null"]}
      }
    },
    "recommendation": {
      "type": "object",
      "required": ["action", "priority", "reason"],
      "properties": {
        "action": {"type": "string"},
        "priority": {"$ref": "#/$defs/severity"},
        "reason": {"type": "string"},
        "estimated_impact": {"type": ["string", "null"]}
      }
    },
    "health_score": {
      "type": "object",
      "required": ["overall_score", "grade"],
      "properties": {
        "overall_score": {"type": "integer", "minimum": 0, "maximum": 100},
        "category_scores": {
          "type": "object",
          "additionalProperties": {"type": "integer", "minimum": 0, "maximum": 100}
        },
        "grade": {"type": "string"}
      }
    },
    "command_output": {
      "type": "object",
      "properties": {
        "command": {"type": "string"},
        "success": {"type": "boolean"},
        "issues": {"type": "array", "items": {"$ref": "#/$defs/issue"}},
        "recommendations": {"type": "array", "items": {"$ref": "#/$defs/recommendation"}},
        "metadata": {"type": "object", "additionalProperties": {"type": "string"}}
      }
    },
    "file_info": {
      "type": "object",
      "required": ["path", "size_bytes", "size_human"],
      "properties": {
        "path": {"type": "string"},
        "size_bytes": {"type": "integer"},
        "size_human": {"type": "string"}
      }
    },
    "directory_info": {
      "type": "object",
      "required": ["path", "size_bytes", "size_human", "file_count"],
      "properties": {
        "path": {"type": "string"},
        "size_bytes": {"type": "integer"},
        "size_human": {"type": "string"},
        "file_count": {"type": "integer"}
      }
    },
    "missing_file": {
      "type": "object",
      "required": ["filename", "importance"],
      "properties": {
        "filename": {"type": "string"},
        "importance": {"type": "string"},
        "template_url": {"type": ["string", "null"]}
      }
    },
    "bloat_analysis": {
      "type": "object",
      "required": ["total_size_bytes", "total_size_human"],
      "properties": {
        "total_size_bytes": {"type": "integer"},
        "total_size_human": {"type": "string"},
        "largest_files": {"type": "array", "items": {"$ref": "#/$defs/file_info"}},
        "largest_directories": {"type": "array", "items": {"$ref": "#/$defs/directory_info"}},
        "suspected_artifacts": {"type": "array", "items": {"type": "string"}},
        "missing_hygiene_files": {"type": "array", "items": {"$ref": "#/$defs/missing_file"}}
      }
    },
    "stack_info": {
      "type": "object",
      "properties": {
        "languages": {"type": "array", "items": {"type": "string"}},
        "frameworks": {"type": "array", "items": {"type": "string"}},
        "tools": {"type": "array", "items": {"type": "string"}},
        "databases": {"type": "array", "items": {"type": "string"}}
      }
    },
    "entry_point": {
      "type": "object",
      "required": ["file_path", "description", "type"],
      "properties": {
        "file_path": {"type": "string"},
        "description": {"type": "string"},
        "type": {"type": "string"}
      }
    },
    "directory_guide": {
      "type": "object",
      "required": ["path", "purpose"],
      "properties": {
        "path": {"type": "string"},
        "purpose": {"type": "string"},
        "key_files": {"type": "array", "items": {"type": "string"}}
      }
    },
    "tour_summary": {
      "type": "object",
      "required": ["stack"],
      "properties": {
        "stack": {"$ref": "#/$defs/stack_info"},
        "entry_points": {"type": "array", "items": {"$ref": "#/$defs/entry_point"}},
        "directory_structure": {"type": "array", "items": {"$ref": "#/$defs/directory_guide"}},
        "recommended_reading_order": {"type": "array", "items": {"type": "string"}},
        "architecture_notes": {"type": ["string", "null"]}
      }
    },
    "docker_issue": {
      "type": "object",
      "required": ["issue_type", "current", "explanation", "severity"],
      "properties": {
        "issue_type": {"type": "string"},
        "line_number": {"type": ["integer", "null"]},
        "current": {"type": "string"},
        "suggested": {"type": ["string", "null"]},
        "explanation": {"type": "string"},
        "severity": {"$ref": "#/$defs/severity"}
      }
    },
    "dockerfile_analysis": {
      "type": "object",
      "required": ["dockerfile_path"],
      "properties": {
        "dockerfile_path": {"type": "string"},
        "base_image": {"type": ["string", "null"]},
        "issues": {"type": "array", "items": {"$ref": "#/$defs/docker_issue"}},
        "optimizations": {"type": "array", "items": {"type": "string"}},
        "missing_dockerignore": {"type": "boolean"},
        "size_estimate": {"type": ["string", "null"]}
      }
    },
    "patched_dockerfile": {
      "type": "object",
      "required": ["original_path", "patched_content"],
      "properties": {
        "original_path": {"type": "string"},
        "patched_content": {"type": "string"},
        "changes_summary": {"type": "array", "items": {"type": "string"}}
      }
    },
    "deadcode_finding": {
      "type": "object",
      "required": ["file_path", "code_type", "confidence", "reason"],
      "properties": {
        "file_path": {"type": "string"},
        "line_range": {
          "type": ["array", "null"],
          "items": {"type": "integer"},
          "minItems": 2,
          "maxItems": 2
        },
        "code_type": {"type": "string"},
        "confidence": {"$ref": "#/$defs/confidence"},
        "reason": {"type": "string"},
        "suggestion": {"type": ["string", "null"]},
        "estimated_lines": {"type": ["integer", "null"]}
      }
    },
    "deadcode_summary": {
      "type": "object",
      "required": ["total_findings"],
      "properties": {
        "total_findings": {"type": "integer"},
        "high_confidence_count": {"type": "integer"},
        "medium_confidence_count": {"type": "integer"},
        "low_confidence_count": {"type": "integer"},
        "estimated_total_lines": {"type": "integer"}
      }
    },
    "module_result": {
      "type": "object",
      "required": ["module_name", "success"],
      "properties": {
        "module_name": {"type": "string"},
        "success": {"type": "boolean"},
        "issues_count": {"type": "integer"},
        "score": {"type": ["integer", "null"]},
        "error": {"type": ["string", "null"]}
      }
    }
  }
}`
