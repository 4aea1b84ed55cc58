package render_test

import (
	"strings"
	"testing"

	"github.com/k1lgor/RepoDoctor/internal/render"
	"github.com/k1lgor/RepoDoctor/internal/schema"
)

func TestDietRendersTables(t *testing.T) {
	var sb strings.Builder
	r := render.New(&sb, render.ASCII)

	r.Diet(&schema.DietOutput{
		Analysis: schema.BloatAnalysis{
			TotalSizeBytes: 1500000,
			TotalSizeHuman: "1.5 MB",
			LargestFiles: []schema.FileInfo{
				{Path: "data/dump.sql", SizeBytes: 900000, SizeHuman: "900 kB"},
			},
			SuspectedArtifacts:  []string{"node_modules/"},
			MissingHygieneFiles: []schema.MissingFile{{Filename: "LICENSE", Importance: "legal clarity"}},
		},
	})

	out := sb.String()
	for _, want := range []string{"1.5 MB", "data/dump.sql", "node_modules/", "LICENSE"} {
		if !strings.Contains(out, want) {
			t.Errorf("Diet output missing %q:\n%s", want, out)
		}
	}
}

func TestDockerSortsIssuesBySeverity(t *testing.T) {
	var sb strings.Builder
	r := render.New(&sb, render.ASCII)

	r.Docker(&schema.DockerOutput{
		Dockerfiles: []schema.DockerfileAnalysis{{
			DockerfilePath: "Dockerfile",
			Issues: []schema.DockerIssue{
				{IssueType: "latest tag", Current: "x", Explanation: "unpinned", Severity: schema.SeverityLow},
				{IssueType: "root user", Current: "x", Explanation: "runs as root", Severity: schema.SeverityCritical},
			},
		}},
	})

	out := sb.String()
	crit := strings.Index(out, "CRITICAL")
	low := strings.Index(out, "LOW")
	if crit == -1 || low == -1 {
		t.Fatalf("Docker output missing severities:\n%s", out)
	}
	if crit > low {
		t.Errorf("critical issue rendered after low:\n%s", out)
	}
}

func TestScanShowsGradeMark(t *testing.T) {
	var sb strings.Builder
	r := render.New(&sb, render.ASCII)

	score := 55
	r.Scan(&schema.ScanResult{
		HealthScore: schema.HealthScore{OverallScore: 55, Grade: "F"},
		ModuleResults: []schema.ModuleResult{
			{ModuleName: "diet", Success: true, IssuesCount: 9, Score: &score},
			{ModuleName: "docker", Success: false, Error: "no Dockerfile"},
		},
	})

	out := sb.String()
	if !strings.Contains(out, "✗ F") {
		t.Errorf("Scan output missing failing grade mark:\n%s", out)
	}
	if !strings.Contains(out, "no Dockerfile") {
		t.Errorf("Scan output missing module error:\n%s", out)
	}
}

func TestDeadCodeLineRange(t *testing.T) {
	var sb strings.Builder
	r := render.New(&sb, render.ASCII)

	r.DeadCode(&schema.DeadCodeOutput{
		Findings: []schema.DeadCodeFinding{
			{FilePath: "src/old.py", LineRange: []int{12, 40}, CodeType: "function",
				Confidence: schema.ConfidenceHigh, Reason: "never imported"},
			{FilePath: "src/maybe.py", CodeType: "class",
				Confidence: schema.ConfidenceLow, Reason: "dynamic references possible"},
		},
		Summary: schema.DeadCodeSummary{TotalFindings: 2, HighConfidenceCount: 1, LowConfidenceCount: 1},
	})

	out := sb.String()
	if !strings.Contains(out, "12-40") {
		t.Errorf("DeadCode output missing line range:\n%s", out)
	}
	if !strings.Contains(out, "Findings: 2") {
		t.Errorf("DeadCode output missing summary:\n%s", out)
	}
}

func TestMarkdownMode(t *testing.T) {
	var sb strings.Builder
	r := render.New(&sb, render.Markdown)

	r.Scan(&schema.ScanResult{
		HealthScore: schema.HealthScore{OverallScore: 92, Grade: "A"},
		ModuleResults: []schema.ModuleResult{
			{ModuleName: "diet", Success: true},
		},
	})

	if !strings.Contains(sb.String(), "| diet |") {
		t.Errorf("Markdown mode did not render a markdown table:\n%s", sb.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := render.Truncate("abcdef", 5); got != "ab..." {
		t.Errorf("Truncate() = %q", got)
	}
	if got := render.Truncate("abc", 5); got != "abc" {
		t.Errorf("Truncate(short) = %q", got)
	}
}
