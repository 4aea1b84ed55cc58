// Package render turns validated analysis results into terminal
// output: summary tables plus the issue and recommendation lists the
// commands share.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/k1lgor/RepoDoctor/internal/schema"
)

// Renderer writes human-readable command output. The zero Mode renders
// fixed-width terminal tables; Markdown mode suits piping into docs.
type Renderer struct {
	w    io.Writer
	mode Mode
}

func New(w io.Writer, mode Mode) *Renderer {
	return &Renderer{w: w, mode: mode}
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Diet renders the bloat analysis: totals, largest files and
// directories, suspected artifacts, missing hygiene files.
func (r *Renderer) Diet(out *schema.DietOutput) {
	a := out.Analysis
	r.printf("Repository size: %s\n", a.TotalSizeHuman)

	if len(a.LargestFiles) > 0 {
		t := NewTable(r.mode)
		t.Header("File", "Size")
		for _, f := range a.LargestFiles {
			t.Row(f.Path, humanize.Bytes(uint64(f.SizeBytes)))
		}
		t.RightAlign(2)
		r.printf("\nLargest files:\n%s\n", t.String())
	}

	if len(a.LargestDirectories) > 0 {
		t := NewTable(r.mode)
		t.Header("Directory", "Size", "Files")
		for _, d := range a.LargestDirectories {
			t.Row(d.Path, humanize.Bytes(uint64(d.SizeBytes)), d.FileCount)
		}
		t.RightAlign(2, 3)
		r.printf("\nLargest directories:\n%s\n", t.String())
	}

	if len(a.SuspectedArtifacts) > 0 {
		r.printf("\nSuspected artifacts:\n")
		for _, art := range a.SuspectedArtifacts {
			r.printf("  • %s\n", art)
		}
	}

	if len(a.MissingHygieneFiles) > 0 {
		r.printf("\nMissing hygiene files:\n")
		for _, m := range a.MissingHygieneFiles {
			r.printf("  • %s (%s)\n", m.Filename, m.Importance)
		}
	}

	r.issues(out.Issues)
	r.recommendations(out.Recommendations)
}

// Tour renders the codebase tour: stack, entry points, directory
// guide, recommended reading order.
func (r *Renderer) Tour(out *schema.TourOutput) {
	s := out.Tour.Stack
	if len(s.Languages) > 0 {
		r.printf("Languages:  %s\n", strings.Join(s.Languages, ", "))
	}
	if len(s.Frameworks) > 0 {
		r.printf("Frameworks: %s\n", strings.Join(s.Frameworks, ", "))
	}
	if len(s.Tools) > 0 {
		r.printf("Tools:      %s\n", strings.Join(s.Tools, ", "))
	}
	if len(s.Databases) > 0 {
		r.printf("Databases:  %s\n", strings.Join(s.Databases, ", "))
	}

	if len(out.Tour.EntryPoints) > 0 {
		t := NewTable(r.mode)
		t.Header("Entry Point", "Type", "Description")
		for _, e := range out.Tour.EntryPoints {
			t.Row(e.FilePath, e.Type, Truncate(e.Description, 60))
		}
		r.printf("\nEntry points:\n%s\n", t.String())
	}

	if len(out.Tour.DirectoryStructure) > 0 {
		t := NewTable(r.mode)
		t.Header("Directory", "Purpose")
		for _, d := range out.Tour.DirectoryStructure {
			t.Row(d.Path, Truncate(d.Purpose, 70))
		}
		r.printf("\nDirectory guide:\n%s\n", t.String())
	}

	if len(out.Tour.RecommendedReadingOrder) > 0 {
		r.printf("\nRecommended reading order:\n")
		for i, f := range out.Tour.RecommendedReadingOrder {
			r.printf("  %d. %s\n", i+1, f)
		}
	}

	if out.Tour.ArchitectureNotes != "" {
		r.printf("\n%s\n", out.Tour.ArchitectureNotes)
	}
}

// Docker renders the Dockerfile review, one section per Dockerfile,
// issues sorted worst first.
func (r *Renderer) Docker(out *schema.DockerOutput) {
	for _, df := range out.Dockerfiles {
		r.printf("Dockerfile: %s\n", df.DockerfilePath)
		if df.BaseImage != "" {
			r.printf("Base image: %s\n", df.BaseImage)
		}
		if df.SizeEstimate != "" {
			r.printf("Size estimate: %s\n", df.SizeEstimate)
		}
		if df.MissingDockerignore {
			r.printf("Missing .dockerignore\n")
		}

		if len(df.Issues) > 0 {
			issues := append([]schema.DockerIssue(nil), df.Issues...)
			sort.SliceStable(issues, func(i, j int) bool {
				return SeverityRank(issues[i].Severity) < SeverityRank(issues[j].Severity)
			})
			t := NewTable(r.mode)
			t.Header("Severity", "Line", "Issue", "Explanation")
			for _, is := range issues {
				line := "-"
				if is.LineNumber > 0 {
					line = fmt.Sprintf("%d", is.LineNumber)
				}
				t.Row(SeverityName(is.Severity), line, is.IssueType, Truncate(is.Explanation, 60))
			}
			r.printf("\n%s\n", t.String())
		}

		if len(df.Optimizations) > 0 {
			r.printf("\nOptimizations:\n")
			for _, o := range df.Optimizations {
				r.printf("  • %s\n", o)
			}
		}
		r.printf("\n")
	}

	if len(out.DockerignoreSuggestions) > 0 {
		r.printf("Suggested .dockerignore entries:\n")
		for _, s := range out.DockerignoreSuggestions {
			r.printf("  %s\n", s)
		}
	}

	r.issues(out.Issues)
	r.recommendations(out.Recommendations)
}

// DeadCode renders the findings grouped by confidence counts.
func (r *Renderer) DeadCode(out *schema.DeadCodeOutput) {
	s := out.Summary
	r.printf("Findings: %d (high: %d, medium: %d, low: %d)\n",
		s.TotalFindings, s.HighConfidenceCount, s.MediumConfidenceCount, s.LowConfidenceCount)
	if s.EstimatedTotalLines > 0 {
		r.printf("Estimated removable lines: %d\n", s.EstimatedTotalLines)
	}

	if len(out.Findings) > 0 {
		t := NewTable(r.mode)
		t.Header("Confidence", "File", "Lines", "Type", "Reason")
		for _, f := range out.Findings {
			t.Row(ConfidenceName(f.Confidence), f.FilePath, LineRange(f.LineRange),
				f.CodeType, Truncate(f.Reason, 50))
		}
		r.printf("\n%s\n", t.String())
	}

	if out.AnalysisNotes != "" {
		r.printf("\n%s\n", out.AnalysisNotes)
	}
}

// Scan renders the aggregate health score and the per-module outcomes.
func (r *Renderer) Scan(res *schema.ScanResult) {
	r.printf("Health score: %d/100  grade %s\n", res.HealthScore.OverallScore, GradeMark(res.HealthScore))

	if len(res.ModuleResults) > 0 {
		t := NewTable(r.mode)
		t.Header("Module", "Status", "Issues", "Score")
		for _, m := range res.ModuleResults {
			score := "-"
			if m.Score != nil {
				score = fmt.Sprintf("%d", *m.Score)
			}
			status := BoolMark(m.Success)
			if m.Error != "" {
				status += " " + Truncate(m.Error, 40)
			}
			t.Row(m.ModuleName, status, m.IssuesCount, score)
		}
		t.RightAlign(3, 4)
		r.printf("\n%s\n", t.String())
	}
}

// issues renders the shared issue list, worst first.
func (r *Renderer) issues(issues []schema.Issue) {
	if len(issues) == 0 {
		return
	}
	sorted := append([]schema.Issue(nil), issues...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return SeverityRank(sorted[i].Severity) < SeverityRank(sorted[j].Severity)
	})

	t := NewTable(r.mode)
	t.Header("Severity", "Category", "Issue")
	for _, is := range sorted {
		t.Row(SeverityName(is.Severity), is.Category, Truncate(is.Title, 70))
	}
	r.printf("\nIssues:\n%s\n", t.String())
}

// recommendations renders the shared recommendation list.
func (r *Renderer) recommendations(recs []schema.Recommendation) {
	if len(recs) == 0 {
		return
	}
	r.printf("\nRecommendations:\n")
	for i, rec := range recs {
		r.printf("  %d. [%s] %s\n", i+1, SeverityName(rec.Priority), rec.Action)
		if rec.Reason != "" {
			r.printf("     %s\n", rec.Reason)
		}
	}
}
