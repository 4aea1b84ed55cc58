package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/k1lgor/RepoDoctor/internal/errdefs"
	"github.com/k1lgor/RepoDoctor/internal/pipeline"
	"github.com/k1lgor/RepoDoctor/internal/repofs"
	"github.com/k1lgor/RepoDoctor/internal/schema"
)

var reportFlags struct {
	out     string
	format  string
	timeout int
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a health report from the last scan",
	Long: `Generate a readable health report from the cached results of the last
'repodoc scan'. The cache is revalidated before use; a stale or
corrupted cache is rejected with a pointer to re-run the scan.

Examples:
  repodoc report                        # REPODOCTOR_REPORT.md
  repodoc report --format html          # REPODOCTOR_REPORT.html
  repodoc report --out docs/HEALTH.md   # Custom path`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportFlags.out, "out", "o", "", "Custom output path for the report")
	f.StringVar(&reportFlags.format, "format", "markdown", "Report format: markdown or html")
	f.IntVar(&reportFlags.timeout, "timeout", 0, "Timeout in seconds for the Copilot CLI")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFlags.format != "markdown" && reportFlags.format != "html" {
		return fmt.Errorf("invalid --format %q: must be markdown or html", reportFlags.format)
	}

	s, err := newSession(reportFlags.timeout)
	if err != nil {
		return err
	}
	defer s.close()

	scanData, err := loadScanCache(s.root)
	if err != nil {
		return err
	}

	p, err := s.prompts.Render("report", map[string]string{
		"repo_path": s.root,
		"scan_data": scanData,
		"format":    reportFlags.format,
	})
	if err != nil {
		return err
	}

	progress(false, "Generating report...")
	result, _, err := pipeline.Run[schema.ReportOutput](cmd.Context(), s.pipe,
		copilotRequest(s, p), schema.Report)
	if err != nil {
		return err
	}

	reportPath := reportFlags.out
	if reportPath == "" {
		ext := "md"
		if reportFlags.format == "html" {
			ext = "html"
		}
		reportPath = filepath.Join(s.root, "REPODOCTOR_REPORT."+ext)
	}
	if err := writeFile(reportPath, result.MarkdownContent); err != nil {
		return err
	}

	fmt.Printf("\n✓ Report generated: %s\n", reportPath)
	fmt.Printf("Report title: %s\n", result.ReportTitle)
	fmt.Printf("Generated:    %s\n", result.GenerationTimestamp)

	printSuccess("Report generation", []string{
		"Review the full report for detailed findings",
		"Address high-priority issues identified in the report",
		"Re-run 'repodoc scan' after making improvements",
	})
	return nil
}

// loadScanCache reads and revalidates .repodoc/last_scan.json, then
// returns it re-indented for prompt embedding.
func loadScanCache(root string) (string, error) {
	path := repofs.ScanCachePath(root)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("no scan results found; run 'repodoc scan' first")
	}
	if err != nil {
		return "", fmt.Errorf("load scan results: %w", err)
	}

	if _, err := schema.ParseAndValidate[schema.ScanResult](string(data), schema.Scan); err != nil {
		if errdefs.IsKind(err, errdefs.KindSchema) || errdefs.IsKind(err, errdefs.KindParse) {
			return "", fmt.Errorf("cached scan results are invalid; re-run 'repodoc scan': %w", err)
		}
		return "", err
	}

	var pretty json.RawMessage = data
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return string(data), nil
	}
	return string(out), nil
}
