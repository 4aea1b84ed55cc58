package prompt_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/k1lgor/RepoDoctor/internal/prompt"
)

func TestBuiltinTemplates(t *testing.T) {
	l, err := prompt.NewLoader("")
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	want := []string{"deadcode", "diet", "docker", "report", "tour"}
	if diff := cmp.Diff(want, l.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSubstitutes(t *testing.T) {
	l, err := prompt.NewLoader("")
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	got, err := l.Render("diet", map[string]string{"repo_path": "/srv/app"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(got, "/srv/app") {
		t.Error("rendered prompt does not contain the repo path")
	}
	if strings.Contains(got, "{{repo_path}}") {
		t.Error("rendered prompt still contains the placeholder")
	}
}

func TestGetUnknownListsAvailable(t *testing.T) {
	l, err := prompt.NewLoader("")
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	_, err = l.Get("lint")
	if err == nil {
		t.Fatal("Get(lint) = nil error")
	}
	if !strings.Contains(err.Error(), "diet") {
		t.Errorf("error %q does not list available templates", err)
	}
}

func TestDirOverrideShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	custom := "Custom diet prompt for {{repo_path}}."
	if err := os.WriteFile(filepath.Join(dir, "diet.txt"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := prompt.NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	got, err := l.Render("diet", map[string]string{"repo_path": "x"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "Custom diet prompt for x." {
		t.Errorf("Render() = %q, want the override content", got)
	}
	// Built-ins not shadowed stay available.
	if _, err := l.Get("tour"); err != nil {
		t.Errorf("Get(tour) error = %v after override", err)
	}
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	tmpl := prompt.Template{Name: "x", Content: "a {{known}} b {{unknown}}"}
	got := tmpl.Render(map[string]string{"known": "1"})
	if got != "a 1 b {{unknown}}" {
		t.Errorf("Render() = %q", got)
	}
}
