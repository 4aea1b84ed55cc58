// Package prompt loads the per-command prompt templates. Templates are
// plain text with {{name}} placeholders; the built-in set is embedded
// in the binary, and a directory override lets users ship their own.
package prompt

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed templates/*.txt
var builtin embed.FS

// Template is one named prompt with its raw content.
type Template struct {
	Name    string
	Content string
}

// Render substitutes {{key}} placeholders with the given values.
// Unknown placeholders are left in place.
func (t Template) Render(vars map[string]string) string {
	out := t.Content
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

// Loader holds the loaded template set.
type Loader struct {
	templates map[string]Template
}

// NewLoader loads the embedded templates, then overlays any *.txt files
// from dir (when non-empty), letting user templates shadow built-ins.
func NewLoader(dir string) (*Loader, error) {
	l := &Loader{templates: map[string]Template{}}

	if err := l.loadFS(builtin, "templates"); err != nil {
		return nil, fmt.Errorf("load embedded templates: %w", err)
	}
	if dir != "" {
		if err := l.loadDir(dir); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Loader) loadFS(fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		data, err := fs.ReadFile(fsys, root+"/"+e.Name())
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(e.Name(), ".txt")
		l.templates[name] = Template{Name: name, Content: string(data)}
	}
	return nil
}

func (l *Loader) loadDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".txt")
		l.templates[name] = Template{Name: name, Content: string(data)}
	}
	return nil
}

// Get returns the template for a command, or an error naming what is
// actually available.
func (l *Loader) Get(name string) (Template, error) {
	t, ok := l.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("prompt template %q not found; available: %s",
			name, strings.Join(l.List(), ", "))
	}
	return t, nil
}

// Render looks up a template and substitutes the given variables.
func (l *Loader) Render(name string, vars map[string]string) (string, error) {
	t, err := l.Get(name)
	if err != nil {
		return "", err
	}
	return t.Render(vars), nil
}

// List returns the loaded template names, sorted.
func (l *Loader) List() []string {
	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
