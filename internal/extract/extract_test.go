package extract_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/k1lgor/RepoDoctor/internal/errdefs"
	"github.com/k1lgor/RepoDoctor/internal/extract"
)

func TestJSON_BarePayloadUnchanged(t *testing.T) {
	input := "  \n  {\"key\":\"value\",\"n\":42}  \n  "
	got := extract.JSON(input)

	if got != `{"key":"value","n":42}` {
		t.Errorf("JSON = %q, want the bare object", got)
	}
}

func TestJSON_FencedBlockWithTag(t *testing.T) {
	input := "Here's the result:\n\n```json\n{\"a\":1}\n```\n\nThat's all!"
	got := extract.JSON(input)

	if got != `{"a":1}` {
		t.Errorf("JSON = %q, want fenced content", got)
	}
}

func TestJSON_FencedBlockWithoutTag(t *testing.T) {
	input := "```\n{\"key\":\"value\"}\n```"
	got := extract.JSON(input)

	if got != `{"key":"value"}` {
		t.Errorf("JSON = %q, want fenced content", got)
	}
}

func TestJSON_FencedBlockBeatsStrayBraces(t *testing.T) {
	input := "Prose with {stray braces} first.\n```json\n{\"a\":1}\n```\nAnd {more} after."
	got := extract.JSON(input)

	if got != `{"a":1}` {
		t.Errorf("JSON = %q, want the fenced block, not stray braces", got)
	}
}

func TestJSON_MultipleFences_FirstWins(t *testing.T) {
	input := "```json\n{\"first\":1}\n```\nand then\n```json\n{\"second\":2,\"extra\":3}\n```"
	got := extract.JSON(input)

	if got != `{"first":1}` {
		t.Errorf("JSON = %q, want the first fenced block", got)
	}
}

func TestJSON_LongestSpanWins(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"short first", `short {"x":1} then {"x":1,"y":2} end`},
		{"long first", `long {"x":1,"y":2} then {"x":1} end`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extract.JSON(tc.input)
			if got != `{"x":1,"y":2}` {
				t.Errorf("JSON = %q, want the longer span", got)
			}
		})
	}
}

func TestJSON_ArrayPayload(t *testing.T) {
	input := "The findings are:\n[{\"id\":1},{\"id\":2}]\ndone."
	got := extract.JSON(input)

	if got != `[{"id":1},{"id":2}]` {
		t.Errorf("JSON = %q, want the array span", got)
	}
}

func TestJSON_NoMarkers_ReturnsTrimmedVerbatim(t *testing.T) {
	input := "  I cannot analyze this.  "
	got := extract.JSON(input)

	if got != "I cannot analyze this." {
		t.Errorf("JSON = %q, want trimmed verbatim text", got)
	}
}

func TestParse_FencedBlock(t *testing.T) {
	input := "Result:\n```json\n{\"key\":\"test\",\"value\":0.5}\n```"

	got, err := extract.Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := map[string]any{"key": "test", "value": 0.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NestedObject(t *testing.T) {
	input := `{"outer":{"inner":[1,2,3]}}`

	got, err := extract.Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := json.Marshal(got); err != nil {
		t.Errorf("parsed value not round-trippable: %v", err)
	}
}

func TestParse_InvalidJSON_CarriesOriginalText(t *testing.T) {
	raw := "I cannot analyze this."

	_, err := extract.Parse(raw)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errdefs.IsKind(err, errdefs.KindParse) {
		t.Fatalf("expected KindParse, got %v", err)
	}
	var e *errdefs.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *errdefs.Error, got %T", err)
	}
	if e.RawOutput != raw {
		t.Errorf("expected original raw text preserved, got %q", e.RawOutput)
	}
}
