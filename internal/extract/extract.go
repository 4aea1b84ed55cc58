// Package extract locates the JSON payload inside free-form assistant
// output. Responses arrive as unstructured text: explanatory prose,
// markdown code fences, or bare JSON. The layered heuristic here
// tolerates all three without requiring the assistant to follow a
// single rigid format.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/k1lgor/RepoDoctor/internal/errdefs"
)

// fencedRE matches a markdown code fence (optionally tagged json) whose
// body is brace- or bracket-delimited. The first match wins.
var fencedRE = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\}|\\[.*?\\])\\s*```")

// JSON extracts the JSON payload from raw assistant output. It always
// returns a string, possibly malformed; failures surface later at
// decode time.
//
// Priority order: first fenced code block, then the longest unfenced
// brace/bracket span, then the whole text trimmed.
func JSON(raw string) string {
	if m := fencedRE.FindStringSubmatch(raw); m != nil {
		return m[1]
	}

	if longest := longestSpan(raw); longest != "" {
		return longest
	}

	return strings.TrimSpace(raw)
}

// longestSpan scans for balanced brace- or bracket-delimited spans and
// returns the longest one, on the heuristic that the real payload is
// the biggest JSON-looking substring and prose fragments are shorter.
//
// The scan is not string-literal aware: braces inside JSON strings
// shift the depth count and can yield a longer invalid span. Kept
// as-is; a bad span fails at decode time with the full raw text in
// the error.
func longestSpan(raw string) string {
	var longest string
	depth := 0
	start := -1
	var open, close byte

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if depth == 0 {
			if c == '{' || c == '[' {
				open, close = c, '}'
				if c == '[' {
					close = ']'
				}
				start = i
				depth = 1
			}
			continue
		}
		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				if span := raw[start : i+1]; len(span) > len(longest) {
					longest = span
				}
			}
		}
	}
	return longest
}

// Parse runs the extractor and decodes the result as JSON. A decode
// failure raises a parse error carrying the original raw text, not the
// extracted fragment, so diagnostics see everything the process wrote.
func Parse(raw string) (any, error) {
	payload := JSON(raw)
	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return nil, errdefs.Parse(fmt.Sprintf("failed to parse output as JSON: %v", err), raw, err)
	}
	return v, nil
}
