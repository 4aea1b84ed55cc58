// Package schema declares the output contract for each analysis task:
// a JSON Schema document compiled at package init, paired with the
// typed struct the validated payload decodes into. Validation is
// all-or-nothing; a typed result is never produced unless every
// required field is present and type-correct. Unknown fields pass
// silently so newer assistant output does not break older contracts.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/k1lgor/RepoDoctor/internal/errdefs"
	"github.com/k1lgor/RepoDoctor/internal/extract"
)

// Spec is the declared structural contract for one analysis task.
// Specs are static, compiled once at build time, never mutated.
type Spec struct {
	Name string

	compiled *jsonschema.Schema
}

var printer = message.NewPrinter(language.English)

// mustCompile builds a Spec from a schema document. The documents are
// compile-time constants, so failure here is a programming error.
func mustCompile(name, doc string) *Spec {
	c := jsonschema.NewCompiler()

	base, err := jsonschema.UnmarshalJSON(strings.NewReader(baseSchema))
	if err != nil {
		panic(fmt.Sprintf("schema: decode base document: %v", err))
	}
	if err := c.AddResource("base.json", base); err != nil {
		panic(fmt.Sprintf("schema: register base document: %v", err))
	}

	d, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		panic(fmt.Sprintf("schema %s: decode document: %v", name, err))
	}
	url := name + ".json"
	if err := c.AddResource(url, d); err != nil {
		panic(fmt.Sprintf("schema %s: register document: %v", name, err))
	}

	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("schema %s: compile: %v", name, err))
	}
	return &Spec{Name: name, compiled: compiled}
}

// Validate checks a decoded JSON value against the contract. On any
// violation it collects all violations found, not just the first.
func (s *Spec) Validate(value any) error {
	err := s.compiled.Validate(value)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return errdefs.Schema(s.Name, []errdefs.Violation{{Path: "$", Message: err.Error()}})
	}
	return errdefs.Schema(s.Name, flatten(ve))
}

// flatten walks the validator's cause tree and returns the leaf
// violations in document order.
func flatten(ve *jsonschema.ValidationError) []errdefs.Violation {
	if len(ve.Causes) == 0 {
		return []errdefs.Violation{{
			Path:    instancePath(ve.InstanceLocation),
			Message: ve.ErrorKind.LocalizedString(printer),
		}}
	}
	var out []errdefs.Violation
	for _, c := range ve.Causes {
		out = append(out, flatten(c)...)
	}
	return out
}

func instancePath(loc []string) string {
	if len(loc) == 0 {
		return "$"
	}
	return "$." + strings.Join(loc, ".")
}

// ParseAndValidate extracts the JSON payload from raw assistant output,
// validates it against sp, and decodes it into T. This is the single
// entry point most callers use.
func ParseAndValidate[T any](raw string, sp *Spec) (*T, error) {
	payload := extract.JSON(raw)

	value, err := jsonschema.UnmarshalJSON(strings.NewReader(payload))
	if err != nil {
		return nil, errdefs.Parse(fmt.Sprintf("failed to parse output as JSON: %v", err), raw, err)
	}
	if err := sp.Validate(value); err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, errdefs.Parse(fmt.Sprintf("failed to decode validated output: %v", err), raw, err)
	}
	return &out, nil
}

// TryParseAndValidate is the non-raising variant: nil instead of an
// error, for call sites where one failing sub-task should not abort a
// larger aggregate operation.
func TryParseAndValidate[T any](raw string, sp *Spec) *T {
	out, err := ParseAndValidate[T](raw, sp)
	if err != nil {
		return nil
	}
	return out
}
