package metadata

import (
	"fmt"
	"strings"
)

// Violation is one field-level problem found during normalization.
// Field is a dotted path into the settings document, e.g.
// "technote.authors[0].name.given".
type Violation struct {
	Field  string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// ValidationError aggregates every violation found in a single
// normalization pass. Validation never stops at the first problem: the
// person fixing the document should see the full list at once.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "technote settings have %d problem(s):", len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v.String())
	}
	return b.String()
}

// Warning is a non-fatal normalization finding. The only producer today
// is the unknown-license check; the SPDX namespace grows faster than
// the embedded table, so an unknown ID is not treated as an error.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// collector accumulates violations and warnings during one pass.
type collector struct {
	violations []Violation
	warnings   []Warning
}

func (c *collector) violate(field, format string, args ...any) {
	c.violations = append(c.violations, Violation{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func (c *collector) warn(field, format string, args ...any) {
	c.warnings = append(c.warnings, Warning{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *collector) err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: c.violations}
}
