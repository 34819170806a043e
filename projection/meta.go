// Package projection derives standards-compliant read-only views from a
// canonical technote metadata record: Highwire Press citation metadata,
// Open Graph social metadata, microformats2 class annotations, and the
// merged template context handed to the host renderer.
//
// Every builder is a pure function over an immutable input; builders are
// independent, callable in any order, and safe to invoke concurrently.
package projection

import (
	"html"
	"strings"
)

// MetaTag is one HTML meta tag to place in the document head.
type MetaTag struct {
	// Name is the tag's name attribute, or its property attribute for
	// Open Graph tags.
	Name    string
	Content string

	// Property renders the tag with a property attribute instead of a
	// name attribute.
	Property bool

	// Highwire adds the data-highwire marker used by the theme layer.
	Highwire bool
}

// String renders the tag as HTML with escaped content.
func (t MetaTag) String() string {
	attr := "name"
	if t.Property {
		attr = "property"
	}
	var b strings.Builder
	b.WriteString("<meta ")
	b.WriteString(attr)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(t.Name))
	b.WriteString(`" content="`)
	b.WriteString(html.EscapeString(t.Content))
	b.WriteString(`"`)
	if t.Highwire {
		b.WriteString(` data-highwire="true"`)
	}
	b.WriteString(">")
	return b.String()
}

func renderTags(tags []MetaTag) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = tag.String()
	}
	return strings.Join(parts, "\n") + "\n"
}
