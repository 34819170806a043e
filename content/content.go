// Package content extracts presentation metadata from a technote's root
// Markdown document: the title from the first top-level heading and the
// abstract from an "Abstract" section. YAML frontmatter keys override
// content-derived values. The settings file stays the authority for the
// title; this package only supplies what the settings left empty.
package content

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Document is the metadata recovered from a root content document.
type Document struct {
	Title    string
	Abstract string
}

type frontmatterFields struct {
	Title    string `yaml:"title"`
	Abstract string `yaml:"abstract"`
}

// Extract reads a Markdown document and returns its derivable metadata.
// Missing pieces come back as empty strings; a document without a
// heading or abstract section is not an error.
func Extract(src []byte) (Document, error) {
	fm, body, err := splitFrontmatter(src)
	if err != nil {
		return Document{}, err
	}

	var fields frontmatterFields
	if len(fm) > 0 {
		if err := yaml.Unmarshal(fm, &fields); err != nil {
			return Document{}, err
		}
	}

	doc := Document{
		Title:    strings.TrimSpace(fields.Title),
		Abstract: strings.TrimSpace(fields.Abstract),
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	if doc.Title == "" {
		doc.Title = firstHeading(root, body)
	}
	if doc.Abstract == "" {
		doc.Abstract = abstractSection(root, body)
	}
	return doc, nil
}

// splitFrontmatter separates an optional leading `---` delimited YAML
// block from the Markdown body.
func splitFrontmatter(src []byte) (frontmatter, body []byte, err error) {
	open := []byte("---\n")
	if !bytes.HasPrefix(src, open) {
		return nil, src, nil
	}
	rest := src[len(open):]
	idx := bytes.Index(rest, []byte("\n---\n"))
	if idx < 0 {
		// Unterminated frontmatter: treat the whole input as body.
		return nil, src, nil
	}
	return rest[:idx+1], rest[idx+len("\n---\n"):], nil
}

// firstHeading returns the text of the first level-1 heading.
func firstHeading(root gmast.Node, body []byte) string {
	title := ""
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering || title != "" {
			return gmast.WalkContinue, nil
		}
		if heading, ok := n.(*gmast.Heading); ok && heading.Level == 1 {
			title = nodeText(heading, body)
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

// abstractSection collects the paragraphs under a heading titled
// "Abstract", up to the next heading of the same or higher level.
// Paragraphs are joined with blank lines.
func abstractSection(root gmast.Node, body []byte) string {
	var paragraphs []string
	level := 0
	inAbstract := false

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *gmast.Heading:
			if inAbstract && node.Level <= level {
				inAbstract = false
			}
			if !inAbstract && strings.EqualFold(nodeText(node, body), "abstract") {
				inAbstract = true
				level = node.Level
			}
		case *gmast.Paragraph:
			if inAbstract {
				paragraphs = append(paragraphs, nodeText(node, body))
			}
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// nodeText flattens the plain text of a node, dropping inline markup.
func nodeText(n gmast.Node, body []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if t, ok := c.(*gmast.Text); ok {
			b.Write(t.Segment.Value(body))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
