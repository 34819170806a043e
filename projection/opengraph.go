package projection

import (
	"time"

	"github.com/docforge/technote/metadata"
)

// ogDatetimeLayout is ISO 8601 normalized to UTC.
const ogDatetimeLayout = "2006-01-02T15:04:05Z"

// OpenGraph is the social-unfurl projection (https://ogp.me/).
type OpenGraph struct {
	Title       string
	Description string
	URL         string
	Type        string

	// Authors are display names in input order.
	Authors []string

	// PublishedTime is date_created when available; when only
	// date_updated is known it stands in as the published time and
	// ModifiedTime stays empty.
	PublishedTime string
	ModifiedTime  string
}

// BuildOpenGraph derives the social-unfurl projection. The description
// comes from the abstract text carried on the metadata record, which is
// supplied by content extraction rather than the settings file.
func BuildOpenGraph(meta *metadata.TechnoteMetadata) OpenGraph {
	og := OpenGraph{
		Title:       meta.Title,
		Description: meta.AbstractPlain,
		URL:         meta.CanonicalURL,
		Type:        "article",
	}
	for _, author := range meta.Authors {
		og.Authors = append(og.Authors, author.Name.PlainText())
	}
	og.PublishedTime, og.ModifiedTime = ogTimes(meta.DateCreated, meta.DateUpdated)
	return og
}

func ogTimes(created *time.Time, updated time.Time) (published, modified string) {
	switch {
	case created != nil && !updated.IsZero():
		return created.UTC().Format(ogDatetimeLayout), updated.UTC().Format(ogDatetimeLayout)
	case created != nil:
		return created.UTC().Format(ogDatetimeLayout), ""
	case !updated.IsZero():
		return updated.UTC().Format(ogDatetimeLayout), ""
	default:
		return "", ""
	}
}

// MetaTags renders the projection as og:* property tags.
func (og OpenGraph) MetaTags() []MetaTag {
	tags := []MetaTag{}
	add := func(name, content string) {
		if content == "" {
			return
		}
		tags = append(tags, MetaTag{Name: "og:" + name, Content: content, Property: true})
	}
	add("title", og.Title)
	add("description", og.Description)
	add("url", og.URL)
	add("type", og.Type)
	for _, author := range og.Authors {
		add("article:author", author)
	}
	add("article:published_time", og.PublishedTime)
	add("article:modified_time", og.ModifiedTime)
	return tags
}

// HTML renders the Open Graph meta tags as newline-joined HTML.
func (og OpenGraph) HTML() string {
	return renderTags(og.MetaTags())
}
