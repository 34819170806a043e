package projection

import (
	"github.com/docforge/technote/metadata"
)

// highwireDateLayout is the Y/m/d form Highwire consumers expect.
const highwireDateLayout = "2006/01/02"

// CitationAuthor is one author entry of the citation projection.
type CitationAuthor struct {
	// Name is the author in citation order, "Family, Given".
	Name string

	// Institution is the author's first affiliation name, when present.
	Institution string

	Email string
	ORCID string
}

// Citation is the Highwire Press citation projection. Absent fields are
// empty strings and are omitted from the rendered tags, never emitted
// as empty tags.
type Citation struct {
	Title                 string
	Authors               []CitationAuthor
	Date                  string
	DOI                   string
	TechnicalReportNumber string
	FulltextURL           string
}

// BuildCitation derives the citation projection. Authors keep the input
// order of the metadata record.
func BuildCitation(meta *metadata.TechnoteMetadata) Citation {
	c := Citation{
		Title:                 meta.Title,
		DOI:                   meta.DOI,
		TechnicalReportNumber: meta.ID,
		FulltextURL:           meta.CanonicalURL,
	}
	if !meta.DateUpdated.IsZero() {
		c.Date = meta.DateUpdated.UTC().Format(highwireDateLayout)
	}
	for _, author := range meta.Authors {
		entry := CitationAuthor{
			Name:  author.Name.Inverted(),
			Email: author.Email,
			ORCID: author.ORCID,
		}
		for _, affiliation := range author.Affiliations {
			if affiliation.Name != "" {
				entry.Institution = affiliation.Name
				break
			}
		}
		c.Authors = append(c.Authors, entry)
	}
	return c
}

// MetaTags renders the projection as citation_* meta tags.
func (c Citation) MetaTags() []MetaTag {
	tags := []MetaTag{}
	add := func(name, content string) {
		if content == "" {
			return
		}
		tags = append(tags, MetaTag{Name: "citation_" + name, Content: content, Highwire: true})
	}
	add("title", c.Title)
	for _, author := range c.Authors {
		add("author", author.Name)
		add("author_institution", author.Institution)
		add("author_email", author.Email)
		add("author_orcid", author.ORCID)
	}
	add("date", c.Date)
	add("doi", c.DOI)
	add("technical_report_number", c.TechnicalReportNumber)
	add("fulltext_html_url", c.FulltextURL)
	return tags
}

// HTML renders the citation meta tags as newline-joined HTML.
func (c Citation) HTML() string {
	return renderTags(c.MetaTags())
}
