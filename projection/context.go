package projection

import (
	"net/url"
	"strings"

	"github.com/docforge/technote/metadata"
)

const (
	isoDateLayout     = "2006-01-02"
	isoDatetimeLayout = "2006-01-02T15:04:05Z"
)

// TemplateContext is the merged view handed to the host template
// renderer. It is a closed record: the field set is the stable contract
// the external templates depend on, so a missing value is caught here
// rather than at render time.
type TemplateContext struct {
	Title    string
	Abstract string

	// AuthorLine is a plaintext expression of the author list.
	AuthorLine string

	DateCreatedISO     string
	DateUpdatedISO     string
	DatetimeCreatedISO string
	DatetimeUpdatedISO string

	Version      string
	CanonicalURL string

	SourceURL    string
	SourceBranch string
	SourceCommit string

	// RepoSlug is "owner/name" for github.com source repositories.
	RepoSlug string

	// EditURL points at the technote root document on the source host.
	EditURL string

	Citation     Citation
	OpenGraph    OpenGraph
	Microformats map[string]string

	HighwireTags  string
	OpenGraphTags string

	Metadata *metadata.TechnoteMetadata
}

// BuildTemplateContext composes the canonical metadata and the other
// projections into the template context. Pure composition: nothing is
// re-validated and the metadata record is not mutated.
func BuildTemplateContext(meta *metadata.TechnoteMetadata) TemplateContext {
	citation := BuildCitation(meta)
	og := BuildOpenGraph(meta)

	ctx := TemplateContext{
		Title:         meta.Title,
		Abstract:      meta.AbstractPlain,
		AuthorLine:    authorLine(meta),
		Version:       meta.Version,
		CanonicalURL:  meta.CanonicalURL,
		Citation:      citation,
		OpenGraph:     og,
		Microformats:  Microformats(),
		HighwireTags:  citation.HTML(),
		OpenGraphTags: og.HTML(),
		Metadata:      meta,
	}

	if meta.DateCreated != nil {
		ctx.DateCreatedISO = meta.DateCreated.UTC().Format(isoDateLayout)
		ctx.DatetimeCreatedISO = meta.DateCreated.UTC().Format(isoDatetimeLayout)
	}
	if !meta.DateUpdated.IsZero() {
		ctx.DateUpdatedISO = meta.DateUpdated.UTC().Format(isoDateLayout)
		ctx.DatetimeUpdatedISO = meta.DateUpdated.UTC().Format(isoDatetimeLayout)
	}

	if repo := meta.SourceRepository; repo != nil {
		ctx.SourceURL = repo.URL
		ctx.SourceBranch = repo.Branch
		ctx.SourceCommit = repo.Commit
		ctx.RepoSlug = repoSlug(repo.URL)
		ctx.EditURL = editURL(repo)
	}
	return ctx
}

// Flatten returns the flat mapping shape the external renderer consumes.
// Key names are a stable contract.
func (c TemplateContext) Flatten() map[string]any {
	return map[string]any{
		"title":                   c.Title,
		"abstract":                c.Abstract,
		"author_line":             c.AuthorLine,
		"date_created_iso":        c.DateCreatedISO,
		"date_updated_iso":        c.DateUpdatedISO,
		"datetime_created_iso":    c.DatetimeCreatedISO,
		"datetime_updated_iso":    c.DatetimeUpdatedISO,
		"version":                 c.Version,
		"canonical_url":           c.CanonicalURL,
		"source_url":              c.SourceURL,
		"source_branch":           c.SourceBranch,
		"source_commit":           c.SourceCommit,
		"repo_slug":               c.RepoSlug,
		"edit_url":                c.EditURL,
		"citation":                c.Citation,
		"opengraph":               c.OpenGraph,
		"microformats":            c.Microformats,
		"highwire_metadata_tags":  c.HighwireTags,
		"opengraph_metadata_tags": c.OpenGraphTags,
		"metadata":                c.Metadata,
	}
}

func authorLine(meta *metadata.TechnoteMetadata) string {
	names := make([]string, 0, len(meta.Authors))
	for _, author := range meta.Authors {
		names = append(names, author.Name.PlainText())
	}
	return strings.Join(names, ", ")
}

// repoSlug extracts "owner/name" from a github.com repository URL.
// Other hosts yield an empty slug.
func repoSlug(repoURL string) string {
	u, err := url.Parse(repoURL)
	if err != nil || !strings.EqualFold(u.Host, "github.com") {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSuffix(strings.Join(parts[:2], "/"), ".git")
}

// editURL builds a link to the root document on the source host, using
// /blob/ so readers can pick web or IDE editing themselves.
func editURL(repo *metadata.SourceRepository) string {
	if repo.Path == "" {
		return ""
	}
	root := strings.TrimSuffix(repo.URL, ".git")
	branch := repo.Branch
	if branch == "" {
		branch = "main"
	}
	return root + "/blob/" + branch + "/" + repo.Path
}
