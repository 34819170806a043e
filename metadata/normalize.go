package metadata

import (
	"log/slog"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/docforge/technote/settings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// collapseWhitespace replaces any whitespace run with a single space.
func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// Normalizer validates a parsed settings tree and builds the canonical
// TechnoteMetadata record. A Normalizer is stateless across calls and
// safe to reuse.
type Normalizer struct {
	now    func() time.Time
	logger *slog.Logger
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithClock overrides the build clock used to default date_updated.
func WithClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) { n.now = now }
}

// WithLogger sets the logger used for non-fatal findings.
func WithLogger(logger *slog.Logger) NormalizerOption {
	return func(n *Normalizer) { n.logger = logger }
}

// NewNormalizer builds a Normalizer with the real clock and the default
// slog logger.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize validates the settings tree and constructs the metadata
// record. Violations are aggregated across the whole document: the
// returned error is a *ValidationError listing every problem found,
// never just the first. Warnings are non-fatal and are returned even on
// success; a partial metadata record is never returned alongside an
// error.
func (n *Normalizer) Normalize(root settings.Value) (*TechnoteMetadata, []Warning, error) {
	c := &collector{}

	technote, ok := root.Get("technote")
	if !ok {
		c.violate("technote", "missing required [technote] table")
		return nil, nil, c.err()
	}
	if technote.Kind() != settings.KindTable {
		c.violate("technote", "expected a table, got %s", technote.Kind())
		return nil, nil, c.err()
	}

	meta := &TechnoteMetadata{}
	meta.ID = optString(c, technote, "id", "technote.id")
	meta.SeriesID = optString(c, technote, "series_id", "technote.series_id")
	meta.Title = collapseWhitespace(optString(c, technote, "title", "technote.title"))
	meta.Version = optString(c, technote, "version", "technote.version")
	meta.DOI = optString(c, technote, "doi", "technote.doi")
	meta.CanonicalURL = optURL(c, technote, "canonical_url", "technote.canonical_url")

	meta.DateCreated = optTime(c, technote, "date_created", "technote.date_created")
	if updated := optTime(c, technote, "date_updated", "technote.date_updated"); updated != nil {
		meta.DateUpdated = *updated
	} else {
		// The one implicit default: a technote is considered updated at
		// minimum when it is rebuilt.
		meta.DateUpdated = n.now().UTC()
	}

	if org, ok := technote.Get("organization"); ok {
		meta.Organization = n.organization(c, org, "technote.organization")
	}

	meta.SourceRepository = n.sourceRepository(c, technote)
	meta.Authors = n.authors(c, technote)
	meta.Contributors = n.contributors(c, technote)

	if status, ok := technote.Get("status"); ok {
		meta.Status = n.status(c, status, "technote.status")
	}
	if license, ok := technote.Get("license"); ok {
		meta.License = n.license(c, license, "technote.license")
	}

	if err := c.err(); err != nil {
		return nil, c.warnings, err
	}
	for _, w := range c.warnings {
		n.logger.Warn("technote settings warning",
			slog.String("field", w.Field),
			slog.String("message", w.Message))
	}
	return meta, c.warnings, nil
}

func (n *Normalizer) sourceRepository(c *collector, technote settings.Value) *SourceRepository {
	repoURL := optURL(c, technote, "source_repository_url", "technote.source_repository_url")
	branch := optString(c, technote, "default_branch", "technote.default_branch")
	if repoURL == "" {
		if branch != "" {
			c.violate("technote.default_branch", "default_branch requires source_repository_url to be set")
		}
		return nil
	}
	if branch == "" {
		branch = "main"
	}
	return &SourceRepository{URL: repoURL, Branch: branch}
}

func (n *Normalizer) authors(c *collector, technote settings.Value) []Person {
	raw, ok := technote.Get("authors")
	if !ok {
		return nil
	}
	entries := reqArray(c, raw, "technote.authors")
	authors := make([]Person, 0, len(entries))
	for i, entry := range entries {
		path := indexed("technote.authors", i)
		if entry.Kind() != settings.KindTable {
			c.violate(path, "expected a table, got %s", entry.Kind())
			continue
		}
		authors = append(authors, n.person(c, entry, path))
	}
	return authors
}

func (n *Normalizer) contributors(c *collector, technote settings.Value) []Contributor {
	raw, ok := technote.Get("contributors")
	if !ok {
		return nil
	}
	entries := reqArray(c, raw, "technote.contributors")
	contributors := make([]Contributor, 0, len(entries))
	for i, entry := range entries {
		path := indexed("technote.contributors", i)
		if entry.Kind() != settings.KindTable {
			c.violate(path, "expected a table, got %s", entry.Kind())
			continue
		}
		contributor := Contributor{
			Person: n.person(c, entry, path),
			Note:   optString(c, entry, "note", path+".note"),
		}
		if raw := optString(c, entry, "role", path+".role"); raw != "" {
			role, ok := ParseRole(raw)
			if !ok {
				c.violate(path+".role", "unknown role %q: accepted values are %s", raw, joinRoles())
			}
			contributor.Role = role
		}
		contributors = append(contributors, contributor)
	}
	return contributors
}

// person validates one author or contributor table. A structured name
// with both given and family components is mandatory; there is no
// single-string name fallback.
func (n *Normalizer) person(c *collector, entry settings.Value, path string) Person {
	person := Person{
		InternalID: optString(c, entry, "internal_id", path+".internal_id"),
	}

	name, ok := entry.Get("name")
	if !ok {
		c.violate(path+".name", "a structured name with given and family components is required")
	} else if name.Kind() != settings.KindTable {
		c.violate(path+".name", "expected a table with given and family keys, got %s", name.Kind())
	} else {
		given := collapseWhitespace(optString(c, name, "given", path+".name.given"))
		family := collapseWhitespace(optString(c, name, "family", path+".name.family"))
		if given == "" || family == "" {
			c.violate(path+".name", "both given and family name components are required")
		}
		person.Name = PersonName{Given: given, Family: family}
	}

	if email := optString(c, entry, "email", path+".email"); email != "" {
		if parsed, err := mail.ParseAddress(email); err != nil || parsed.Address != email {
			c.violate(path+".email", "%q is not a valid email address", email)
		}
		person.Email = email
	}

	if orcid := optString(c, entry, "orcid", path+".orcid"); orcid != "" {
		if err := ValidateORCIDURL(orcid); err != nil {
			c.violate(path+".orcid", "%s", err.Error())
		}
		person.ORCID = orcid
	}

	if raw, ok := entry.Get("affiliations"); ok {
		entries := reqArray(c, raw, path+".affiliations")
		for i, affiliation := range entries {
			affPath := indexed(path+".affiliations", i)
			if affiliation.Kind() != settings.KindTable {
				c.violate(affPath, "expected a table, got %s", affiliation.Kind())
				continue
			}
			if org := n.organization(c, affiliation, affPath); org != nil {
				person.Affiliations = append(person.Affiliations, *org)
			}
		}
	}
	return person
}

// organization validates an affiliation or publisher table. At least
// one of name, ror, or internal_id must identify the organization.
func (n *Normalizer) organization(c *collector, entry settings.Value, path string) *Organization {
	if entry.Kind() != settings.KindTable {
		c.violate(path, "expected a table, got %s", entry.Kind())
		return nil
	}
	org := &Organization{
		Name:       collapseWhitespace(optString(c, entry, "name", path+".name")),
		InternalID: optString(c, entry, "internal_id", path+".internal_id"),
		Address:    optString(c, entry, "address", path+".address"),
		URL:        optURL(c, entry, "url", path+".url"),
	}
	if ror := optString(c, entry, "ror", path+".ror"); ror != "" {
		if err := ValidateRORURL(ror); err != nil {
			c.violate(path+".ror", "%s", err.Error())
		}
		org.ROR = ror
	}
	if org.Name == "" && org.ROR == "" && org.InternalID == "" {
		c.violate(path, "an organization must have a name, ror, or internal_id")
	}
	return org
}

func (n *Normalizer) status(c *collector, entry settings.Value, path string) *Status {
	if entry.Kind() != settings.KindTable {
		c.violate(path, "expected a table, got %s", entry.Kind())
		return nil
	}
	status := &Status{
		Note: optString(c, entry, "note", path+".note"),
	}

	// state is required whenever the status table is present at all.
	raw, ok := entry.Get("state")
	if !ok {
		c.violate(path+".state", "state is required when [technote.status] is present: accepted values are %s", joinStates())
	} else if value, isStr := raw.AsString(); !isStr {
		c.violate(path+".state", "expected a string, got %s", raw.Kind())
	} else if state, known := ParseState(value); !known {
		c.violate(path+".state", "unknown state %q: accepted values are %s", value, joinStates())
	} else {
		status.State = state
	}

	if raw, ok := entry.Get("superseding_urls"); ok {
		entries := reqArray(c, raw, path+".superseding_urls")
		for i, link := range entries {
			linkPath := indexed(path+".superseding_urls", i)
			if link.Kind() != settings.KindTable {
				c.violate(linkPath, "expected a table, got %s", link.Kind())
				continue
			}
			linkURL := optURL(c, link, "url", linkPath+".url")
			if linkURL == "" {
				c.violate(linkPath+".url", "url is required")
				continue
			}
			status.SupersedingLinks = append(status.SupersedingLinks, Link{
				URL:   linkURL,
				Title: optString(c, link, "title", linkPath+".title"),
			})
		}
	}
	return status
}

// license validates the [technote.license] table. An unknown SPDX ID is
// downgraded to a warning: the SPDX registry evolves independently of
// the embedded table, and the literal ID is kept unchanged.
func (n *Normalizer) license(c *collector, entry settings.Value, path string) *License {
	if entry.Kind() != settings.KindTable {
		c.violate(path, "expected a table, got %s", entry.Kind())
		return nil
	}
	id := optString(c, entry, "id", path+".id")
	if id == "" {
		c.violate(path+".id", "an SPDX license id is required")
		return nil
	}
	licenses, err := LoadLicenses()
	if err != nil {
		c.warn(path+".id", "SPDX license database unavailable: %s", err.Error())
	} else if !licenses.Contains(id) {
		c.warn(path+".id", "%q is not a known SPDX license identifier", id)
	}
	return &License{ID: id}
}

// optString reads an optional string key from a table, reporting a
// violation on a type mismatch. Absent keys return "".
func optString(c *collector, table settings.Value, key, path string) string {
	raw, ok := table.Get(key)
	if !ok {
		return ""
	}
	value, isStr := raw.AsString()
	if !isStr {
		c.violate(path, "expected a string, got %s", raw.Kind())
		return ""
	}
	return value
}

// optURL reads an optional string key that must be an absolute http(s)
// URL when present.
func optURL(c *collector, table settings.Value, key, path string) string {
	value := optString(c, table, key, path)
	if value == "" {
		return ""
	}
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		c.violate(path, "%q is not an absolute http(s) URL", value)
		return ""
	}
	return value
}

// optTime reads an optional timestamp key, accepting both bare calendar
// dates and datetimes with an offset, normalized to UTC.
func optTime(c *collector, table settings.Value, key, path string) *time.Time {
	raw, ok := table.Get(key)
	if !ok {
		return nil
	}
	value, isTime := raw.AsTime()
	if !isTime {
		c.violate(path, "expected a date or datetime, got %s", raw.Kind())
		return nil
	}
	utc := value.UTC()
	return &utc
}

func reqArray(c *collector, raw settings.Value, path string) []settings.Value {
	entries, ok := raw.AsArray()
	if !ok {
		c.violate(path, "expected an array of tables, got %s", raw.Kind())
		return nil
	}
	return entries
}

func indexed(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func joinStates() string {
	parts := make([]string, 0, len(States()))
	for _, s := range States() {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

func joinRoles() string {
	parts := make([]string, 0, len(Roles()))
	for _, r := range Roles() {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ", ")
}
