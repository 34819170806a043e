// Package metadata defines the canonical technote metadata record and
// the normalizer that builds it from a parsed settings tree.
package metadata

import (
	"fmt"
	"time"
)

// PersonName is a structured personal name. Both components are
// required; there is no free-form single-string fallback.
type PersonName struct {
	Given  string
	Family string
}

// PlainText renders the name in western display order, "Given Family".
func (n PersonName) PlainText() string {
	return fmt.Sprintf("%s %s", n.Given, n.Family)
}

// Inverted renders the name in citation order, "Family, Given".
func (n PersonName) Inverted() string {
	return fmt.Sprintf("%s, %s", n.Family, n.Given)
}

// Organization describes an institution, either as a person's
// affiliation or as the publisher of the technote series.
type Organization struct {
	Name       string
	InternalID string
	ROR        string
	Address    string
	URL        string
}

// Person describes an author or contributor.
type Person struct {
	Name         PersonName
	InternalID   string
	Email        string
	ORCID        string
	Affiliations []Organization
}

// Contributor is a person with a non-authorship role.
type Contributor struct {
	Person
	Role Role
	Note string
}

// Link is a titled URL, used for supersession references.
type Link struct {
	URL   string
	Title string
}

// State is the lifecycle state of a technote.
type State string

const (
	StateDraft      State = "draft"
	StateStable     State = "stable"
	StateDeprecated State = "deprecated"
	StateOther      State = "other"
)

// States lists the accepted state vocabulary in canonical order.
func States() []State {
	return []State{StateDraft, StateStable, StateDeprecated, StateOther}
}

// ParseState resolves a raw state string against the vocabulary.
func ParseState(raw string) (State, bool) {
	for _, s := range States() {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// Status describes the technote's content lifecycle. Note should be
// populated when State is StateOther, though that is a convention
// rather than a structural requirement.
type Status struct {
	State            State
	Note             string
	SupersedingLinks []Link
}

// License identifies the content license by SPDX ID.
type License struct {
	ID string
}

// SourceRepository describes where the technote's source lives.
type SourceRepository struct {
	URL string

	// Path is the technote root document's path relative to the
	// repository root, when known.
	Path string

	Branch string
	Commit string
}

// TechnoteMetadata is the canonical metadata record for one technote.
// It is constructed once per build by the Normalizer and is immutable
// afterwards; projection builders only read it.
type TechnoteMetadata struct {
	ID           string
	SeriesID     string
	Organization *Organization
	Title        string
	DateCreated  *time.Time
	DateUpdated  time.Time
	Version      string
	DOI          string
	CanonicalURL string

	SourceRepository *SourceRepository

	Authors      []Person
	Contributors []Contributor
	Status       *Status
	License      *License

	// AbstractPlain is the technote's abstract with markup removed.
	// It is supplied by content extraction, not by the settings file.
	AbstractPlain string
}
