package metadata

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// orcidPattern matches the 16-character ORCID identifier, e.g.
// 0000-0002-1694-233X.
var orcidPattern = regexp.MustCompile(`^([0-9]{4}-){3}[0-9]{3}[0-9X]$`)

// ValidateORCIDURL checks that a value is the canonical absolute URI
// form of an ORCID, e.g. https://orcid.org/0000-0002-1825-0097. Bare
// identifiers are rejected rather than coerced: downstream citation
// metadata requires the URI form, and coercing risks publishing a
// wrong identifier.
func ValidateORCIDURL(value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("expected an absolute ORCID URL (https://orcid.org/...), got %q", value)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("expected an https ORCID URL, got %q", value)
	}
	if !strings.EqualFold(u.Host, "orcid.org") {
		return fmt.Errorf("expected an orcid.org URL, got %q", value)
	}
	identifier := strings.Trim(u.Path, "/")
	if !orcidPattern.MatchString(identifier) {
		return fmt.Errorf("%q is not an ORCID identifier", value)
	}
	if !verifyORCIDChecksum(identifier) {
		return fmt.Errorf("ORCID identifier checksum failed for %q", value)
	}
	return nil
}

// verifyORCIDChecksum checks the trailing check digit of an ORCID
// identifier using the ISO 7064 11,2 algorithm. The final character
// participates in the sum with X standing for ten.
func verifyORCIDChecksum(identifier string) bool {
	total := 0
	for _, r := range identifier {
		var digit int
		switch {
		case r >= '0' && r <= '9':
			digit = int(r - '0')
		case r == 'X':
			digit = 10
		default:
			continue
		}
		total = (total + digit) * 2
	}
	return (12-total%11)%11 == 10
}
