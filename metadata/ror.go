package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rorPattern matches the canonical ROR URL. The identifier is a zero,
// six Crockford base32 characters, and a two-digit checksum.
var rorPattern = regexp.MustCompile(`^https://ror\.org/(0[0-9a-hj-km-np-tv-z]{6}[0-9]{2})$`)

// crockfordAlphabet is the Crockford base32 alphabet: i, l, o, and u
// are excluded.
const crockfordAlphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// ValidateRORURL checks that a value is the canonical absolute URI form
// of a ROR identifier, e.g. https://ror.org/048g3cy84. Bare
// identifiers and non-ror.org hosts are rejected.
func ValidateRORURL(value string) error {
	m := rorPattern.FindStringSubmatch(strings.ToLower(value))
	if m == nil {
		return fmt.Errorf("expected a ROR URL (https://ror.org/...), got %q", value)
	}
	if err := verifyRORChecksum(m[1]); err != nil {
		return fmt.Errorf("ROR identifier checksum failed for %q", value)
	}
	return nil
}

// verifyRORChecksum checks the two trailing decimal digits of a ROR
// identifier using ISO 7064 mod 97-10 over the Crockford-decoded body.
func verifyRORChecksum(identifier string) error {
	body := identifier[:len(identifier)-2]
	check, err := strconv.Atoi(identifier[len(identifier)-2:])
	if err != nil {
		return err
	}
	var value int64
	for _, r := range body {
		idx := strings.IndexRune(crockfordAlphabet, r)
		if idx < 0 {
			return fmt.Errorf("invalid base32 character %q", r)
		}
		value = value*32 + int64(idx)
	}
	if 98-(value*100)%97 != int64(check) {
		return fmt.Errorf("checksum mismatch")
	}
	return nil
}
