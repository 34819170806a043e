package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateORCIDURL_CanonicalURLs_Pass(t *testing.T) {
	samples := []string{
		"https://orcid.org/0000-0002-1825-0097",
		"https://orcid.org/0000-0001-5109-3700",
		"https://orcid.org/0000-0002-1694-233X",
	}
	for _, sample := range samples {
		require.NoError(t, ValidateORCIDURL(sample), sample)
	}
}

func TestValidateORCIDURL_BareIdentifier_IsRejectedNotCoerced(t *testing.T) {
	err := ValidateORCIDURL("0000-0002-1825-0097")
	require.Error(t, err)
	require.Contains(t, err.Error(), "absolute")
}

func TestValidateORCIDURL_BadChecksum_Fails(t *testing.T) {
	err := ValidateORCIDURL("https://orcid.org/0000-0002-1825-0099")
	require.Error(t, err)
	require.Contains(t, err.Error(), "checksum")
}

func TestValidateORCIDURL_WrongShapeOrHost_Fails(t *testing.T) {
	samples := []string{
		"https://orcid.org/0001-5109-3700",
		"https://example.com/0000-0002-1825-0097",
		"ftp://orcid.org/0000-0002-1825-0097",
	}
	for _, sample := range samples {
		require.Error(t, ValidateORCIDURL(sample), sample)
	}
}
