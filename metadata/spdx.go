package metadata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

// licensesJSON is a mirror of the SPDX license list
// (https://github.com/spdx/license-list-data), reduced to the fields
// this package consumes.
//
//go:embed licenses.json
var licensesJSON []byte

// SPDXLicense is one entry of the embedded SPDX license list.
type SPDXLicense struct {
	Name          string   `json:"name"`
	LicenseID     string   `json:"licenseId"`
	SeeAlso       []string `json:"seeAlso"`
	IsOSIApproved bool     `json:"isOsiApproved"`
}

// Licenses is the SPDX license database keyed by license ID.
type Licenses struct {
	byID map[string]SPDXLicense
}

var (
	licensesOnce sync.Once
	licensesDB   *Licenses
	licensesErr  error
)

// LoadLicenses returns the embedded SPDX license database. The database
// is decoded once per process.
func LoadLicenses() (*Licenses, error) {
	licensesOnce.Do(func() {
		var file struct {
			ListVersion string        `json:"licenseListVersion"`
			Licenses    []SPDXLicense `json:"licenses"`
		}
		if err := json.Unmarshal(licensesJSON, &file); err != nil {
			licensesErr = fmt.Errorf("decoding embedded SPDX license list: %w", err)
			return
		}
		byID := make(map[string]SPDXLicense, len(file.Licenses))
		for _, lic := range file.Licenses {
			byID[lic.LicenseID] = lic
		}
		licensesDB = &Licenses{byID: byID}
	})
	return licensesDB, licensesErr
}

// Get returns the license entry for an SPDX ID.
func (l *Licenses) Get(id string) (SPDXLicense, bool) {
	lic, ok := l.byID[id]
	return lic, ok
}

// Contains reports whether an SPDX ID is in the database.
func (l *Licenses) Contains(id string) bool {
	_, ok := l.byID[id]
	return ok
}
