package technote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/docforge/technote/metadata"
	"github.com/docforge/technote/settings"
)

const sampleTOML = `
[technote]
id = "SQR-000"
title = "The Technical Note Publishing Platform"
date_updated = 2015-11-23
canonical_url = "https://sqr-000.example.com/"
source_repository_url = "https://github.com/example/sqr-000"
version = "1.0.0"
license = { id = "CC-BY-4.0" }

[[technote.authors]]
name = { given = "Vera", family = "Rubin" }
orcid = "https://orcid.org/0000-0002-1825-0097"
affiliations = [
    { name = "Example Observatory", ror = "https://ror.org/048g3cy84" }
]
`

func quietPipeline(opts ...Option) *Pipeline {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(append([]Option{WithLogger(discard)}, opts...)...)
}

func TestRun_SampleDocument_ProducesBuild(t *testing.T) {
	build, err := quietPipeline().Run(context.Background(), []byte(sampleTOML))
	require.NoError(t, err)

	require.NotEmpty(t, build.ID)
	require.Equal(t, "SQR-000", build.Metadata.ID)
	require.Empty(t, build.Warnings)

	require.Equal(t, "The Technical Note Publishing Platform", build.Context.Title)
	require.Equal(t, "Vera Rubin", build.Context.AuthorLine)
	require.Equal(t, "example/sqr-000", build.Context.RepoSlug)
	require.Contains(t, build.Context.HighwireTags, `content="Rubin, Vera"`)
}

func TestRun_MalformedTOML_SurfacesParseError(t *testing.T) {
	_, err := quietPipeline().Run(context.Background(), []byte("[technote\nid = 1"))
	require.Error(t, err)

	var perr *settings.ParseError
	require.True(t, errors.As(err, &perr))
}

func TestRun_InvalidMetadata_SurfacesValidationError(t *testing.T) {
	src := `
[technote.status]
state = "active"
`
	_, err := quietPipeline().Run(context.Background(), []byte(src))
	require.Error(t, err)

	var verr *metadata.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, err.Error(), "technote.status.state")
}

func TestRun_UnknownLicense_IsWarningNotError(t *testing.T) {
	src := `
[technote]
license = { id = "NOT-A-REAL-LICENSE" }
`
	build, err := quietPipeline().Run(context.Background(), []byte(src))
	require.NoError(t, err)

	require.Len(t, build.Warnings, 1)
	require.Equal(t, "NOT-A-REAL-LICENSE", build.Metadata.License.ID)
}

func TestRun_InjectedClock_DefaultsDateUpdated(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := quietPipeline(WithClock(func() time.Time { return now }))

	build, err := p.Run(context.Background(), []byte("[technote]\nid = \"X-1\"\n"))
	require.NoError(t, err)
	require.Equal(t, now, build.Metadata.DateUpdated)
}

func writeTechnoteDir(t *testing.T, tomlSrc, indexSrc string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFilename), []byte(tomlSrc), 0o644))
	if indexSrc != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte(indexSrc), 0o644))
	}
	return dir
}

func TestLoad_ContentSuppliesTitleAndAbstract(t *testing.T) {
	tomlSrc := `
[technote]
id = "TEST-000"
source_repository_url = "https://github.com/example/test-000"

[[technote.authors]]
name = { given = "Vera", family = "Rubin" }
`
	indexSrc := `# Metadata test document

## Abstract

First paragraph of abstract.

Second paragraph of abstract.
`
	dir := writeTechnoteDir(t, tomlSrc, indexSrc)

	build, err := quietPipeline().Load(context.Background(), dir)
	require.NoError(t, err)

	require.Equal(t, "Metadata test document", build.Metadata.Title)
	require.Equal(t, "First paragraph of abstract.\n\nSecond paragraph of abstract.", build.Metadata.AbstractPlain)
	require.Equal(t, build.Metadata.AbstractPlain, build.Context.OpenGraph.Description)

	// The root document becomes the repository path for edit links.
	require.Equal(t, "index.md", build.Metadata.SourceRepository.Path)
	require.Equal(t, "https://github.com/example/test-000/blob/main/index.md", build.Context.EditURL)
}

func TestLoad_SettingsTitleWinsOverContent(t *testing.T) {
	tomlSrc := `
[technote]
title = "Configured title"
`
	dir := writeTechnoteDir(t, tomlSrc, "# Content title\n")

	build, err := quietPipeline().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, "Configured title", build.Metadata.Title)
}

func TestLoad_MissingSettingsFile_Fails(t *testing.T) {
	_, err := quietPipeline().Load(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), SettingsFilename)
}

func TestLoad_MissingRootDocument_IsNotFatal(t *testing.T) {
	dir := writeTechnoteDir(t, "[technote]\ntitle = \"No content\"\n", "")

	build, err := quietPipeline().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, "No content", build.Metadata.Title)
	require.Empty(t, build.Metadata.AbstractPlain)
}

// countingRecorder verifies the pipeline reports metrics events.
type countingRecorder struct {
	started, succeeded, parseFails, validationFails, licenseWarns int
	violations                                                    int
}

func (r *countingRecorder) BuildStarted()                { r.started++ }
func (r *countingRecorder) BuildSucceeded(time.Duration) { r.succeeded++ }
func (r *countingRecorder) ParseFailure()                { r.parseFails++ }
func (r *countingRecorder) ValidationFailure(n int) {
	r.validationFails++
	r.violations += n
}
func (r *countingRecorder) LicenseWarning() { r.licenseWarns++ }

func TestRun_RecordsMetricsEvents(t *testing.T) {
	rec := &countingRecorder{}
	p := quietPipeline(WithRecorder(rec))

	_, err := p.Run(context.Background(), []byte(sampleTOML))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), []byte("[broken"))
	require.Error(t, err)

	_, err = p.Run(context.Background(), []byte("[technote.status]\nstate = \"active\"\n"))
	require.Error(t, err)

	_, err = p.Run(context.Background(), []byte("[technote]\nlicense = { id = \"NOPE\" }\n"))
	require.NoError(t, err)

	require.Equal(t, 4, rec.started)
	require.Equal(t, 2, rec.succeeded)
	require.Equal(t, 1, rec.parseFails)
	require.Equal(t, 1, rec.validationFails)
	require.Equal(t, 1, rec.violations)
	require.Equal(t, 1, rec.licenseWarns)
}
