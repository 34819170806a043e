package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/docforge/technote/metadata"
)

func TestBuildOpenGraph_MapsFields(t *testing.T) {
	og := BuildOpenGraph(sampleMetadata())

	require.Equal(t, "Metadata test document", og.Title)
	require.Equal(t, "First paragraph of abstract.\n\nSecond paragraph of abstract.", og.Description)
	require.Equal(t, "https://test-000.example.com/", og.URL)
	require.Equal(t, "article", og.Type)
	require.Equal(t, []string{"Vera Rubin", "Kent Ford"}, og.Authors)
	require.Equal(t, "2023-09-01T00:00:00Z", og.PublishedTime)
	require.Equal(t, "2023-09-19T00:00:00Z", og.ModifiedTime)
}

func TestBuildOpenGraph_OnlyDateUpdated_StandsInAsPublished(t *testing.T) {
	meta := &metadata.TechnoteMetadata{
		Title:       "Minimal",
		DateUpdated: time.Date(2023, 9, 19, 0, 0, 0, 0, time.UTC),
	}
	og := BuildOpenGraph(meta)

	require.Equal(t, "2023-09-19T00:00:00Z", og.PublishedTime)
	require.Empty(t, og.ModifiedTime)
}

func TestOpenGraph_MetaTags_UsePropertyAttribute(t *testing.T) {
	html := BuildOpenGraph(sampleMetadata()).HTML()

	require.Contains(t, html, `<meta property="og:title" content="Metadata test document">`)
	require.Contains(t, html, `<meta property="og:type" content="article">`)
	require.Contains(t, html, `<meta property="og:article:author" content="Vera Rubin">`)
	require.Contains(t, html, `<meta property="og:article:published_time" content="2023-09-01T00:00:00Z">`)
	require.NotContains(t, html, `name="og:`)
}

func TestMicroformats_StaticRoleMapping(t *testing.T) {
	mf := Microformats()

	require.Equal(t, "h-entry", mf[RoleEntryContainer])
	require.Equal(t, "e-content", mf[RoleContentContainer])
	require.Equal(t, "p-summary", mf[RoleSummary])
	require.Equal(t, "p-author", mf[RoleAuthor])
	require.Equal(t, "dt-updated", mf[RoleDateUpdated])
	require.Equal(t, "dt-published", mf[RoleDatePublished])
	require.Len(t, mf, 6)
}
