package projection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docforge/technote/metadata"
)

func TestBuildTemplateContext_ComposesProjections(t *testing.T) {
	meta := sampleMetadata()
	ctx := BuildTemplateContext(meta)

	require.Equal(t, "Metadata test document", ctx.Title)
	require.Equal(t, meta.AbstractPlain, ctx.Abstract)
	require.Equal(t, "Vera Rubin, Kent Ford", ctx.AuthorLine)
	require.Equal(t, "2023-09-01", ctx.DateCreatedISO)
	require.Equal(t, "2023-09-19", ctx.DateUpdatedISO)
	require.Equal(t, "2023-09-01T00:00:00Z", ctx.DatetimeCreatedISO)
	require.Equal(t, "2023-09-19T00:00:00Z", ctx.DatetimeUpdatedISO)

	require.Equal(t, "https://github.com/example/test-000", ctx.SourceURL)
	require.Equal(t, "example/test-000", ctx.RepoSlug)
	require.Equal(t, "https://github.com/example/test-000/blob/main/index.md", ctx.EditURL)

	require.Equal(t, BuildCitation(meta), ctx.Citation)
	require.Equal(t, BuildOpenGraph(meta), ctx.OpenGraph)
	require.Equal(t, ctx.Citation.HTML(), ctx.HighwireTags)
	require.Equal(t, ctx.OpenGraph.HTML(), ctx.OpenGraphTags)
	require.Same(t, meta, ctx.Metadata)
}

func TestBuildTemplateContext_NonGitHubRepo_HasNoSlug(t *testing.T) {
	meta := sampleMetadata()
	meta.SourceRepository = &metadata.SourceRepository{
		URL:    "https://git.example.org/docs/test-000",
		Branch: "main",
		Path:   "index.md",
	}
	ctx := BuildTemplateContext(meta)

	require.Empty(t, ctx.RepoSlug)
	require.Equal(t, "https://git.example.org/docs/test-000/blob/main/index.md", ctx.EditURL)
}

func TestTemplateContext_Flatten_ExposesStableKeys(t *testing.T) {
	flat := BuildTemplateContext(sampleMetadata()).Flatten()

	for _, key := range []string{
		"title", "abstract", "author_line",
		"date_created_iso", "date_updated_iso",
		"datetime_created_iso", "datetime_updated_iso",
		"version", "canonical_url",
		"source_url", "source_branch", "source_commit",
		"repo_slug", "edit_url",
		"citation", "opengraph", "microformats",
		"highwire_metadata_tags", "opengraph_metadata_tags",
		"metadata",
	} {
		require.Contains(t, flat, key)
	}
	require.Equal(t, "Metadata test document", flat["title"])
}

func TestBuildTemplateContext_DoesNotMutateMetadata(t *testing.T) {
	meta := sampleMetadata()
	snapshot := *meta

	_ = BuildTemplateContext(meta)
	_ = BuildCitation(meta)
	_ = BuildOpenGraph(meta)

	require.Equal(t, snapshot.Title, meta.Title)
	require.Equal(t, snapshot.DateUpdated, meta.DateUpdated)
	require.Len(t, meta.Authors, len(snapshot.Authors))
}
