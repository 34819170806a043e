// Package technote turns a technote.toml settings document into a
// validated metadata record and its standards-compliant projections.
//
// The pipeline is strictly sequential: settings parse, metadata
// normalization, projection building. Each stage owns its input and no
// stage retains state across builds; a Pipeline value is safe to reuse
// for many documents in one process.
package technote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/docforge/technote/content"
	"github.com/docforge/technote/gitinfo"
	"github.com/docforge/technote/internal/logfields"
	"github.com/docforge/technote/internal/metrics"
	"github.com/docforge/technote/internal/observability"
	"github.com/docforge/technote/metadata"
	"github.com/docforge/technote/projection"
	"github.com/docforge/technote/settings"
)

// SettingsFilename is the settings document read from a technote
// directory.
const SettingsFilename = "technote.toml"

// rootDocumentCandidates are checked in order when locating the root
// content document of a technote directory.
var rootDocumentCandidates = []string{"index.md", "index.markdown"}

// Pipeline runs the settings-to-projections pipeline.
type Pipeline struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = recorder }
}

// WithClock overrides the build clock, used to default date_updated.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New builds a Pipeline with the default logger, a no-op metrics
// recorder, and the real clock.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build is the result of one pipeline run. The metadata record is
// immutable once the Build is returned.
type Build struct {
	// ID correlates log lines and metrics for this build.
	ID string

	Metadata *metadata.TechnoteMetadata
	Warnings []metadata.Warning
	Context  projection.TemplateContext
}

// Run executes the pipeline over an in-memory settings document. No
// filesystem discovery happens: the title and abstract stay as the
// settings provide them, and no source repository facts are filled in.
func (p *Pipeline) Run(ctx context.Context, tomlSrc []byte) (*Build, error) {
	buildID := uuid.NewString()
	ctx = observability.WithBuildID(ctx, buildID)
	p.recorder.BuildStarted()
	started := p.now()

	meta, warnings, err := p.normalize(ctx, tomlSrc)
	if err != nil {
		return nil, err
	}
	build := p.finish(ctx, buildID, meta, warnings, started)
	return build, nil
}

// Load reads a technote directory: the settings document, the root
// content document, and the enclosing git repository. Content-derived
// title and abstract fill what the settings left empty; git discovery
// fills missing source repository facts.
func (p *Pipeline) Load(ctx context.Context, dir string) (*Build, error) {
	// A .env beside the technote is a convenience for CI overrides;
	// its absence is not interesting.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	buildID := uuid.NewString()
	ctx = observability.WithBuildID(ctx, buildID)
	p.recorder.BuildStarted()
	started := p.now()

	tomlSrc, err := os.ReadFile(filepath.Join(dir, SettingsFilename))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", SettingsFilename, err)
	}

	meta, warnings, err := p.normalize(ctx, tomlSrc)
	if err != nil {
		return nil, err
	}

	if err := p.supplementFromContent(ctx, dir, meta); err != nil {
		return nil, err
	}
	p.supplementFromGit(ctx, dir, meta)

	build := p.finish(ctx, buildID, meta, warnings, started)
	return build, nil
}

func (p *Pipeline) normalize(ctx context.Context, tomlSrc []byte) (*metadata.TechnoteMetadata, []metadata.Warning, error) {
	parseCtx := observability.WithStage(ctx, "parse")
	tree, err := settings.Parse(tomlSrc)
	if err != nil {
		p.recorder.ParseFailure()
		observability.ErrorContext(parseCtx, "settings parse failed", logfields.Error(err))
		return nil, nil, err
	}

	normCtx := observability.WithStage(ctx, "normalize")
	normalizer := metadata.NewNormalizer(
		metadata.WithClock(p.now),
		metadata.WithLogger(p.logger),
	)
	meta, warnings, err := normalizer.Normalize(tree)
	if err != nil {
		var verr *metadata.ValidationError
		if errors.As(err, &verr) {
			p.recorder.ValidationFailure(len(verr.Violations))
		}
		observability.ErrorContext(normCtx, "settings validation failed", logfields.Error(err))
		return nil, nil, err
	}
	for _, w := range warnings {
		if w.Field == "technote.license.id" {
			p.recorder.LicenseWarning()
		}
	}
	return meta, warnings, nil
}

// supplementFromContent fills the title and abstract from the root
// content document. The settings title always wins when present.
func (p *Pipeline) supplementFromContent(ctx context.Context, dir string, meta *metadata.TechnoteMetadata) error {
	ctx = observability.WithStage(ctx, "content")
	name, src, err := readRootDocument(dir)
	if err != nil {
		return err
	}
	if src == nil {
		observability.DebugContext(ctx, "no root content document found")
		return nil
	}

	doc, err := content.Extract(src)
	if err != nil {
		return fmt.Errorf("extracting content metadata from %s: %w", name, err)
	}
	if meta.Title == "" {
		meta.Title = doc.Title
	}
	meta.AbstractPlain = doc.Abstract

	if meta.SourceRepository != nil && meta.SourceRepository.Path == "" {
		meta.SourceRepository.Path = name
	}
	return nil
}

func readRootDocument(dir string) (name string, src []byte, err error) {
	for _, candidate := range rootDocumentCandidates {
		data, err := os.ReadFile(filepath.Join(dir, candidate))
		if err == nil {
			return candidate, data, nil
		}
		if !os.IsNotExist(err) {
			return "", nil, fmt.Errorf("reading %s: %w", candidate, err)
		}
	}
	return "", nil, nil
}

// supplementFromGit fills source repository facts from the enclosing
// git checkout. Discovery failures are logged, never fatal: metadata
// from the settings file is already complete enough to build with.
func (p *Pipeline) supplementFromGit(ctx context.Context, dir string, meta *metadata.TechnoteMetadata) {
	ctx = observability.WithStage(ctx, "gitinfo")
	info, err := gitinfo.Discover(dir)
	if err != nil {
		observability.WarnContext(ctx, "git discovery failed", logfields.Error(err))
		return
	}
	if info == nil {
		return
	}

	if meta.SourceRepository == nil {
		if info.URL == "" {
			return
		}
		branch := info.Branch
		if branch == "" {
			branch = "main"
		}
		meta.SourceRepository = &metadata.SourceRepository{URL: info.URL, Branch: branch}
	}
	if meta.SourceRepository.Commit == "" {
		meta.SourceRepository.Commit = info.Commit
	}
}

func (p *Pipeline) finish(ctx context.Context, buildID string, meta *metadata.TechnoteMetadata, warnings []metadata.Warning, started time.Time) *Build {
	ctx = observability.WithTechnoteID(ctx, meta.ID)
	ctx = observability.WithStage(ctx, "project")

	templateContext := projection.BuildTemplateContext(meta)

	elapsed := p.now().Sub(started)
	p.recorder.BuildSucceeded(elapsed)
	observability.InfoContext(ctx, "technote metadata built",
		logfields.Warnings(len(warnings)),
		logfields.DurationMS(float64(elapsed.Milliseconds())))

	return &Build{
		ID:       buildID,
		Metadata: meta,
		Warnings: warnings,
		Context:  templateContext,
	}
}
