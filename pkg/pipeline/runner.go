package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/keymapfmt/pkg/cache"
	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	pkgio "github.com/matzehuels/keymapfmt/pkg/io"
	"github.com/matzehuels/keymapfmt/pkg/keymap"
	"github.com/matzehuels/keymapfmt/pkg/observability"
	"github.com/matzehuels/keymapfmt/pkg/syntax"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one Runner with different options. A failing cache
// is logged and otherwise ignored; it never fails a run.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, src string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{}

	// Stage 1+2: Parse and build
	km, stats, err := r.build(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	result.Keymap = km
	result.Stats = stats

	logger.Info("built keymap",
		"layers", stats.Layers,
		"rows", stats.Rows,
		"cols", stats.Cols,
		"duration", stats.ParseTime+stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.renderCached(ctx, cache.Hash([]byte(src)), km, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheHit = hit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse validates src and parses it. Syntax errors come back as
// SYNTAX_ERROR errors wrapping a *syntax.SyntaxError.
func (r *Runner) Parse(ctx context.Context, src string) (*syntax.Program, error) {
	if err := kerrors.ValidateSource(src); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(src))
	start := time.Now()

	p, err := syntax.Parse(src)
	if err != nil {
		hooks.OnParseComplete(ctx, 0, time.Since(start), err)
		r.Logger.Debug("parse failed", "error", err)
		return nil, kerrors.Wrap(kerrors.ErrCodeSyntax, err, "parse keymap")
	}
	hooks.OnParseComplete(ctx, len(p.Blocks), time.Since(start), nil)
	return p, nil
}

// Build parses src and normalizes its layers. Built keymaps are cached by
// source and grid settings.
func (r *Runner) Build(ctx context.Context, src string, opts Options) (*keymap.Keymap, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	km, _, err := r.build(ctx, src, opts)
	return km, err
}

func (r *Runner) build(ctx context.Context, src string, opts Options) (*keymap.Keymap, Stats, error) {
	var stats Stats
	key := r.Keyer.KeymapKey(cache.Hash([]byte(src)), opts.KeymapKeyOpts())

	if data, ok := r.lookup(ctx, key, "keymap"); ok {
		if km, err := pkgio.ReadJSON(bytes.NewReader(data)); err == nil {
			return km, statsFor(km, stats), nil
		}
		// Undecodable entry: fall through and rebuild.
	}

	parseStart := time.Now()
	p, err := r.Parse(ctx, src)
	if err != nil {
		return nil, stats, err
	}
	stats.ParseTime = time.Since(parseStart)

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(p.Blocks))
	buildStart := time.Now()
	km, err := keymap.Build(p, opts.GridOptions())
	stats.BuildTime = time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, stats.BuildTime, err)
		return nil, stats, err
	}
	hooks.OnBuildComplete(ctx, km.Rows(), km.MaxCols(), stats.BuildTime, nil)

	var buf bytes.Buffer
	if err := pkgio.WriteJSON(km, &buf); err == nil {
		r.store(ctx, key, "keymap", buf.Bytes(), cache.TTLKeymap)
	}

	return km, statsFor(km, stats), nil
}

// Render generates artifacts for an already built keymap. Results are cached
// under the hash of the keymap's JSON encoding.
func (r *Runner) Render(ctx context.Context, km *keymap.Keymap, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(km, &buf); err != nil {
		return nil, fmt.Errorf("hash keymap: %w", err)
	}
	artifacts, _, err := r.renderCached(ctx, cache.Hash(buf.Bytes()), km, opts)
	return artifacts, err
}

// renderCached returns every requested artifact from the cache, or renders
// all of them and caches each one.
func (r *Runner) renderCached(ctx context.Context, hash string, km *keymap.Keymap, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, ok := r.lookup(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(f)), "artifact:"+f)
		if !ok {
			break
		}
		artifacts[f] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, km, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for f, data := range rendered {
		r.store(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(f)), "artifact:"+f, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

func (r *Runner) lookup(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	r.Logger.Debug("cache hit", "key", key)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func statsFor(km *keymap.Keymap, s Stats) Stats {
	s.Layers = len(km.Layers)
	s.Rows = km.Rows()
	s.Cols = km.MaxCols()
	return s
}
