// Package pipeline provides the parse → build → render pipeline for keymapfmt.
//
// The CLI and the HTTP server both go through this package, so defaults,
// validation and caching behave the same from every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read the keymap source into a syntax tree
//  2. Build: reduce every key to text and normalize each layer into a grid
//  3. Render: produce the requested outputs (formatted source, SVG, PNG,
//     PDF, JSON, layer graph)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{pipeline.FormatQMK, pipeline.FormatSVG}
//	result, err := runner.Execute(ctx, src, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	formatted := result.Artifacts[pipeline.FormatQMK]
//
// Run individual stages:
//
//	km, err := runner.Build(ctx, src, opts)
//	artifacts, err := runner.Render(ctx, km, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/keymapfmt/pkg/cache"
	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	"github.com/matzehuels/keymapfmt/pkg/format"
	"github.com/matzehuels/keymapfmt/pkg/keymap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatQMK   = "qmk"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatGraph = "graph"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatQMK:   true,
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatGraph: true,
}

// formatOrder lists the formats in the order they are documented.
var formatOrder = []string{FormatQMK, FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraph}

var contentTypes = map[string]string{
	FormatQMK:   "text/plain; charset=utf-8",
	FormatSVG:   "image/svg+xml",
	FormatPNG:   "image/png",
	FormatPDF:   "application/pdf",
	FormatJSON:  "application/json",
	FormatDOT:   "text/vnd.graphviz; charset=utf-8",
	FormatGraph: "image/svg+xml",
}

var extensions = map[string]string{
	FormatQMK:   ".c",
	FormatSVG:   ".svg",
	FormatPNG:   ".png",
	FormatPDF:   ".pdf",
	FormatJSON:  ".json",
	FormatDOT:   ".dot",
	FormatGraph: ".layers.svg",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. The same struct is
// decoded from the CLI config file and from API requests.
//
// Zero is a meaningful value for the grid and printer fields, so SetDefaults
// leaves them alone; start from DefaultOptions to get the documented defaults.
type Options struct {
	// Build options
	ThumbShiftIn   int `toml:"thumb_shift_in" json:"thumb_shift_in"`
	NumberOfThumbs int `toml:"number_of_thumbs" json:"number_of_thumbs"`

	// Format options
	LeftAlign   bool `toml:"left_align" json:"left_align"`
	SplitSpace  int  `toml:"split_space" json:"split_space"`
	AlignLayers bool `toml:"align_layers" json:"align_layers"`

	// Render options
	Formats  []string `toml:"formats" json:"formats,omitempty"`
	Humanize bool     `toml:"humanize" json:"humanize,omitempty"`
	Scale    float64  `toml:"scale" json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	grid := keymap.DefaultGridOptions()
	printer := format.DefaultOptions()
	return Options{
		ThumbShiftIn:   grid.ThumbShiftIn,
		NumberOfThumbs: grid.NumberOfThumbs,
		LeftAlign:      printer.LeftAlign,
		SplitSpace:     printer.SplitSpace,
		AlignLayers:    printer.AlignLayers,
		Formats:        []string{FormatQMK},
		Scale:          DefaultScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Keymap is the normalized keymap.
	Keymap *keymap.Keymap

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Layers     int
	Rows       int
	Cols       int
	ParseTime  time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(f string) error {
	if !ValidFormats[f] {
		return kerrors.New(kerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", f, strings.Join(formatOrder, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ContentType returns the MIME type of a format's artifact.
func ContentType(f string) string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension, including the dot, used when an
// artifact is written next to its source.
func Extension(f string) string {
	if ext, ok := extensions[f]; ok {
		return ext
	}
	return "." + f
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills the fields that have no meaningful zero value.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatQMK}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every option. Format errors carry INVALID_FORMAT, the
// rest INVALID_OPTIONS.
func (o *Options) Validate() error {
	if err := o.GridOptions().Validate(); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidOptions, err, "invalid options")
	}
	if err := o.FormatOptions().Validate(); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidOptions, err, "invalid options")
	}
	if o.Scale <= 0 {
		return kerrors.New(kerrors.ErrCodeInvalidOptions, "invalid options: scale must be positive, got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults and validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// GridOptions returns the build-stage settings.
func (o *Options) GridOptions() keymap.GridOptions {
	return keymap.GridOptions{
		ThumbShiftIn:   o.ThumbShiftIn,
		NumberOfThumbs: o.NumberOfThumbs,
	}
}

// FormatOptions returns the printer settings.
func (o *Options) FormatOptions() format.Options {
	return format.Options{
		LeftAlign:   o.LeftAlign,
		SplitSpace:  o.SplitSpace,
		AlignLayers: o.AlignLayers,
	}
}

// KeymapKeyOpts returns cache key options for a built keymap.
func (o *Options) KeymapKeyOpts() cache.KeymapKeyOpts {
	return cache.KeymapKeyOpts{
		ThumbShiftIn:   o.ThumbShiftIn,
		NumberOfThumbs: o.NumberOfThumbs,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(f string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:         f,
		ThumbShiftIn:   o.ThumbShiftIn,
		NumberOfThumbs: o.NumberOfThumbs,
		LeftAlign:      o.LeftAlign,
		SplitSpace:     o.SplitSpace,
		AlignLayers:    o.AlignLayers,
		Humanize:       o.Humanize,
		Scale:          o.Scale,
	}
}
