package cli

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/keymapfmt/internal/server"
	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	"github.com/matzehuels/keymapfmt/pkg/pipeline"
)

const configFileName = "config.toml"

// config is the layout of the TOML config file. Pipeline options sit at the
// top level:
//
//	thumb_shift_in = 1
//	split_space = 3
//	humanize = true
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":9000"
type config struct {
	pipeline.Options

	Cache  cacheConfig   `toml:"cache"`
	Server server.Config `toml:"server"`
}

type cacheConfig struct {
	Disabled bool   `toml:"disabled"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

func defaultConfig() *config {
	return &config{
		Options: pipeline.DefaultOptions(),
		Cache:   cacheConfig{Prefix: appName + ":"},
	}
}

// loadConfig reads the config file at path on top of the defaults. An empty
// path means the default location, where a missing file is not an error.
// Unknown keys are logged and ignored.
func loadConfig(path string, logger *log.Logger) (*config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !explicit {
				return defaultConfig(), nil
			}
			return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidOptions, err, "config file %s", path)
	}

	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "file", path, "key", key.String())
	}
	logger.Debug("loaded config", "file", path)
	return cfg, nil
}

// =============================================================================
// Option Flags
// =============================================================================

// optionFlag copies one flag-bound field from src to dst.
type optionFlag struct {
	name  string
	apply func(dst, src *pipeline.Options)
}

var optionFlags = []optionFlag{
	{"thumb-shift-in", func(d, s *pipeline.Options) { d.ThumbShiftIn = s.ThumbShiftIn }},
	{"thumbs", func(d, s *pipeline.Options) { d.NumberOfThumbs = s.NumberOfThumbs }},
	{"left-align", func(d, s *pipeline.Options) { d.LeftAlign = s.LeftAlign }},
	{"split-space", func(d, s *pipeline.Options) { d.SplitSpace = s.SplitSpace }},
	{"align-layers", func(d, s *pipeline.Options) { d.AlignLayers = s.AlignLayers }},
	{"humanize", func(d, s *pipeline.Options) { d.Humanize = s.Humanize }},
	{"scale", func(d, s *pipeline.Options) { d.Scale = s.Scale }},
}

// addGridFlags registers the build-stage flags, bound to o.
func addGridFlags(cmd *cobra.Command, o *pipeline.Options) {
	cmd.Flags().IntVar(&o.ThumbShiftIn, "thumb-shift-in", o.ThumbShiftIn, "gap pairs inserted at the centre of non-thumb rows")
	cmd.Flags().IntVar(&o.NumberOfThumbs, "thumbs", o.NumberOfThumbs, "number of trailing thumb rows")
}

// addFormatFlags registers the printer flags, bound to o.
func addFormatFlags(cmd *cobra.Command, o *pipeline.Options) {
	cmd.Flags().BoolVar(&o.LeftAlign, "left-align", o.LeftAlign, "left-justify keys on the left half too")
	cmd.Flags().IntVar(&o.SplitSpace, "split-space", o.SplitSpace, "blank columns between the two halves")
	cmd.Flags().BoolVar(&o.AlignLayers, "align-layers", o.AlignLayers, "use the same column widths in every layer")
}

// options returns the effective options for cmd: defaults, then the config
// file, then every flag the user set explicitly.
func (c *CLI) options(cmd *cobra.Command, flags *pipeline.Options) pipeline.Options {
	opts := c.config().Options
	opts.Formats = append([]string(nil), opts.Formats...)
	for _, f := range optionFlags {
		if cmd.Flags().Changed(f.name) {
			f.apply(&opts, flags)
		}
	}
	opts.Logger = c.Logger
	return opts
}
