// Package pkg provides the core libraries for keymapfmt.
//
// # Overview
//
// keymapfmt reads the keymap layer definitions of a QMK keymap.c, lays every
// layer out as a grid with the two halves of a split keyboard separated, and
// prints it back as column-aligned source. The same grid drives an SVG layer
// diagram, a JSON export and a graph of how the layers reach each other.
//
// The pkg directory is organized into these areas:
//
//  1. [syntax] - Grammar, parser and the key expression reducer
//  2. [keymap] - Keymap model, builder and grid normalizer
//  3. [format] - Column-aligned pretty-printer
//  4. [humanize], [render/svg], [render/layergraph], [io] - Additional outputs
//  5. [pipeline] - Orchestration (parse → build → render) with caching
//  6. [cache], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through keymapfmt:
//
//	keymap.c source
//	      ↓
//	 [syntax] package (Program of LayerBlocks of key expressions)
//	      ↓
//	 [keymap] package (layers normalized into rectangular grids)
//	      ↓
//	 [format] / [render/svg] / [io] / [render/layergraph]
//	      ↓
//	 formatted source, SVG/PNG/PDF, JSON, DOT
//
// # Quick Start
//
// Format a keymap:
//
//	import (
//	    "github.com/matzehuels/keymapfmt/pkg/format"
//	    "github.com/matzehuels/keymapfmt/pkg/keymap"
//	)
//
//	km, err := keymap.FromSource(src, keymap.DefaultGridOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Print(format.Print(km, format.DefaultOptions()))
//
// Or run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{pipeline.FormatQMK, pipeline.FormatSVG}
//	result, err := runner.Execute(ctx, src, opts)
//
// # Errors
//
// Failures carry a [errors.Code]: SYNTAX_ERROR for source that does not match
// the grammar (the cause is a *syntax.SyntaxError with line, column and the
// expected tokens), INVALID_KEYMAP for structural problems such as layers
// with different row counts, INVALID_OPTIONS and INVALID_FORMAT for bad
// settings. No stage returns a partial result.
//
// [syntax]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/syntax
// [keymap]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/keymap
// [format]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/format
// [humanize]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/humanize
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/render/svg
// [render/layergraph]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/render/layergraph
// [io]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/errors
// [errors.Code]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/errors#Code
// [observability]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/keymapfmt/pkg/buildinfo
package pkg
