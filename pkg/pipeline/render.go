package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	"github.com/matzehuels/keymapfmt/pkg/format"
	pkgio "github.com/matzehuels/keymapfmt/pkg/io"
	"github.com/matzehuels/keymapfmt/pkg/keymap"
	"github.com/matzehuels/keymapfmt/pkg/render"
	"github.com/matzehuels/keymapfmt/pkg/render/layergraph"
	"github.com/matzehuels/keymapfmt/pkg/render/svg"
)

// Render generates output artifacts in the requested formats. It does not
// touch any cache; see Runner.Render for the cached variant.
func Render(ctx context.Context, km *keymap.Keymap, opts Options) (map[string][]byte, error) {
	r := renderer{km: km, opts: opts}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, f := range opts.Formats {
		if _, done := artifacts[f]; done {
			continue
		}
		data, err := r.render(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f] = data
	}

	return artifacts, nil
}

// renderer memoizes the intermediate SVG and DOT outputs that several
// formats share.
type renderer struct {
	km   *keymap.Keymap
	opts Options
	svg  []byte
	dot  string
}

func (r *renderer) render(ctx context.Context, f string) ([]byte, error) {
	switch f {
	case FormatQMK:
		return []byte(format.Print(r.km, r.opts.FormatOptions())), nil
	case FormatSVG:
		return r.diagram(), nil
	case FormatPNG:
		return convertErr(render.ToPNG(r.diagram(), r.opts.Scale))
	case FormatPDF:
		return convertErr(render.ToPDF(r.diagram()))
	case FormatJSON:
		var buf bytes.Buffer
		var jsonOpts []pkgio.Option
		if r.opts.Humanize {
			jsonOpts = append(jsonOpts, pkgio.WithLabels())
		}
		if err := pkgio.WriteJSON(r.km, &buf, jsonOpts...); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(r.graph()), nil
	case FormatGraph:
		return layergraph.RenderSVG(ctx, r.graph())
	default:
		return nil, ValidateFormat(f)
	}
}

func (r *renderer) diagram() []byte {
	if r.svg == nil {
		var svgOpts []svg.Option
		if r.opts.Humanize {
			svgOpts = append(svgOpts, svg.WithHumanize())
		}
		r.svg = svg.Render(r.km, svgOpts...)
	}
	return r.svg
}

func (r *renderer) graph() string {
	if r.dot == "" {
		r.dot = layergraph.ToDOT(r.km)
	}
	return r.dot
}

// convertErr marks a missing rsvg-convert as UNSUPPORTED.
func convertErr(data []byte, err error) ([]byte, error) {
	if errors.Is(err, render.ErrConverterMissing) {
		return nil, kerrors.Wrap(kerrors.ErrCodeUnsupported, err, "converter unavailable")
	}
	return data, err
}
