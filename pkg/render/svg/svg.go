// Package svg draws keymap layers as SVG diagrams.
//
// Each layer becomes a framed group: a header, then one rectangle per key
// laid out on the layer grid. Columns right of the centre shift by a gutter
// so split keyboards read as two halves. Gaps draw nothing.
//
//	doc := svg.Render(km, svg.WithHumanize())
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/keymapfmt/pkg/humanize"
	"github.com/matzehuels/keymapfmt/pkg/keymap"
)

// Default geometry, in SVG user units.
const (
	DefaultKeyWidth  = 100
	DefaultKeyHeight = 50
	DefaultPadding   = 50
	DefaultGutter    = 50
)

// Option configures Render.
type Option func(*renderer)

// WithHumanize draws display labels (glyphs, hold actions) instead of raw key text.
func WithHumanize() Option { return func(r *renderer) { r.humanize = true } }

// WithKeySize sets the key cap size. Non-positive values are ignored.
func WithKeySize(w, h int) Option {
	return func(r *renderer) {
		if w > 0 && h > 0 {
			r.keyW, r.keyH = w, h
		}
	}
}

// WithGutter sets the horizontal gap between the two halves.
func WithGutter(w int) Option {
	return func(r *renderer) {
		if w >= 0 {
			r.gutter = w
		}
	}
}

type renderer struct {
	humanize bool
	keyW     int
	keyH     int
	padding  int
	gutter   int
}

// Render returns an SVG document showing every layer of km, top to bottom.
func Render(km *keymap.Keymap, opts ...Option) []byte {
	r := renderer{
		keyW:    DefaultKeyWidth,
		keyH:    DefaultKeyHeight,
		padding: DefaultPadding,
		gutter:  DefaultGutter,
	}
	for _, opt := range opts {
		opt(&r)
	}

	fullWidth := km.MaxCols()*r.keyW + 2*r.padding + r.gutter
	layerHeight := km.Rows()*r.keyH + 2*r.padding
	fullHeight := layerHeight * len(km.Layers)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		fullWidth, fullHeight, fullWidth, fullHeight)
	for i, l := range km.Layers {
		r.layer(&buf, l, i*layerHeight, fullWidth, layerHeight)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) layer(buf *bytes.Buffer, l keymap.Layer, top, fullWidth, layerHeight int) {
	fmt.Fprintf(buf, `  <g id="layer-%s" font-family="sans-serif">`+"\n", escape(l.Num))
	fmt.Fprintf(buf, `    <text x="30" y="%d" font-size="30" text-anchor="start" dominant-baseline="middle">%s</text>`+"\n",
		top+r.padding/2, escape(title(l)))
	fmt.Fprintf(buf, `    <rect x="10" y="%d" width="%d" height="%d" fill="none" stroke="black" stroke-width="1"/>`+"\n",
		top, fullWidth-20, layerHeight)

	for ri, row := range l.Keys {
		centre := len(row) / 2
		for ci, c := range row {
			text, ok := c.Text()
			if !ok {
				continue
			}
			x := ci*r.keyW + r.padding
			if ci >= centre {
				x += r.gutter
			}
			y := top + ri*r.keyH + r.padding
			r.key(buf, x, y, r.label(text))
		}
	}
	buf.WriteString("  </g>\n")
}

func (r *renderer) key(buf *bytes.Buffer, x, y int, l humanize.Label) {
	fmt.Fprintf(buf, `    <rect class="key" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="black" stroke-width="1"/>`+"\n",
		x, y, r.keyW, r.keyH)
	cx := x + r.keyW/2
	r.text(buf, cx, y+r.keyH/2, l.Middle)
	r.text(buf, cx, y+10, l.Top)
	r.text(buf, cx, y+r.keyH-10, l.Bottom)
}

func (r *renderer) text(buf *bytes.Buffer, x, y int, s string) {
	if s == "" {
		return
	}
	fmt.Fprintf(buf, `    <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		x, y, escape(s))
}

func (r *renderer) label(text string) humanize.Label {
	if r.humanize {
		return humanize.Humanize(text)
	}
	return humanize.Label{Middle: text}
}

// title is "Layer N" for single character numbers and the raw label otherwise.
func title(l keymap.Layer) string {
	if len(l.Num) == 1 {
		return "Layer " + l.Num
	}
	return l.Num
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
