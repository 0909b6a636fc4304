// Package layergraph draws how the layers of a keymap reach each other.
//
// Every layer is a node. A key whose expression switches layers, such as
// MO(1) or LT(2,KC_SPC), adds an edge from the layer holding it to the
// layer it activates. [ToDOT] writes the graph as Graphviz DOT and
// [RenderSVG] lays it out with the embedded Graphviz from goccy/go-graphviz.
//
//	dot := layergraph.ToDOT(km)
//	svg, err := layergraph.RenderSVG(ctx, dot)
package layergraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/keymapfmt/pkg/humanize"
	"github.com/matzehuels/keymapfmt/pkg/keymap"
	"github.com/matzehuels/keymapfmt/pkg/syntax"
)

// switchers are the calls whose first argument names a layer.
var switchers = map[string]bool{
	"MO":  true,
	"LT":  true,
	"TG":  true,
	"TO":  true,
	"OSL": true,
	"TT":  true,
	"DF":  true,
	"LM":  true,
}

// Edge is one key that activates another layer.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Key  string `json:"key"`
	Kind string `json:"kind"`
}

// Edges returns every layer switch in km, in layer then row-major order.
// Switches to labels that are not layers of km are skipped.
func Edges(km *keymap.Keymap) []Edge {
	var edges []Edge
	for _, l := range km.Layers {
		for _, row := range l.Keys {
			for _, c := range row {
				text, ok := c.Text()
				if !ok {
					continue
				}
				call, ok := parseCall(text)
				if !ok {
					continue
				}
				if !switchers[call.Name] {
					continue
				}
				target := syntax.Render(call.Args[0])
				if _, ok := km.Layer(target); !ok {
					continue
				}
				edges = append(edges, Edge{From: l.Num, To: target, Key: text, Kind: call.Name})
			}
		}
	}
	return edges
}

func parseCall(text string) (*syntax.FunctionCall, bool) {
	e, err := syntax.ParseKey(text)
	if err != nil {
		return nil, false
	}
	call, ok := e.(*syntax.FunctionCall)
	return call, ok
}

// ToDOT converts the layer graph of km to Graphviz DOT.
func ToDOT(km *keymap.Keymap) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layers {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("\n")

	for _, l := range km.Layers {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", l.Num, fmt.Sprintf("[%s] %s", l.Num, l.Name))
	}

	buf.WriteString("\n")
	for _, e := range Edges(km) {
		label := humanize.Humanize(e.Key)
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, tooltip=%q];\n", e.From, e.To, e.Kind+" "+label.Middle, e.Key)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph and returns it as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render layer graph: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// in user units so the graph scales like the layer diagrams.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
