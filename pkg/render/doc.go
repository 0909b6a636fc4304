// Package render turns keymaps into images.
//
// The [svg] subpackage draws every layer as a grid of key caps and the
// [layergraph] subpackage draws which keys switch to which layer. Both
// produce SVG; [ToPNG] and [ToPDF] convert any SVG with the external
// rsvg-convert tool from librsvg:
//
//	doc := svg.Render(km, svg.WithHumanize())
//	png, err := render.ToPNG(doc, 2.0)
package render
