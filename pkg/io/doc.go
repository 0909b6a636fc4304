// Package io provides JSON import and export for keymaps.
//
// # JSON Format
//
//	{
//	  "layers": [
//	    {
//	      "num": "0",
//	      "name": "LAYOUT",
//	      "keys": [
//	        ["KC_A", null, null, "KC_B"],
//	        [null, "LT(1,KC_SPC)", "KC_ENT", null]
//	      ]
//	    }
//	  ]
//	}
//
// Keys hold the canonical key text and null marks a gap. Export writes the
// normalized grid, so importing it back yields an identical keymap.
//
// With [WithLabels] each layer also carries a "labels" grid of display
// labels; import ignores it.
//
// # Import
//
// [ReadJSON] and [ImportJSON] validate the decoded keymap the same way a
// build does: at least one layer, non-empty rectangular grids and a shared
// row count.
package io
