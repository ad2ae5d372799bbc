// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package overlay converts stored signature placements into print markup.

# Coordinate Model

Placements are stored as percentages of the page (0-100) plus pixel
dimensions at 96 dpi. The renderer maps them onto a fixed A4 page:

	left_mm = x_pct / 100 * 210
	top_mm  = y_pct / 100 * 297
	w_mm    = width_px / 3.7795
	h_mm    = height_px / 3.7795

All values round to 2 decimal places.

# Rendering

Render emits one position:fixed <img> per row, anchored to the physical page
edge rather than any content wrapper, so it works on any print format. Rows
without an image are skipped, and zero rows produce no output at all.

	html := overlay.Render(positions, cfg.BaseURL)

InlineSignature is the companion helper for signature lines inside the
document body: an <img> when the user has a signature, a blank dotted line
when they don't.
*/
package overlay
