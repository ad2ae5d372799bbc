// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package overlay

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rmuchiri/docsign/models"
)

// Physical page geometry. Stored coordinates are percentages of an A4 page;
// stored sizes are 96-dpi pixels.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
	pxPerMM    = 3.7795
)

// Box is an absolute page-relative rectangle in millimeters.
type Box struct {
	LeftMM   float64
	TopMM    float64
	WidthMM  float64
	HeightMM float64
}

// PageBox converts percentage coordinates and pixel dimensions into absolute
// millimeter offsets on the fixed A4 page. Zero dimensions fall back to the
// default marker size. All values round to 2 decimal places.
func PageBox(xPct, yPct, widthPx, heightPx float64) Box {
	if widthPx == 0 {
		widthPx = models.DefaultWidthPx
	}
	if heightPx == 0 {
		heightPx = models.DefaultHeightPx
	}
	return Box{
		LeftMM:   round2(xPct / 100.0 * A4WidthMM),
		TopMM:    round2(yPct / 100.0 * A4HeightMM),
		WidthMM:  round2(widthPx / pxPerMM),
		HeightMM: round2(heightPx / pxPerMM),
	}
}

// Render emits one positioned, non-interactive image marker per stored
// position. Markers anchor to the physical page edge (position:fixed), not to
// any content container, so they land correctly on any print format. Rows
// with no resolvable image are silently skipped; zero rows produce no output
// at all, not even an empty container.
func Render(positions []models.SignaturePosition, baseURL string) string {
	if len(positions) == 0 {
		return ""
	}

	var b strings.Builder
	for _, pos := range positions {
		if pos.ImageRef == "" {
			continue
		}

		box := PageBox(pos.XPct, pos.YPct, pos.WidthPx, pos.HeightPx)
		fmt.Fprintf(&b,
			`<img src="%s%s" style="position:fixed;left:%smm;top:%smm;width:%smm;height:%smm;z-index:9999;pointer-events:none;" class="ds-sig-overlay">`,
			baseURL, pos.ImageRef,
			fmtMM(box.LeftMM), fmtMM(box.TopMM), fmtMM(box.WidthMM), fmtMM(box.HeightMM),
		)
	}
	return b.String()
}

// InlineSignature returns an <img> tag for a signature image, or a blank
// dotted-line placeholder when the user has no resolvable signature. Used on
// print formats where a signature sits inline with the attribution text.
func InlineSignature(imageURL, baseURL, width, height string) string {
	if width == "" {
		width = "120px"
	}
	if height == "" {
		height = "50px"
	}
	if imageURL == "" {
		return fmt.Sprintf(`<span style="display:inline-block;width:%s;border-bottom:1px solid #000;">&nbsp;</span>`, width)
	}
	return fmt.Sprintf(`<img src="%s%s" style="width:%s;height:%s;object-fit:contain;" class="ds-inline-sig">`,
		baseURL, imageURL, width, height)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// fmtMM renders a millimeter value without trailing zeros (105, 148.5, 39.69)
func fmtMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
