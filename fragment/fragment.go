// Package fragment defines the normalized text-fragment representation consumed
// by the docsift analysis pipeline, along with script classification helpers
// used for script-aware scoring decisions.
package fragment

import (
	"strings"
	"unicode/utf8"
)

// BBox is an axis-aligned bounding box in page coordinates. The coordinate
// system has its origin at the top-left of the page with Y increasing
// downward, so smaller Y0 means closer to the top of the page.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// MidX returns the horizontal midpoint of the box.
func (b BBox) MidX() float64 {
	return (b.X0 + b.X1) / 2
}

// TextFragment represents one observed unit of styled, positioned text as
// produced by a decoder. Fragments are immutable once produced; the analysis
// pipeline only reads them.
type TextFragment struct {
	// Text is the fragment's text content. It may contain any script.
	Text string

	// FontSize is the font size in points. Always positive for valid fragments.
	FontSize float64

	// FontName is the style-carrying font name (e.g. "Arial-BoldMT").
	FontName string

	// BBox is the fragment's bounding box in page coordinates.
	BBox BBox

	// PageIndex is the 0-based page the fragment appears on. PageIndex is
	// monotonically non-decreasing across a document's fragment sequence.
	PageIndex int

	// PageWidth and PageHeight are the dimensions of the containing page,
	// used for centering computation.
	PageWidth  float64
	PageHeight float64

	// Bold is a synthetic weight hint some decoders supply directly. It is
	// only consulted when no weight-indicator token could be learned from
	// the document's font names.
	Bold bool
}

// RuneCount returns the number of runes in the fragment's text.
func (f *TextFragment) RuneCount() int {
	return utf8.RuneCountInString(f.Text)
}

// Valid reports whether the fragment carries every attribute the analysis
// pipeline requires. Fragments with empty text, a non-positive font size, or
// missing page dimensions are considered malformed.
func (f *TextFragment) Valid() bool {
	if strings.TrimSpace(f.Text) == "" {
		return false
	}
	if f.FontSize <= 0 {
		return false
	}
	if f.PageIndex < 0 {
		return false
	}
	if f.PageWidth <= 0 || f.PageHeight <= 0 {
		return false
	}
	return true
}

// Sanitize returns the subset of fragments that are valid, preserving input
// order. Malformed fragments are excluded from analysis rather than aborting
// the whole document.
func Sanitize(fragments []TextFragment) []TextFragment {
	out := make([]TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if f.Valid() {
			out = append(out, f)
		}
	}
	return out
}
