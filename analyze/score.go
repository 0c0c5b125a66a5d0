package analyze

import (
	"sort"
	"strings"
	"unicode"

	"github.com/docsift/docsift/fragment"
)

// Scoring weights. These are fixed constants of the engine, not learned from
// the document; only the candidate threshold and the font-size rounding
// granularity are configurable.
const (
	// weightSize scales the relative size excess over the baseline:
	// (size/baseline − 1) * weightSize, clamped at zero from below.
	weightSize = 30.0

	// weightBold is the flat bonus for a learned weight-indicator match.
	weightBold = 10.0

	// weightCaps is the flat bonus for uppercase text in cased scripts.
	weightCaps = 8.0

	// weightNumbering is the flat bonus for a learned numbering-pattern match.
	weightNumbering = 18.0

	// weightCentered is the flat bonus for horizontally centered fragments.
	weightCentered = 6.0

	// weightSpacing is the flat bonus for fragments with materially more
	// vertical whitespace above them than the document median.
	weightSpacing = 5.0

	// lengthPenalty is subtracted from fragments longer than the script-aware
	// ceiling; headings are short relative to body paragraphs.
	lengthPenalty = 8.0

	// shortPenalty is subtracted from fragments below the minimum length.
	shortPenalty = 8.0

	// lengthCeiling and denseLengthCeiling are the rune-count ceilings for
	// alphabetic and dense (CJK/Indic) scripts respectively.
	lengthCeiling      = 100
	denseLengthCeiling = 50

	// minHeadingRunes is the length below which the short-text penalty
	// applies. Form-like documents halve it so field labels stay eligible.
	minHeadingRunes = 4

	// centerTolerance is the fraction of the page width within which a
	// fragment's midpoint counts as centered, and centerMaxWidth is the
	// maximum fragment width (as a fraction of page width) still eligible
	// for the centering bonus. Full-width body lines are trivially centered
	// and must not collect it.
	centerTolerance = 0.2
	centerMaxWidth  = 0.6

	// spacingFactor is how much larger than the median inter-fragment gap a
	// gap must be to count as deliberate whitespace.
	spacingFactor = 1.5
)

// ScoredFragment pairs a fragment with its heading-likelihood score and the
// evidence attached during scoring. Fragments scoring at or above the
// configured threshold become heading candidates.
type ScoredFragment struct {
	Fragment fragment.TextFragment

	// Index is the fragment's position in the original document order.
	Index int

	// Score is the combined heading-likelihood score.
	Score float64

	// NumberingDepth is the hierarchy depth implied by a learned numbering
	// match, or 0 when no pattern matched.
	NumberingDepth int

	// Bold records whether weight evidence applied to this fragment.
	Bold bool
}

// Scorer computes heading-likelihood scores for one document's fragments. It
// is built per document from the baseline and learned patterns plus the
// document's whitespace statistics, and holds no state beyond them.
type Scorer struct {
	baseline  Baseline
	patterns  *Patterns
	medianGap float64
}

// NewScorer builds a scorer for the given document. The fragment sequence is
// used once here to derive the median vertical gap between consecutive
// fragments, which anchors the whitespace bonus.
func NewScorer(fragments []fragment.TextFragment, baseline Baseline, patterns *Patterns) *Scorer {
	return &Scorer{
		baseline:  baseline,
		patterns:  patterns,
		medianGap: medianVerticalGap(fragments),
	}
}

// ScoreAll scores every fragment in document order. No feature aborts: absent
// evidence contributes zero, and only the length terms ever subtract.
func (s *Scorer) ScoreAll(fragments []fragment.TextFragment) []ScoredFragment {
	scored := make([]ScoredFragment, len(fragments))
	for i := range fragments {
		scored[i] = s.score(fragments, i)
	}
	return scored
}

// Candidates filters scored fragments down to those meeting the threshold.
func Candidates(scored []ScoredFragment, minScore float64) []ScoredFragment {
	var out []ScoredFragment
	for _, sf := range scored {
		if sf.Score >= minScore {
			out = append(out, sf)
		}
	}
	return out
}

func (s *Scorer) score(fragments []fragment.TextFragment, i int) ScoredFragment {
	f := &fragments[i]
	sf := ScoredFragment{Fragment: *f, Index: i}

	// Size factor: only sizes above the baseline add evidence.
	if s.baseline.FontSize > 0 && f.FontSize > s.baseline.FontSize {
		sf.Score += (f.FontSize/s.baseline.FontSize - 1) * weightSize
	}

	// Weight factor: learned font-name tokens, falling back to the decoder's
	// synthetic bold flag when no token was learned.
	if len(s.patterns.WeightTokens) > 0 {
		sf.Bold = s.patterns.IsBoldFont(f.FontName)
	} else {
		sf.Bold = f.Bold
	}
	if sf.Bold {
		sf.Score += weightBold
	}

	// Case factor: skipped entirely for scripts without case.
	if isUpperCased(f.Text) {
		sf.Score += weightCaps
	}

	// Numbering factor: the matched depth rides along for the level override.
	if depth, ok := s.patterns.MatchNumbering(f.Text); ok {
		sf.Score += weightNumbering
		sf.NumberingDepth = depth
	}

	// Position factor: horizontal centering and vertical whitespace.
	if isCentered(f) {
		sf.Score += weightCentered
	}
	if s.hasSpaceAbove(fragments, i) {
		sf.Score += weightSpacing
	}

	// Length factor: script-aware ceiling penalty plus a floor for fragments
	// too short to be headings.
	runes := f.RuneCount()
	ceiling := lengthCeiling
	if fragment.DetectScript(f.Text).Dense() {
		ceiling = denseLengthCeiling
	}
	if runes > ceiling {
		sf.Score -= lengthPenalty
	}
	minRunes := minHeadingRunes
	if s.patterns.AllowsShortHeadings() {
		minRunes = minHeadingRunes / 2
	}
	if runes < minRunes {
		sf.Score -= shortPenalty
	}

	return sf
}

// isUpperCased reports whether the text, once punctuation, digits, and spaces
// are stripped, is uppercase in a script that has case. Text without cased
// letters (CJK and similar) never qualifies, so those scripts are neither
// rewarded nor penalized by this check.
func isUpperCased(text string) bool {
	letters := 0
	for _, r := range text {
		switch {
		case unicode.IsLower(r):
			return false
		case unicode.IsUpper(r):
			letters++
		}
	}
	return letters >= 2
}

// isCentered reports whether the fragment's midpoint falls within the
// tolerance band around the page's horizontal midpoint. Fragments spanning
// most of the page width are excluded: a justified body line is centered only
// by accident of its margins.
func isCentered(f *fragment.TextFragment) bool {
	if f.PageWidth <= 0 {
		return false
	}
	if f.BBox.Width() > f.PageWidth*centerMaxWidth {
		return false
	}
	offset := f.BBox.MidX() - f.PageWidth/2
	if offset < 0 {
		offset = -offset
	}
	return offset < f.PageWidth*centerTolerance
}

// hasSpaceAbove reports whether the fragment has materially more vertical
// whitespace above it than the document's median inter-fragment gap. The
// first fragment of a page always qualifies; a page break implies space.
func (s *Scorer) hasSpaceAbove(fragments []fragment.TextFragment, i int) bool {
	if i == 0 || fragments[i].PageIndex != fragments[i-1].PageIndex {
		return true
	}
	if s.medianGap <= 0 {
		return false
	}
	gap := fragments[i].BBox.Y0 - fragments[i-1].BBox.Y1
	return gap > s.medianGap*spacingFactor
}

// medianVerticalGap computes the median positive vertical gap between
// consecutive fragments on the same page.
func medianVerticalGap(fragments []fragment.TextFragment) float64 {
	var gaps []float64
	for i := 1; i < len(fragments); i++ {
		if fragments[i].PageIndex != fragments[i-1].PageIndex {
			continue
		}
		gap := fragments[i].BBox.Y0 - fragments[i-1].BBox.Y1
		if gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return 0
	}
	sort.Float64s(gaps)
	mid := len(gaps) / 2
	if len(gaps)%2 == 1 {
		return gaps[mid]
	}
	return (gaps[mid-1] + gaps[mid]) / 2
}

// stripDecorations removes leading/trailing whitespace from heading text for
// output. Interior text is preserved as observed.
func stripDecorations(text string) string {
	return strings.TrimSpace(text)
}
