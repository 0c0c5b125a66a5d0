package analyze

import (
	"math"

	"github.com/docsift/docsift/fragment"
)

// Baseline describes the document's dominant body-text style. FontSize is
// always one of the observed fragment font sizes, never interpolated; a
// document with zero fragments yields the degenerate Baseline{FontSize: 0}.
type Baseline struct {
	// FontSize is the body-text font size in points.
	FontSize float64

	// FontName is the font name most frequently paired with FontSize.
	FontName string
}

// EstimateBaseline computes the document's body-text style from fragment
// statistics. Fragments are bucketed by font size rounded to the given
// granularity, and each bucket is weighted by the total rune count of its
// fragments rather than the fragment count, so a few large headings cannot
// outvote abundant body text. Ties resolve toward the smaller size, since
// body text is rarely the largest recurring style.
func EstimateBaseline(fragments []fragment.TextFragment, granularity float64) Baseline {
	if len(fragments) == 0 {
		return Baseline{}
	}
	if granularity <= 0 {
		granularity = 1.0
	}

	type bucketStats struct {
		runes     int
		sizeRunes map[float64]int // exact observed size -> rune count
		nameCount map[string]int
	}

	buckets := make(map[float64]*bucketStats)
	for i := range fragments {
		f := &fragments[i]
		key := math.Round(f.FontSize/granularity) * granularity
		b := buckets[key]
		if b == nil {
			b = &bucketStats{
				sizeRunes: make(map[float64]int),
				nameCount: make(map[string]int),
			}
			buckets[key] = b
		}
		n := f.RuneCount()
		b.runes += n
		b.sizeRunes[f.FontSize] += n
		b.nameCount[f.FontName]++
	}

	var winner *bucketStats
	winnerKey := 0.0
	for key, b := range buckets {
		if winner == nil || b.runes > winner.runes ||
			(b.runes == winner.runes && key < winnerKey) {
			winner, winnerKey = b, key
		}
	}

	// Within the winning bucket, the most frequent exact size is the
	// baseline, keeping the invariant that it is an observed value.
	size, best := 0.0, -1
	for s, n := range winner.sizeRunes {
		if n > best || (n == best && s < size) {
			size, best = s, n
		}
	}

	name, bestName := "", -1
	for fn, n := range winner.nameCount {
		if n > bestName || (n == bestName && fn < name) {
			name, bestName = fn, n
		}
	}

	return Baseline{FontSize: size, FontName: name}
}
