package analyze

// SelectTitle picks the single best title candidate from the first page and
// returns its index into the scored slice, or -1 when the document has no
// page-0 fragments at all.
//
// Selection prefers heading candidates (score at or above minScore); when no
// page-0 fragment clears the threshold, the highest-scored page-0 fragment is
// taken regardless. Ties break toward the larger font size, then toward the
// earlier vertical position on the page (smaller Y0). The caller removes the
// chosen fragment from the candidate pool so the title never duplicates as an
// outline entry.
func SelectTitle(scored []ScoredFragment, minScore float64) int {
	best := -1
	for i := range scored {
		sf := &scored[i]
		if sf.Fragment.PageIndex != 0 || sf.Score < minScore {
			continue
		}
		if best < 0 || betterTitle(sf, &scored[best]) {
			best = i
		}
	}
	if best >= 0 {
		return best
	}

	// No page-0 fragment cleared the threshold; fall back to the highest
	// scored fragment on the first page regardless of threshold.
	for i := range scored {
		if scored[i].Fragment.PageIndex != 0 {
			continue
		}
		if best < 0 || betterTitle(&scored[i], &scored[best]) {
			best = i
		}
	}
	return best
}

// betterTitle reports whether a should be preferred over b as the title:
// higher score, then larger font size, then earlier vertical position.
func betterTitle(a, b *ScoredFragment) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Fragment.FontSize != b.Fragment.FontSize {
		return a.Fragment.FontSize > b.Fragment.FontSize
	}
	return a.Fragment.BBox.Y0 < b.Fragment.BBox.Y0
}
