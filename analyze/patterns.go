package analyze

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/docsift/docsift/fragment"
)

// NumberingShape identifies one structural numbering convention the learner
// knows how to recognize. The set of shapes is closed and fixed at compile
// time; a shape only becomes active for a document when at least two distinct
// fragments in that document match it.
type NumberingShape int

const (
	// ShapeDecimal matches dotted digit groups: "1.", "2.1", "2.1.3".
	ShapeDecimal NumberingShape = iota
	// ShapeRoman matches uppercase Roman numerals: "IV.", "XII)".
	ShapeRoman
	// ShapeLetter matches single uppercase letters: "A.", "B)".
	ShapeLetter
	// ShapeCircled matches enclosed alphanumerics such as ① (U+2460–U+24FF).
	ShapeCircled
	// ShapeCJKOrdinal matches CJK ordinal markers: "第2章", "第三節", "제1장".
	ShapeCJKOrdinal
	// ShapeArabicIndic matches Arabic-Indic digit groups: "٢.١".
	ShapeArabicIndic
	// ShapeDevanagari matches Devanagari digit groups: "२.१".
	ShapeDevanagari

	numShapes = int(ShapeDevanagari) + 1
)

// String returns a short name for the shape.
func (s NumberingShape) String() string {
	switch s {
	case ShapeDecimal:
		return "decimal"
	case ShapeRoman:
		return "roman"
	case ShapeLetter:
		return "letter"
	case ShapeCircled:
		return "circled"
	case ShapeCJKOrdinal:
		return "cjk-ordinal"
	case ShapeArabicIndic:
		return "arabic-indic"
	case ShapeDevanagari:
		return "devanagari"
	default:
		return "unknown"
	}
}

// NumberingPattern is a learned numbering convention: a shape that matched at
// least two distinct fragments, plus the maximum hierarchy depth observed for
// it in this document.
type NumberingPattern struct {
	Shape       NumberingShape
	MaxDepth    int
	Occurrences int
}

// ContentCategory is a coarse document classification derived from vocabulary
// evidence. It is used only as a soft prior for scoring thresholds, never as
// a hard gate.
type ContentCategory int

const (
	CategoryAcademic ContentCategory = iota
	CategoryForm
	CategorySocial
	CategoryTechnical

	numCategories = int(CategoryTechnical) + 1
)

// String returns a short name for the category.
func (c ContentCategory) String() string {
	switch c {
	case CategoryAcademic:
		return "academic"
	case CategoryForm:
		return "form"
	case CategorySocial:
		return "social"
	case CategoryTechnical:
		return "technical"
	default:
		return "unknown"
	}
}

// Patterns holds everything learned from a single document: active numbering
// shapes, font-name weight-indicator tokens, and detected content categories.
// A Patterns value lives only for the duration of one document's analysis and
// is never shared across documents.
type Patterns struct {
	// Numbering lists the learned numbering conventions in shape order.
	Numbering []NumberingPattern

	// WeightTokens are lowercase substrings of font names that co-occur with
	// heavier visual weight, sorted alphabetically.
	WeightTokens []string

	categories [numCategories]bool
}

// HasCategory reports whether the given content category was detected.
func (p *Patterns) HasCategory(c ContentCategory) bool {
	if int(c) < 0 || int(c) >= numCategories {
		return false
	}
	return p.categories[c]
}

// AllowsShortHeadings reports whether the document's content class tolerates
// very short heading candidates, such as form field labels ending in a colon.
func (p *Patterns) AllowsShortHeadings() bool {
	return p.HasCategory(CategoryForm) || p.HasCategory(CategorySocial)
}

// MatchNumbering tries every learned numbering pattern against the leading
// text and returns the implied hierarchy depth of the first match. It returns
// ok=false when no learned pattern matches; a document in which no shape was
// learned therefore contributes nothing here.
func (p *Patterns) MatchNumbering(text string) (depth int, ok bool) {
	head := leadingRunes(strings.TrimSpace(text), 20)
	for _, np := range p.Numbering {
		if d, matched := matchShape(np.Shape, head); matched {
			return d, true
		}
	}
	return 0, false
}

// IsBoldFont reports whether the font name contains any learned
// weight-indicator token (case-insensitive).
func (p *Patterns) IsBoldFont(fontName string) bool {
	if len(p.WeightTokens) == 0 {
		return false
	}
	lower := strings.ToLower(fontName)
	for _, tok := range p.WeightTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// LearnPatterns runs the three discovery passes over the fragment sequence.
// The passes are independent and order-insensitive: numbering shapes are
// activated by repeated structural prefixes, weight tokens by font names whose
// fragments run statistically larger than the baseline, and content categories
// by cross-language vocabulary hits. Nothing is carried in from outside the
// document.
func LearnPatterns(fragments []fragment.TextFragment, baseline Baseline) Patterns {
	var p Patterns
	if len(fragments) == 0 {
		return p
	}
	p.Numbering = discoverNumbering(fragments)
	p.WeightTokens = discoverWeightTokens(fragments, baseline)
	p.categories = discoverCategories(fragments)
	return p
}

// discoverNumbering counts, per shape, how many distinct fragments open with
// that shape, and records the maximum depth seen. A shape is learned only when
// two or more fragments corroborate it.
func discoverNumbering(fragments []fragment.TextFragment) []NumberingPattern {
	counts := [numShapes]int{}
	maxDepth := [numShapes]int{}

	for i := range fragments {
		head := leadingRunes(strings.TrimSpace(fragments[i].Text), 20)
		for s := 0; s < numShapes; s++ {
			if d, ok := matchShape(NumberingShape(s), head); ok {
				counts[s]++
				if d > maxDepth[s] {
					maxDepth[s] = d
				}
			}
		}
	}

	var learned []NumberingPattern
	for s := 0; s < numShapes; s++ {
		if counts[s] >= 2 {
			learned = append(learned, NumberingPattern{
				Shape:       NumberingShape(s),
				MaxDepth:    maxDepth[s],
				Occurrences: counts[s],
			})
		}
	}
	return learned
}

var (
	decimalRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.)]?(?:\s|$)`)
	romanRe   = regexp.MustCompile(`^([IVXLCDM]{1,7})[.)](?:\s|$)`)
	letterRe  = regexp.MustCompile(`^[A-Z][.)](?:\s|$)`)
)

// cjkUnitDepth maps a CJK or Korean ordinal unit character to the hierarchy
// depth it implies: parts and chapters sit at depth 1, sections at depth 2,
// clauses and items at depth 3.
var cjkUnitDepth = map[rune]int{
	'部': 1, '編': 1, '篇': 1, '章': 1, '卷': 1,
	'節': 2, '节': 2,
	'項': 3, '项': 3, '条': 3, '條': 3, '款': 3,
	// Korean units, used after the 제 marker.
	'장': 1, '절': 2, '조': 3,
}

// matchShape tests a single shape against the leading text and returns the
// implied hierarchy depth on a match.
func matchShape(shape NumberingShape, head string) (int, bool) {
	if head == "" {
		return 0, false
	}
	switch shape {
	case ShapeDecimal:
		m := decimalRe.FindStringSubmatch(head)
		if m == nil {
			return 0, false
		}
		depth := strings.Count(m[1], ".") + 1
		// A bare number ("1980 was a year...") is not a structural prefix;
		// single-group matches must carry the closing dot or parenthesis.
		if depth == 1 && !strings.ContainsAny(m[0], ".)") {
			return 0, false
		}
		return depth, true

	case ShapeRoman:
		m := romanRe.FindStringSubmatch(head)
		if m == nil {
			return 0, false
		}
		// A lone C, D, L, or M is far more likely a lettered sequence
		// ("C. Scope") than a roman numeral; only I, V, and X commonly
		// appear alone as numerals.
		if len(m[1]) == 1 && m[1] != "I" && m[1] != "V" && m[1] != "X" {
			return 0, false
		}
		return 1, true

	case ShapeLetter:
		// Roman prefixes like "I." also match the letter shape; the roman
		// shape is checked first by MatchNumbering's shape ordering.
		if letterRe.MatchString(head) {
			return 1, true
		}
		return 0, false

	case ShapeCircled:
		r := firstRune(head)
		if r >= 0x2460 && r <= 0x24FF {
			return 1, true
		}
		return 0, false

	case ShapeCJKOrdinal:
		return matchCJKOrdinal(head)

	case ShapeArabicIndic:
		return matchDigitGroups(head, fragment.IsArabicIndicDigit, []rune{'.', '،', '-'})

	case ShapeDevanagari:
		return matchDigitGroups(head, fragment.IsDevanagariDigit, []rune{'.', '-'})
	}
	return 0, false
}

// matchCJKOrdinal recognizes 第N<unit> and 제N<unit> ordinal prefixes, where N
// is a run of Latin digits or CJK numerals. Depth comes from the unit.
func matchCJKOrdinal(head string) (int, bool) {
	runes := []rune(head)
	if len(runes) < 3 {
		return 0, false
	}
	if runes[0] != '第' && runes[0] != '제' {
		return 0, false
	}
	i := 1
	for i < len(runes) && isCJKNumeral(runes[i]) {
		i++
	}
	if i == 1 || i >= len(runes) {
		return 0, false
	}
	depth, ok := cjkUnitDepth[runes[i]]
	return depth, ok
}

// isCJKNumeral reports whether r can appear in the numeral part of a CJK
// ordinal: Latin digits, fullwidth digits, or CJK numeral ideographs.
func isCJKNumeral(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if r >= 0xFF10 && r <= 0xFF19 { // fullwidth digits
		return true
	}
	switch r {
	case '一', '二', '三', '四', '五', '六', '七', '八', '九', '十', '百', '千', '零':
		return true
	}
	return false
}

// matchDigitGroups recognizes separator-delimited digit runs in a specific
// digit system, returning the group count as depth. The prefix must terminate
// at a space, a trailing separator, or the end of the head.
func matchDigitGroups(head string, isDigit func(rune) bool, seps []rune) (int, bool) {
	runes := []rune(head)
	groups := 0
	i := 0
	for {
		start := i
		for i < len(runes) && isDigit(runes[i]) {
			i++
		}
		if i == start {
			return 0, false
		}
		groups++
		if i >= len(runes) || unicode.IsSpace(runes[i]) {
			return groups, true
		}
		if !containsRune(seps, runes[i]) {
			return 0, false
		}
		i++
		if i >= len(runes) || unicode.IsSpace(runes[i]) {
			// Trailing separator, e.g. "٢.", closes the prefix.
			return groups, true
		}
	}
}

// discoverWeightTokens tokenizes every distinct font name and keeps the tokens
// whose fragments are statistically more prominent than the baseline. The
// prominence gate prevents learning vendor codes out of body-text fonts: a
// token is kept only if its fragments run at least 5% larger than baseline
// (char-weighted), do not cover the entire document, and the token does not
// occur in the baseline font name itself.
func discoverWeightTokens(fragments []fragment.TextFragment, baseline Baseline) []string {
	if baseline.FontSize <= 0 {
		return nil
	}

	tokens := make(map[string]bool)
	seen := make(map[string]bool)
	for i := range fragments {
		name := fragments[i].FontName
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		for _, tok := range tokenizeFontName(name) {
			tokens[tok] = true
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	totalRunes := 0
	for i := range fragments {
		totalRunes += fragments[i].RuneCount()
	}
	if totalRunes == 0 {
		return nil
	}

	baseLower := strings.ToLower(baseline.FontName)

	var learned []string
	for tok := range tokens {
		if strings.Contains(baseLower, tok) {
			continue
		}
		runes := 0
		sizeSum := 0.0
		for i := range fragments {
			f := &fragments[i]
			if !strings.Contains(strings.ToLower(f.FontName), tok) {
				continue
			}
			n := f.RuneCount()
			runes += n
			sizeSum += f.FontSize * float64(n)
		}
		if runes == 0 || runes == totalRunes {
			continue
		}
		if sizeSum/float64(runes) >= baseline.FontSize*1.05 {
			learned = append(learned, tok)
		}
	}

	sort.Strings(learned)
	return learned
}

// tokenizeFontName splits a font name into lowercase tokens on separators and
// lowercase-to-uppercase case changes: "ArialNarrow-BoldMT" yields "arial",
// "narrow", "bold", "mt". Tokens shorter than three characters are dropped.
func tokenizeFontName(name string) []string {
	var tokens []string
	var cur []rune
	flush := func() {
		if len(cur) >= 3 {
			tokens = append(tokens, strings.ToLower(string(cur)))
		}
		cur = cur[:0]
	}
	var prev rune
	for _, r := range name {
		switch {
		case !unicode.IsLetter(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return tokens
}

// categoryVocab holds the small cross-language keyword sets per content
// category. A category is detected when enough keywords from it appear
// anywhere in the document (one hit, except forms which require two).
var categoryVocab = [numCategories][]string{
	CategoryAcademic: {
		"abstract", "introduction", "references", "bibliography",
		"methodology", "acknowledgements", "conclusion",
		"résumé", "introducción", "referencias",
		"概要", "要旨", "序論", "結論", "参考文献", "摘要", "绪论",
	},
	CategoryForm: {
		"application", "form", "name:", "date:", "signature",
		"designation", "s.no", "undertaking",
		"申請", "様式", "署名", "氏名",
	},
	CategorySocial: {
		"party", "invited", "invitation", "rsvp", "hope to see you",
		"address:", "招待",
	},
	CategoryTechnical: {
		"specification", "protocol", "api reference", "changelog",
		"仕様書",
	},
}

// minCategoryHits is the number of distinct keyword hits required to detect
// each category. Forms require two hits because single words like "form" are
// common in running prose.
var minCategoryHits = [numCategories]int{
	CategoryAcademic:  1,
	CategoryForm:      2,
	CategorySocial:    1,
	CategoryTechnical: 1,
}

// discoverCategories scans the NFKC-normalized, lower-cased document text for
// category vocabulary membership.
func discoverCategories(fragments []fragment.TextFragment) [numCategories]bool {
	var sb strings.Builder
	for i := range fragments {
		sb.WriteString(fragments[i].Text)
		sb.WriteByte(' ')
	}
	text := strings.ToLower(norm.NFKC.String(sb.String()))

	var detected [numCategories]bool
	for c := 0; c < numCategories; c++ {
		hits := 0
		for _, kw := range categoryVocab[c] {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		detected[c] = hits >= minCategoryHits[c]
	}
	return detected
}

// leadingRunes returns at most n leading runes of s.
func leadingRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// firstRune returns the first rune of s, or 0 for an empty string.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// containsRune reports whether rs contains r.
func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}
