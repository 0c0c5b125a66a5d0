package analyze

import (
	"testing"

	"github.com/docsift/docsift/fragment"
)

func learnedShapes(p Patterns) map[NumberingShape]NumberingPattern {
	out := make(map[NumberingShape]NumberingPattern, len(p.Numbering))
	for _, np := range p.Numbering {
		out[np.Shape] = np
	}
	return out
}

func TestDiscoverNumberingRequiresTwoFragments(t *testing.T) {
	baseline := Baseline{FontSize: 12, FontName: "Serif"}

	// A single numbered fragment must not activate the shape.
	one := []fragment.TextFragment{
		makeFragment("1. Introduction", 12, "Serif", 0),
		makeFragment("plain body text without structure", 12, "Serif", 0),
	}
	p := LearnPatterns(one, baseline)
	if len(p.Numbering) != 0 {
		t.Fatalf("one occurrence: learned %v, want none", p.Numbering)
	}

	// A second corroborating fragment activates it.
	two := append(one, makeFragment("2. Methods", 12, "Serif", 0))
	p = LearnPatterns(two, baseline)
	shapes := learnedShapes(p)
	np, ok := shapes[ShapeDecimal]
	if !ok {
		t.Fatalf("two occurrences: decimal shape not learned, got %v", p.Numbering)
	}
	if np.Occurrences != 2 {
		t.Errorf("Occurrences = %d, want 2", np.Occurrences)
	}
	if np.MaxDepth != 1 {
		t.Errorf("MaxDepth = %d, want 1", np.MaxDepth)
	}
}

func TestDiscoverNumberingDepth(t *testing.T) {
	baseline := Baseline{FontSize: 12, FontName: "Serif"}
	frags := []fragment.TextFragment{
		makeFragment("1. Introduction", 12, "Serif", 0),
		makeFragment("2.1 Prior Work", 12, "Serif", 0),
		makeFragment("2.1.3 Evaluation Setup", 12, "Serif", 1),
	}
	p := LearnPatterns(frags, baseline)
	np, ok := learnedShapes(p)[ShapeDecimal]
	if !ok {
		t.Fatal("decimal shape not learned")
	}
	if np.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", np.MaxDepth)
	}
}

func TestMatchShapeTable(t *testing.T) {
	tests := []struct {
		name      string
		shape     NumberingShape
		head      string
		wantDepth int
		wantOK    bool
	}{
		{"decimal depth 1", ShapeDecimal, "1. Introduction", 1, true},
		{"decimal paren", ShapeDecimal, "3) Results", 1, true},
		{"decimal depth 2", ShapeDecimal, "2.1 Prior Work", 2, true},
		{"decimal depth 3", ShapeDecimal, "2.1.3 Setup", 3, true},
		{"bare number rejected", ShapeDecimal, "1980 was a pivotal year", 0, false},
		{"bare number end rejected", ShapeDecimal, "42", 0, false},
		{"roman", ShapeRoman, "IV. Discussion", 1, true},
		{"roman paren", ShapeRoman, "XII) Appendix", 1, true},
		{"roman lowercase rejected", ShapeRoman, "iv. discussion", 0, false},
		{"roman single I", ShapeRoman, "I. Introduction", 1, true},
		{"roman single X", ShapeRoman, "X. Summary", 1, true},
		{"roman single C rejected", ShapeRoman, "C. Scope", 0, false},
		{"roman single D rejected", ShapeRoman, "D. Terms", 0, false},
		{"letter", ShapeLetter, "A. Scope", 1, true},
		{"letter C", ShapeLetter, "C. Scope", 1, true},
		{"letter no delimiter rejected", ShapeLetter, "About this guide", 0, false},
		{"circled", ShapeCircled, "① はじめに", 1, true},
		{"cjk chapter", ShapeCJKOrdinal, "第2章 関連研究", 1, true},
		{"cjk ideograph numeral", ShapeCJKOrdinal, "第三節 背景", 2, true},
		{"cjk item", ShapeCJKOrdinal, "第5条 罰則", 3, true},
		{"korean chapter", ShapeCJKOrdinal, "제1장 서론", 1, true},
		{"korean section", ShapeCJKOrdinal, "제2절 배경", 2, true},
		{"cjk missing unit rejected", ShapeCJKOrdinal, "第2", 0, false},
		{"arabic-indic depth 2", ShapeArabicIndic, "٢.١ مقدمة", 2, true},
		{"arabic-indic trailing sep", ShapeArabicIndic, "٢. مقدمة", 1, true},
		{"devanagari depth 2", ShapeDevanagari, "२.१ परिचय", 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth, ok := matchShape(tt.shape, tt.head)
			if ok != tt.wantOK || depth != tt.wantDepth {
				t.Errorf("matchShape(%v, %q) = (%d, %v), want (%d, %v)",
					tt.shape, tt.head, depth, ok, tt.wantDepth, tt.wantOK)
			}
		})
	}
}

func TestMatchNumberingUnlearnedShapes(t *testing.T) {
	// MatchNumbering consults only learned patterns: a perfectly well-formed
	// prefix contributes nothing if its shape never activated.
	var p Patterns
	if _, ok := p.MatchNumbering("1. Introduction"); ok {
		t.Error("unlearned shape matched")
	}

	p.Numbering = []NumberingPattern{{Shape: ShapeCJKOrdinal, MaxDepth: 2}}
	if _, ok := p.MatchNumbering("1. Introduction"); ok {
		t.Error("decimal matched through a cjk-only pattern set")
	}
	if depth, ok := p.MatchNumbering("第2章 関連研究"); !ok || depth != 1 {
		t.Errorf("cjk match = (%d, %v), want (1, true)", depth, ok)
	}
}

func TestDiscoverWeightTokens(t *testing.T) {
	frags := []fragment.TextFragment{
		makeFragment("1. Introduction", 18, "Arial-Bold", 0),
		makeFragment("This is a long body paragraph set in the regular face of the document.", 12, "Arial", 0),
		makeFragment("1.1 Background", 14, "Arial-Bold", 0),
	}
	baseline := EstimateBaseline(frags, 1.0)
	p := LearnPatterns(frags, baseline)

	if len(p.WeightTokens) != 1 || p.WeightTokens[0] != "bold" {
		t.Fatalf("WeightTokens = %v, want [bold]", p.WeightTokens)
	}
	if !p.IsBoldFont("Arial-Bold") {
		t.Error("IsBoldFont(Arial-Bold) = false")
	}
	if p.IsBoldFont("Arial") {
		t.Error("IsBoldFont(Arial) = true")
	}
}

func TestDiscoverWeightTokensBaselineFontExcluded(t *testing.T) {
	// "black" names the body face here, so it carries no weight evidence even
	// though it sounds heavy.
	frags := []fragment.TextFragment{
		makeFragment("Heading at display size here", 20, "Foundry-Black", 0),
		makeFragment("Body text in the same family, much longer so the face sets the baseline.", 10, "Foundry-Black", 0),
	}
	baseline := EstimateBaseline(frags, 1.0)
	toks := discoverWeightTokens(frags, baseline)
	if len(toks) != 0 {
		t.Errorf("tokens = %v, want none (all in baseline font)", toks)
	}
}

func TestDiscoverWeightTokensUniversalExcluded(t *testing.T) {
	// A token covering every rune in the document distinguishes nothing.
	frags := []fragment.TextFragment{
		makeFragment("short big line", 20, "Times-Bold", 0),
		makeFragment("long small body line in the very same weight as everything else here", 10, "Helvetica-Bold", 0),
	}
	baseline := EstimateBaseline(frags, 1.0)
	toks := discoverWeightTokens(frags, baseline)
	for _, tok := range toks {
		if tok == "bold" {
			t.Errorf("universal token %q learned", tok)
		}
	}
}

func TestTokenizeFontName(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"ArialNarrow-BoldMT", []string{"arial", "narrow", "bold"}},
		{"Times New Roman", []string{"times", "new", "roman"}},
		{"NotoSansCJK-Regular", []string{"noto", "sans", "cjk", "regular"}},
		{"F1", nil},
	}
	for _, tt := range tests {
		got := tokenizeFontName(tt.name)
		if len(got) != len(tt.want) {
			t.Errorf("tokenizeFontName(%q) = %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenizeFontName(%q) = %v, want %v", tt.name, got, tt.want)
				break
			}
		}
	}
}

func TestDiscoverCategories(t *testing.T) {
	baseline := Baseline{FontSize: 12, FontName: "Serif"}

	academic := []fragment.TextFragment{
		makeFragment("Abstract", 14, "Serif", 0),
		makeFragment("We present a method for inferring structure.", 12, "Serif", 0),
		makeFragment("References", 14, "Serif", 3),
	}
	p := LearnPatterns(academic, baseline)
	if !p.HasCategory(CategoryAcademic) {
		t.Error("academic vocabulary not detected")
	}
	if p.AllowsShortHeadings() {
		t.Error("academic document should not allow short headings")
	}

	// A single "form" hit in running prose must not flag the form category.
	prose := []fragment.TextFragment{
		makeFragment("The liquid takes the form of a thin film.", 12, "Serif", 0),
	}
	p = LearnPatterns(prose, baseline)
	if p.HasCategory(CategoryForm) {
		t.Error("one form keyword flagged the form category")
	}

	form := []fragment.TextFragment{
		makeFragment("Application Form", 16, "Serif", 0),
		makeFragment("Name:", 12, "Serif", 0),
		makeFragment("Date:", 12, "Serif", 0),
		makeFragment("Signature", 12, "Serif", 0),
	}
	p = LearnPatterns(form, baseline)
	if !p.HasCategory(CategoryForm) {
		t.Error("form vocabulary not detected")
	}
	if !p.AllowsShortHeadings() {
		t.Error("form document should allow short headings")
	}
}

func TestDiscoverCategoriesNormalized(t *testing.T) {
	// Fullwidth text is NFKC-folded before vocabulary lookup.
	frags := []fragment.TextFragment{
		makeFragment("ＡＢＳＴＲＡＣＴ", 14, "Mincho", 0),
		makeFragment("本文のテキストです。", 12, "Mincho", 0),
	}
	p := LearnPatterns(frags, Baseline{FontSize: 12, FontName: "Mincho"})
	if !p.HasCategory(CategoryAcademic) {
		t.Error("fullwidth ABSTRACT not detected after normalization")
	}
}
