package analyze

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/docsift/docsift/fragment"
)

func frag(text string, size float64, font string, page int, x0, y0, x1 float64) fragment.TextFragment {
	return fragment.TextFragment{
		Text:       text,
		FontSize:   size,
		FontName:   font,
		BBox:       fragment.BBox{X0: x0, Y0: y0, X1: x1, Y1: y0 + size},
		PageIndex:  page,
		PageWidth:  612,
		PageHeight: 792,
	}
}

// reportFragments is a small single-page document with one display heading,
// a body paragraph, and one numbered subsection.
func reportFragments() []fragment.TextFragment {
	return []fragment.TextFragment{
		frag("1. Introduction", 18, "Arial-Bold", 0, 206, 72, 406),
		frag("This is body text that goes on for a while.", 12, "Arial", 0, 72, 120, 540),
		frag("1.1 Background", 14, "Arial-Bold", 0, 72, 200, 172),
	}
}

func TestAnalyzeReport(t *testing.T) {
	result := NewAnalyzer().Analyze(reportFragments())

	if result.Title != "1. Introduction" {
		t.Errorf("Title = %q, want %q", result.Title, "1. Introduction")
	}
	want := []OutlineEntry{
		{Level: LevelH2, Text: "1.1 Background", Page: 0},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
}

func TestAnalyzeTitleNotInOutline(t *testing.T) {
	result := NewAnalyzer().Analyze(reportFragments())
	for _, e := range result.Outline {
		if e.Text == result.Title {
			t.Errorf("title %q duplicated as outline entry", result.Title)
		}
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	result := NewAnalyzer().Analyze(nil)
	if result.Title != "" {
		t.Errorf("Title = %q, want empty", result.Title)
	}
	if result.Outline == nil || len(result.Outline) != 0 {
		t.Errorf("Outline = %v, want empty non-nil slice", result.Outline)
	}
	if !result.Empty() {
		t.Error("Empty() = false for empty result")
	}
}

func TestAnalyzeMalformedExcluded(t *testing.T) {
	frags := reportFragments()
	frags = append(frags,
		fragment.TextFragment{Text: "", FontSize: 12, PageWidth: 612, PageHeight: 792},
		fragment.TextFragment{Text: "no size", FontSize: 0, PageWidth: 612, PageHeight: 792},
		fragment.TextFragment{Text: "no page dims", FontSize: 12},
	)

	clean := NewAnalyzer().Analyze(reportFragments())
	dirty := NewAnalyzer().Analyze(frags)
	if !reflect.DeepEqual(clean, dirty) {
		t.Errorf("malformed fragments changed the result: %+v vs %+v", dirty, clean)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := NewAnalyzer()
	first, err := json.Marshal(a.Analyze(reportFragments()))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(a.Analyze(reportFragments()))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("repeated analysis differs:\n%s\n%s", first, second)
	}
}

func TestAnalyzeCJKDocument(t *testing.T) {
	frags := []fragment.TextFragment{
		frag("機械学習概論", 22, "Mincho", 0, 240, 100, 372),
		frag("この資料は機械学習の基礎を扱います。", 10, "Mincho", 0, 72, 160, 540),
		frag("まず全体の構成を説明します。", 10, "Mincho", 0, 72, 175, 540),
		frag("各章は独立して読めるようになっています。", 10, "Mincho", 0, 72, 190, 540),
		frag("第1章 序論", 16, "Mincho", 1, 72, 80, 200),
		frag("機械学習の定義と歴史について述べます。", 10, "Mincho", 1, 72, 130, 540),
		frag("第2章 関連研究", 16, "Mincho", 1, 72, 180, 220),
		frag("代表的な先行研究を概観します。", 10, "Mincho", 1, 72, 230, 540),
		frag("第1節 背景", 16, "Mincho", 2, 72, 80, 200),
		frag("研究の背景となる課題を整理します。", 10, "Mincho", 2, 72, 130, 540),
	}

	result := NewAnalyzer().Analyze(frags)

	if result.Title != "機械学習概論" {
		t.Errorf("Title = %q, want %q", result.Title, "機械学習概論")
	}
	want := []OutlineEntry{
		{Level: LevelH1, Text: "第1章 序論", Page: 1},
		{Level: LevelH1, Text: "第2章 関連研究", Page: 1},
		{Level: LevelH2, Text: "第1節 背景", Page: 2},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
}

func TestAnalyzeUniformDocument(t *testing.T) {
	// Every fragment shares the body style; only structural evidence (numbering,
	// casing, the decoder's weight hint) can separate headings out.
	mk := func(text string, page int, y0 float64, bold bool) fragment.TextFragment {
		f := frag(text, 12, "Courier", page, 72, y0, 540)
		f.Bold = bold
		return f
	}
	frags := []fragment.TextFragment{
		mk("1. SCOPE", 0, 72, true),
		mk("This standard applies to every document produced by the working group.", 0, 120, false),
		mk("Requirements are stated in imperative language throughout this text.", 0, 140, false),
		mk("2. REFERENCES", 0, 200, true),
		mk("Each normative reference is listed with its publication year attached.", 0, 250, false),
	}

	result := NewAnalyzer().Analyze(frags)

	// "1. SCOPE" takes the title slot; "2. REFERENCES" remains in the outline
	// at depth 1.
	if result.Title != "1. SCOPE" {
		t.Errorf("Title = %q, want %q", result.Title, "1. SCOPE")
	}
	want := []OutlineEntry{
		{Level: LevelH1, Text: "2. REFERENCES", Page: 0},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
}

func TestAnalyzeDeepNumbering(t *testing.T) {
	frags := []fragment.TextFragment{
		frag("Benchmark Report", 24, "Times-Bold", 0, 206, 72, 406),
		frag("All measurements were collected on identical hardware configurations.", 10, "Times", 0, 72, 130, 540),
		frag("2.1.3 Latency Distribution", 16, "Times-Bold", 0, 72, 200, 300),
		frag("Latency percentiles are reported per run in the tables that follow.", 10, "Times", 0, 72, 260, 540),
		frag("2.1.4 Throughput Ceiling", 16, "Times-Bold", 1, 72, 80, 300),
		frag("Throughput saturates once the worker pool is fully occupied.", 10, "Times", 1, 72, 140, 540),
	}

	result := NewAnalyzer().Analyze(frags)

	if result.Title != "Benchmark Report" {
		t.Errorf("Title = %q, want %q", result.Title, "Benchmark Report")
	}
	want := []OutlineEntry{
		{Level: LevelH3, Text: "2.1.3 Latency Distribution", Page: 0},
		{Level: LevelH3, Text: "2.1.4 Throughput Ceiling", Page: 1},
	}
	if !reflect.DeepEqual(result.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", result.Outline, want)
	}
}

func TestAnalyzerConfigDefaults(t *testing.T) {
	a := NewAnalyzerWithConfig(Config{})
	got := a.Config()
	want := DefaultConfig()
	if got != want {
		t.Errorf("Config() = %+v, want defaults %+v", got, want)
	}

	a = NewAnalyzerWithConfig(Config{MinScore: 40, SizeGranularity: 0.5})
	if got := a.Config(); got.MinScore != 40 || got.SizeGranularity != 0.5 {
		t.Errorf("Config() = %+v, want MinScore 40, SizeGranularity 0.5", got)
	}
}

func TestAnalyzeMinScoreConfigurable(t *testing.T) {
	// Raising the threshold above the subsection's score empties the outline
	// without disturbing the title.
	a := NewAnalyzerWithConfig(Config{MinScore: 50})
	result := a.Analyze(reportFragments())
	if result.Title != "1. Introduction" {
		t.Errorf("Title = %q, want %q", result.Title, "1. Introduction")
	}
	if len(result.Outline) != 0 {
		t.Errorf("Outline = %+v, want empty at MinScore 50", result.Outline)
	}
}
