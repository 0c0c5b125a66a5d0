// Package decode turns PDF files into the positioned, styled text fragments
// the analysis engine consumes. It is the engine's external input
// collaborator: everything downstream of this package is pure computation.
package decode

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"rsc.io/pdf"

	"github.com/docsift/docsift/fragment"
)

// Decoder reads PDF files and emits fragment sequences. The zero value is not
// usable; create one with NewDecoder.
type Decoder struct {
	logger *slog.Logger

	// validate runs a structural validation pass (pdfcpu) before parsing.
	validate bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for per-page warnings.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) { d.logger = l }
}

// WithValidation toggles the pdfcpu validation pass run before parsing.
// Validation catches structurally broken files early with a clearer error
// than a mid-parse failure.
func WithValidation(v bool) Option {
	return func(d *Decoder) { d.validate = v }
}

// NewDecoder creates a decoder. By default it validates files before parsing
// and logs through slog.Default().
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		logger:   slog.Default(),
		validate: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// PageCount returns the number of pages in the PDF without a full parse.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count %s: %w", path, err)
	}
	return n, nil
}

// DecodeFile extracts the full ordered fragment sequence from a PDF file.
// Fragments are ordered by page, then top-to-bottom, left-to-right within a
// page. Pages that fail to parse are skipped with a warning rather than
// failing the document; a document where every page fails yields an empty
// sequence and no error.
func (d *Decoder) DecodeFile(path string) ([]fragment.TextFragment, error) {
	if d.validate {
		if err := api.ValidateFile(path, nil); err != nil {
			return nil, fmt.Errorf("validate %s: %w", path, err)
		}
	}

	r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var fragments []fragment.TextFragment
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageFrags, err := d.decodePage(page, pageNum-1)
		if err != nil {
			d.logger.Warn("skipping unreadable page",
				"file", path, "page", pageNum, "error", err)
			continue
		}
		fragments = append(fragments, pageFrags...)
	}
	return fragments, nil
}

// decodePage extracts one page's fragments. The rsc.io/pdf content walker
// panics on some malformed content streams; the recover here converts that
// into a per-page error so one bad page cannot take down the document.
func (d *Decoder) decodePage(page pdf.Page, pageIndex int) (frags []fragment.TextFragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			frags, err = nil, fmt.Errorf("content stream: %v", r)
		}
	}()

	width, height := pageSize(page)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("page has no usable MediaBox")
	}

	content := page.Content()
	runs := assembleRuns(content.Text)

	frags = make([]fragment.TextFragment, 0, len(runs))
	for _, run := range runs {
		text := strings.TrimSpace(run.text.String())
		if text == "" {
			continue
		}
		// Convert from PDF bottom-up coordinates to the top-origin system
		// the fragment model uses. The glyph baseline sits at run.y; the
		// box top is approximated one em above it.
		frags = append(frags, fragment.TextFragment{
			Text:     text,
			FontSize: run.fontSize,
			FontName: run.font,
			BBox: fragment.BBox{
				X0: run.x0,
				Y0: height - run.y - run.fontSize,
				X1: run.x1,
				Y1: height - run.y,
			},
			PageIndex:  pageIndex,
			PageWidth:  width,
			PageHeight: height,
		})
	}

	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].BBox.Y0 != frags[j].BBox.Y0 {
			return frags[i].BBox.Y0 < frags[j].BBox.Y0
		}
		return frags[i].BBox.X0 < frags[j].BBox.X0
	})
	return frags, nil
}

// textRun accumulates adjacent show-text operations that share a style and a
// baseline. rsc.io/pdf reports text per show operation, frequently a single
// word or even a single glyph; runs reassemble those into line-level spans.
type textRun struct {
	text     strings.Builder
	font     string
	fontSize float64
	x0, x1   float64
	y        float64
}

// assembleRuns merges consecutive text operations into line runs. Two
// operations join the same run when they share font and size, sit on the same
// baseline (within half a point), and the horizontal gap between them is
// small relative to the font size.
func assembleRuns(texts []pdf.Text) []*textRun {
	var runs []*textRun
	var cur *textRun

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if cur != nil && sameRun(cur, t) {
			gap := t.X - cur.x1
			if gap > t.FontSize*0.2 {
				cur.text.WriteByte(' ')
			}
			cur.text.WriteString(t.S)
			if end := t.X + t.W; end > cur.x1 {
				cur.x1 = end
			}
			continue
		}
		cur = &textRun{
			font:     t.Font,
			fontSize: t.FontSize,
			x0:       t.X,
			x1:       t.X + t.W,
			y:        t.Y,
		}
		cur.text.WriteString(t.S)
		runs = append(runs, cur)
	}
	return runs
}

// sameRun reports whether the text operation continues the current run.
func sameRun(run *textRun, t pdf.Text) bool {
	if t.Font != run.font || t.FontSize != run.fontSize {
		return false
	}
	dy := t.Y - run.y
	if dy < 0 {
		dy = -dy
	}
	if dy > 0.5 {
		return false
	}
	gap := t.X - run.x1
	return gap > -t.FontSize && gap < t.FontSize*2
}

// pageSize resolves the page's MediaBox, walking up the page tree for
// inherited values, and returns its width and height.
func pageSize(page pdf.Page) (width, height float64) {
	box := page.V.Key("MediaBox")
	parent := page.V.Key("Parent")
	for box.IsNull() && !parent.IsNull() {
		box = parent.Key("MediaBox")
		parent = parent.Key("Parent")
	}
	if box.IsNull() || box.Len() < 4 {
		return 0, 0
	}
	x0 := box.Index(0).Float64()
	y0 := box.Index(1).Float64()
	x1 := box.Index(2).Float64()
	y1 := box.Index(3).Float64()
	return x1 - x0, y1 - y0
}
