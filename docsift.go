// Package docsift provides a fluent API for inferring the hierarchical
// outline (title plus H1/H2/H3 headings) of PDF documents.
//
// Basic usage:
//
//	result, err := docsift.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Title)
//
// With options:
//
//	result, err := docsift.Open("report.pdf").
//	    MinScore(30).
//	    SkipValidation().
//	    Outline()
//
// Callers that already hold a fragment sequence (for instance from a custom
// decoder) can bypass file handling entirely:
//
//	result := docsift.FromFragments(fragments).Analyze()
//
// For advanced use cases, the lower-level analyze, decode, and batch packages
// are also available.
package docsift

import (
	"github.com/docsift/docsift/analyze"
	"github.com/docsift/docsift/decode"
	"github.com/docsift/docsift/fragment"
)

// Document is a fluently-configurable handle on one input document.
type Document struct {
	filename  string
	fragments []fragment.TextFragment
	options   options
}

// Open prepares a PDF file for outline inference. No I/O happens until a
// terminal operation such as Outline() or Fragments() is called.
func Open(filename string) *Document {
	return &Document{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromFragments prepares an already-decoded fragment sequence for analysis.
func FromFragments(fragments []fragment.TextFragment) *Document {
	return &Document{
		fragments: fragments,
		options:   defaultOptions(),
	}
}

// Outline decodes the document (if needed) and runs the full inference
// pipeline, returning the title and outline.
func (d *Document) Outline() (*analyze.Result, error) {
	frags, err := d.Fragments()
	if err != nil {
		return nil, err
	}
	analyzer := analyze.NewAnalyzerWithConfig(d.options.engine)
	return analyzer.Analyze(frags), nil
}

// Fragments returns the document's decoded fragment sequence.
func (d *Document) Fragments() ([]fragment.TextFragment, error) {
	if d.fragments != nil {
		return d.fragments, nil
	}
	dec := decode.NewDecoder(decode.WithValidation(d.options.validate))
	return dec.DecodeFile(d.filename)
}

// Analyze runs inference on a fragment-backed document. It panics if the
// document was created with Open; use Outline for file-backed documents.
func (d *Document) Analyze() *analyze.Result {
	if d.fragments == nil {
		panic("docsift: Analyze requires FromFragments; use Outline for files")
	}
	analyzer := analyze.NewAnalyzerWithConfig(d.options.engine)
	return analyzer.Analyze(d.fragments)
}

// Must is a helper that wraps a call returning (T, error) and panics if the
// error is non-nil. It is intended for scripts and tests.
//
// Example:
//
//	result := docsift.Must(docsift.Open("document.pdf").Outline())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
