// Package analyze infers the hierarchical outline of a document (title plus
// H1/H2/H3 headings) from a flat sequence of positioned, styled text
// fragments.
//
// The pipeline is a fixed series of pure passes over one document's fragments:
//
//	fragments → baseline estimation → pattern learning → heading scoring →
//	clustering and level assignment → title selection → (title, outline)
//
// No state survives between documents. Every numbering convention, font-weight
// keyword, and content-category hit is learned from the document at hand and
// discarded with it, which keeps parallel analyses of different documents
// fully independent.
//
// Basic usage:
//
//	result := analyze.NewAnalyzer().Analyze(fragments)
//	fmt.Println(result.Title)
//	for _, e := range result.Outline {
//	    fmt.Println(e.Level, e.Text, e.Page)
//	}
package analyze
