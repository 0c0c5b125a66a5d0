package analyze

import (
	"github.com/docsift/docsift/fragment"
)

// Config holds the engine's tunable parameters. The scoring weights are fixed
// constants of the engine and deliberately not configurable.
type Config struct {
	// MinScore is the minimum heading-likelihood score for a fragment to
	// become a heading candidate.
	MinScore float64

	// SizeGranularity is the rounding granularity, in points, used to bucket
	// font sizes for baseline estimation and cluster signatures.
	SizeGranularity float64
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MinScore:        25.0,
		SizeGranularity: 1.0,
	}
}

// Result is the outcome of analyzing one document: the selected title (empty
// when none was found) and the inferred outline in reading order.
type Result struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// Empty reports whether analysis produced neither a title nor any outline
// entries. This is the engine's only upward failure signal; analysis itself
// never faults.
func (r *Result) Empty() bool {
	return r.Title == "" && len(r.Outline) == 0
}

// Analyzer runs the full structure-inference pipeline for single documents.
// An Analyzer is stateless between calls and safe for concurrent use; all
// per-document state (baseline, learned patterns, candidates) lives on the
// stack of each Analyze call.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer with default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with the given configuration.
// Zero values fall back to the defaults.
func NewAnalyzerWithConfig(config Config) *Analyzer {
	def := DefaultConfig()
	if config.MinScore <= 0 {
		config.MinScore = def.MinScore
	}
	if config.SizeGranularity <= 0 {
		config.SizeGranularity = def.SizeGranularity
	}
	return &Analyzer{config: config}
}

// Config returns the analyzer's effective configuration.
func (a *Analyzer) Config() Config {
	return a.config
}

// Analyze infers the title and outline for one document from its ordered
// fragment sequence. It is a pure function of its input: no I/O, no shared
// state, and identical input yields byte-identical output. Malformed
// fragments are dropped rather than failing the document; an empty (or
// fully-malformed) document yields an empty result.
func (a *Analyzer) Analyze(fragments []fragment.TextFragment) *Result {
	fragments = fragment.Sanitize(fragments)
	if len(fragments) == 0 {
		return &Result{Outline: []OutlineEntry{}}
	}

	baseline := EstimateBaseline(fragments, a.config.SizeGranularity)
	patterns := LearnPatterns(fragments, baseline)

	scorer := NewScorer(fragments, baseline, &patterns)
	scored := scorer.ScoreAll(fragments)

	titleIdx := SelectTitle(scored, a.config.MinScore)
	title := ""
	if titleIdx >= 0 {
		title = stripDecorations(scored[titleIdx].Fragment.Text)
	}

	candidates := Candidates(scored, a.config.MinScore)
	if titleIdx >= 0 {
		// The title fragment never doubles as an outline entry.
		trimmed := candidates[:0]
		for _, c := range candidates {
			if c.Index != scored[titleIdx].Index {
				trimmed = append(trimmed, c)
			}
		}
		candidates = trimmed
	}

	clusters := BuildClusters(candidates, a.config.SizeGranularity)
	outline := AssignLevels(candidates, clusters)
	if outline == nil {
		outline = []OutlineEntry{}
	}

	return &Result{Title: title, Outline: outline}
}
