package docsift

import (
	"github.com/docsift/docsift/analyze"
)

// options holds per-document configuration for the fluent API.
type options struct {
	engine   analyze.Config
	validate bool
}

// defaultOptions returns the default document options.
func defaultOptions() options {
	return options{
		engine:   analyze.DefaultConfig(),
		validate: true,
	}
}

// MinScore sets the heading-candidate threshold.
func (d *Document) MinScore(score float64) *Document {
	d.options.engine.MinScore = score
	return d
}

// SizeGranularity sets the font-size rounding granularity, in points, used
// for baseline buckets and cluster signatures.
func (d *Document) SizeGranularity(points float64) *Document {
	d.options.engine.SizeGranularity = points
	return d
}

// SkipValidation disables the structural validation pass that normally runs
// before parsing a file.
func (d *Document) SkipValidation() *Document {
	d.options.validate = false
	return d
}
