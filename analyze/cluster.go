package analyze

import (
	"math"
	"sort"
)

// Level is an outline heading level. The scheme caps at three levels by
// design, matching the title/H1/H2/H3 output contract.
type Level int

const (
	LevelH1 Level = 1
	LevelH2 Level = 2
	LevelH3 Level = 3
)

// String returns the level's wire form ("H1", "H2", "H3").
func (l Level) String() string {
	switch l {
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	default:
		return "H3"
	}
}

// MarshalJSON encodes the level as its wire form, e.g. "H2".
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// levelForRank maps a cluster prominence rank to an outline level. Clusters
// beyond the third-ranked style all land at H3.
func levelForRank(rank int) Level {
	switch rank {
	case 0:
		return LevelH1
	case 1:
		return LevelH2
	default:
		return LevelH3
	}
}

// clusterKey is the style signature candidates are partitioned on: font size
// rounded to the configured granularity, plus the boldness flag. Two
// candidates join the same cluster iff their signatures are identical.
type clusterKey struct {
	size float64
	bold bool
}

// Cluster is a set of heading candidates sharing a style signature. Every
// candidate belongs to exactly one cluster.
type Cluster struct {
	// RepresentativeFontSize is the largest font size among members.
	RepresentativeFontSize float64

	// MaxScore is the highest heading score among members.
	MaxScore float64

	// Members indexes into the candidate slice, in document order.
	Members []int

	key clusterKey
}

// OutlineEntry is one final structural unit of the inferred outline.
type OutlineEntry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// BuildClusters partitions candidates by style signature in a single
// deterministic pass. Cluster order follows first appearance in document
// order, so identical inputs always produce identical partitions.
func BuildClusters(candidates []ScoredFragment, granularity float64) []Cluster {
	if granularity <= 0 {
		granularity = 1.0
	}

	index := make(map[clusterKey]int)
	var clusters []Cluster
	for i, c := range candidates {
		key := clusterKey{
			size: math.Round(c.Fragment.FontSize/granularity) * granularity,
			bold: c.Bold,
		}
		ci, ok := index[key]
		if !ok {
			ci = len(clusters)
			index[key] = ci
			clusters = append(clusters, Cluster{key: key})
		}
		cl := &clusters[ci]
		cl.Members = append(cl.Members, i)
		if c.Fragment.FontSize > cl.RepresentativeFontSize {
			cl.RepresentativeFontSize = c.Fragment.FontSize
		}
		if c.Score > cl.MaxScore {
			cl.MaxScore = c.Score
		}
	}
	return clusters
}

// AssignLevels ranks clusters by prominence and maps candidates to outline
// entries. Ranking is lexicographic on (representative font size, max score),
// descending: font size dominates, score breaks ties. When a candidate
// carries a matched numbering depth, that depth (clamped to [1,3]) overrides
// the cluster's size-based rank for that candidate alone: numbering is
// stronger structural evidence than font size, and a cluster may legitimately
// end up with members at different levels when their depths disagree.
//
// Entries are returned ordered by page, then by original document order.
func AssignLevels(candidates []ScoredFragment, clusters []Cluster) []OutlineEntry {
	if len(candidates) == 0 {
		return nil
	}

	ranked := make([]int, len(clusters))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		ca, cb := &clusters[ranked[a]], &clusters[ranked[b]]
		if ca.RepresentativeFontSize != cb.RepresentativeFontSize {
			return ca.RepresentativeFontSize > cb.RepresentativeFontSize
		}
		return ca.MaxScore > cb.MaxScore
	})

	rankOf := make([]int, len(clusters))
	for rank, ci := range ranked {
		rankOf[ci] = rank
	}

	levels := make([]Level, len(candidates))
	for ci := range clusters {
		for _, mi := range clusters[ci].Members {
			levels[mi] = levelForRank(rankOf[ci])
		}
	}
	for i, c := range candidates {
		if c.NumberingDepth > 0 {
			levels[i] = clampDepth(c.NumberingDepth)
		}
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		fa, fb := &candidates[order[a]].Fragment, &candidates[order[b]].Fragment
		if fa.PageIndex != fb.PageIndex {
			return fa.PageIndex < fb.PageIndex
		}
		return candidates[order[a]].Index < candidates[order[b]].Index
	})

	entries := make([]OutlineEntry, 0, len(candidates))
	for _, i := range order {
		entries = append(entries, OutlineEntry{
			Level: levels[i],
			Text:  stripDecorations(candidates[i].Fragment.Text),
			Page:  candidates[i].Fragment.PageIndex,
		})
	}
	return entries
}

// clampDepth converts a numbering depth to a level, flooring at H1 and
// capping at H3.
func clampDepth(depth int) Level {
	if depth < 1 {
		depth = 1
	}
	if depth > 3 {
		depth = 3
	}
	return Level(depth)
}
