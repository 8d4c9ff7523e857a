// Package triage filters, scores and ranks raw search results into the short
// candidate list the assembler turns into streams.
package triage

import (
	"sort"

	"easyfrench/pkg/config"
	"easyfrench/pkg/easynews"
	"easyfrench/pkg/quality"
)

// Candidate is a search result that survived filtering, with its ranking
// score and detected tier. The score is internal and never serialized.
type Candidate struct {
	Record easynews.Record
	Tier   quality.Tier
	Score  float64
}

// Filter applies the predicate chain (filename present, French keyword,
// minimum quality tier), scores the survivors, sorts by descending score and
// caps the list at cfg.MaxResults. The sort is stable so ties keep the
// backend's order.
func Filter(records []easynews.Record, cfg config.Config) []Candidate {
	candidates := make([]Candidate, 0, len(records))

	for _, rec := range records {
		if rec.Filename == "" {
			continue
		}
		if !quality.IsFrench(rec.Filename) {
			continue
		}
		tier := quality.DetectTier(rec.Filename)
		if tier < cfg.MinQuality {
			continue
		}
		candidates = append(candidates, Candidate{
			Record: rec,
			Tier:   tier,
			Score:  quality.Score(rec.Filename),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > cfg.MaxResults {
		candidates = candidates[:cfg.MaxResults]
	}

	return candidates
}
