package rag

import "sort"

// FusionK is the reciprocal-rank-fusion constant. It controls how quickly
// lower ranks are discounted: each item at zero-based rank r contributes
// weight/(FusionK+r+1) to its fused score.
const FusionK = 60

// Default fusion weights for the dense and sparse rankings.
const (
	DefaultDenseWeight  = 0.6
	DefaultSparseWeight = 0.4
)

// Fuse merges two rankings of the same candidate space with reciprocal rank
// fusion. Items present in both lists accumulate contributions from both,
// which is what floats candidates confirmed by both strategies to the top.
// Duplicates are collapsed by document ID, keeping the payload of whichever
// list's copy was seen first. The output is sorted by fused score descending;
// ties keep first-seen order. Fuse is pure: it never touches an index.
func Fuse(listA, listB []SearchResult, weightA, weightB float64) []FusedResult {
	type fusionEntry struct {
		doc   Document
		score float64
	}

	byID := make(map[string]*fusionEntry)
	var ordered []*fusionEntry

	accumulate := func(list []SearchResult, weight float64) {
		for rank, item := range list {
			contribution := weight / float64(FusionK+rank+1)
			if entry, ok := byID[item.Document.ID]; ok {
				entry.score += contribution
				continue
			}
			entry := &fusionEntry{doc: item.Document, score: contribution}
			byID[item.Document.ID] = entry
			ordered = append(ordered, entry)
		}
	}

	accumulate(listA, weightA)
	accumulate(listB, weightB)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].score > ordered[j].score
	})

	results := make([]FusedResult, len(ordered))
	for i, entry := range ordered {
		results[i] = FusedResult{Document: entry.doc, Score: entry.score}
	}
	return results
}
