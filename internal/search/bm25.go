package search

import (
	"math"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// BM25 parameters fixed by spec.md §4.3.2.
const (
	bm25K1 = 1.5
	bm25B  = 0.75

	// titleWeight is the fixed multiplier applied to title tokens when
	// computing term frequency and document length (spec.md §4.3.1 step 5).
	titleWeight = 2.0
)

// candidateStats is the small per-conversation statistics table carried
// between the two BM25 passes (spec.md §4.3.2, §9): document length and
// term frequency for each query keyword token, nothing else.
type candidateStats struct {
	docLen float64
	tf     map[string]float64 // keyword token -> weighted frequency within this candidate
}

// buildCandidateStats computes docLen and per-keyword tf for one candidate,
// weighting title token occurrences by titleWeight.
func buildCandidateStats(title string, msgs []model.Message, keywords []string) candidateStats {
	counts := make(map[string]float64)
	var docLen float64

	for _, tok := range Tokenize(title) {
		counts[tok] += titleWeight
		docLen += titleWeight
	}
	for _, m := range msgs {
		for _, tok := range Tokenize(m.Content) {
			counts[tok]++
			docLen++
		}
	}

	tf := make(map[string]float64, len(keywords))
	for _, k := range keywords {
		tf[k] = counts[normalizeKeyword(k)]
	}
	return candidateStats{docLen: docLen, tf: tf}
}

func normalizeKeyword(k string) string {
	toks := Tokenize(k)
	if len(toks) == 0 {
		return ""
	}
	return toks[0]
}

// scoreAll computes raw BM25 scores for every candidate and then
// normalizes them into [0,1] by dividing by the maximum raw score in the
// set (spec.md §4.3.2). If keywords is empty, every score is 0 and no
// normalization occurs.
func scoreAll(stats []candidateStats, keywords []string) []float64 {
	raw := make([]float64, len(stats))
	if len(keywords) == 0 || len(stats) == 0 {
		return raw
	}

	n := float64(len(stats))
	avgdl := averageDocLen(stats)

	idf := make(map[string]float64, len(keywords))
	for _, k := range keywords {
		nk := normalizeKeyword(k)
		docsWithTerm := 0.0
		for _, s := range stats {
			if s.tf[k] > 0 {
				docsWithTerm++
			}
		}
		idf[nk] = math.Log((n-docsWithTerm+0.5)/(docsWithTerm+0.5) + 1)
	}

	maxRaw := 0.0
	for i, s := range stats {
		var score float64
		for _, k := range keywords {
			tf := s.tf[k]
			if tf == 0 {
				continue
			}
			denom := tf + bm25K1*(1-bm25B+bm25B*s.docLen/avgdl)
			score += idf[normalizeKeyword(k)] * tf * (bm25K1 + 1) / denom
		}
		raw[i] = score
		if score > maxRaw {
			maxRaw = score
		}
	}

	if maxRaw <= 0 {
		return raw
	}
	out := make([]float64, len(raw))
	for i, s := range raw {
		out[i] = s / maxRaw
	}
	return out
}

func averageDocLen(stats []candidateStats) float64 {
	if len(stats) == 0 {
		return 0
	}
	var total float64
	for _, s := range stats {
		total += s.docLen
	}
	avg := total / float64(len(stats))
	if avg == 0 {
		return 1 // avoid division by zero for all-empty candidates
	}
	return avg
}
