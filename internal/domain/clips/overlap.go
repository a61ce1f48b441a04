package clips

import (
	"sort"
	"time"

	"github.com/Dreiko98/clipforge/internal/types"
)

// Overlap is the temporal Jaccard overlap of two candidates: intersection
// duration over union duration. 0 means disjoint, 1 identical spans.
func Overlap(a, b types.ClipCandidate) float64 {
	interStart := maxDur(a.Start, b.Start)
	interEnd := minDur(a.End, b.End)
	inter := interEnd - interStart
	if inter < 0 {
		inter = 0
	}

	union := maxDur(a.End, b.End) - minDur(a.Start, b.Start)
	if union == 0 {
		return 0
	}
	return inter.Seconds() / union.Seconds()
}

// suppressOverlaps keeps the best-scoring subset of candidates whose
// pairwise overlap stays below the threshold. Greedy by design: walk the
// candidates in descending score order and accept each one only if it
// clears every already-accepted candidate. First-accepted wins on ties;
// the sort is stable so equal scores keep their generation order. Not
// optimal for coverage or count, intentionally. O(n²), fine at the
// expected scale of tens of candidates.
func suppressOverlaps(candidates []types.ClipCandidate, threshold float64) []types.ClipCandidate {
	if len(candidates) == 0 {
		return nil
	}

	ranked := make([]types.ClipCandidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	accepted := make([]types.ClipCandidate, 0, len(ranked))
	for _, cand := range ranked {
		ok := true
		for _, a := range accepted {
			if Overlap(cand, a) >= threshold {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, cand)
		}
	}
	return accepted
}

func minDur(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func maxDur(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
