package clips

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/textutil"
	"github.com/Dreiko98/clipforge/internal/types"
)

// Proposal is one clip suggested by the model, as it appears in the JSON
// response.
type Proposal struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	StartTime         float64  `json:"start_time"`
	EndTime           float64  `json:"end_time"`
	Duration          float64  `json:"duration"`
	ContentType       string   `json:"content_type"`
	Hook              string   `json:"hook"`
	Summary           string   `json:"summary"`
	Keywords          []string `json:"keywords"`
	ViralPotential    float64  `json:"viral_potential"`
	CoherenceScore    float64  `json:"coherence_score"`
	EngagementFactors []string `json:"engagement_factors"`
}

// ProposalSet is the full structured response expected from the model.
type ProposalSet struct {
	Clips           []Proposal `json:"clips"`
	AnalysisNotes   string     `json:"analysis_notes"`
	TotalClipsFound int        `json:"total_clips_found"`
}

// FromProposals validates model proposals against the local transcript and
// converts the survivors into candidates. A malformed or out-of-bounds
// proposal is dropped and logged, never fatal. The clip text is re-derived
// from the transcript segments overlapping the proposed window, so a
// hallucinated summary cannot become the authoritative clip text. No
// overlap suppression happens here; the model is trusted to propose
// distinct clips.
func FromProposals(set ProposalSet, tr types.Transcript, cfg config.AI) []types.ClipCandidate {
	candidates := make([]types.ClipCandidate, 0, len(set.Clips))

	for _, p := range set.Clips {
		if p.ID == "" || p.EndTime <= p.StartTime {
			log.Warn().Str("clip", p.ID).Msg("skipping malformed AI clip")
			continue
		}
		duration := p.EndTime - p.StartTime
		if duration < cfg.MinClip.Seconds() || duration > cfg.MaxClip.Seconds() {
			log.Warn().Str("clip", p.ID).Float64("duration", duration).Msg("skipping AI clip with out-of-range duration")
			continue
		}

		candidates = append(candidates, types.ClipCandidate{
			ID:       p.ID,
			Start:    types.Dur(p.StartTime),
			End:      types.Dur(p.EndTime),
			Text:     textForRange(tr.Segments, p.StartTime, p.EndTime),
			Keywords: p.Keywords,
			Score:    blendedScore(p, duration, cfg),
			Meta: types.CandidateMeta{
				Strategy: "ai",
				Language: tr.Language,
				AI: &types.AIMeta{
					Title:             p.Title,
					ContentType:       p.ContentType,
					Hook:              p.Hook,
					Summary:           p.Summary,
					ViralPotential:    p.ViralPotential,
					CoherenceScore:    p.CoherenceScore,
					EngagementFactors: p.EngagementFactors,
				},
			},
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })
	return candidates
}

// textForRange concatenates the cleaned text of every segment overlapping
// the window.
func textForRange(segs []types.Segment, start, end float64) string {
	var parts []string
	for _, seg := range segs {
		if seg.End >= start && seg.Start <= end {
			parts = append(parts, textutil.Clean(seg.Text))
		}
	}
	return strings.Join(parts, " ")
}

// blendedScore mixes the model's own assessment with a local duration-fit
// term: 40% viral potential, 30% coherence, 30% duration. Model scores are
// clamped to [0,100] before blending.
func blendedScore(p Proposal, duration float64, cfg config.AI) float64 {
	viral := clamp(p.ViralPotential, 0, 100)
	coherence := clamp(p.CoherenceScore, 0, 100)

	target := cfg.TargetClip.Seconds()
	durationScore := math.Max(0, 100-(math.Abs(duration-target)/target)*50)

	return round2(viral*0.4 + coherence*0.3 + durationScore*0.3)
}

// PromptLines renders the transcript as "[12.3s] text" lines, one per
// segment, the shape the model prompt expects.
func PromptLines(segs []types.Segment) string {
	var b strings.Builder
	for i, seg := range segs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%.1fs] %s", seg.Start, textutil.Clean(seg.Text))
	}
	return b.String()
}
