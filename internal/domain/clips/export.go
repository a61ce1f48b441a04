package clips

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Dreiko98/clipforge/internal/textutil"
	"github.com/Dreiko98/clipforge/internal/types"
)

// CandidateJSON is the serialized form of a candidate, float seconds at
// the boundary as downstream tooling expects.
type CandidateJSON struct {
	ID                string              `json:"id"`
	StartTime         float64             `json:"start_time"`
	EndTime           float64             `json:"end_time"`
	Duration          float64             `json:"duration"`
	FormattedDuration string              `json:"formatted_duration"`
	Text              string              `json:"text"`
	Keywords          []string            `json:"keywords"`
	Score             float64             `json:"score"`
	Metadata          types.CandidateMeta `json:"metadata"`
}

// ExportFile is the candidates JSON document written next to a transcript.
type ExportFile struct {
	RunID           string          `json:"run_id,omitempty"`
	GeneratedAt     time.Time       `json:"generated_at"`
	TotalCandidates int             `json:"total_candidates"`
	Candidates      []CandidateJSON `json:"candidates"`
}

// ToJSON converts a candidate to its export form.
func ToJSON(c types.ClipCandidate) CandidateJSON {
	return CandidateJSON{
		ID:                c.ID,
		StartTime:         c.Start.Seconds(),
		EndTime:           c.End.Seconds(),
		Duration:          c.Duration().Seconds(),
		FormattedDuration: textutil.FormatTimestamp(c.Duration()),
		Text:              c.Text,
		Keywords:          c.Keywords,
		Score:             c.Score,
		Metadata:          c.Meta,
	}
}

// WriteCandidates writes the export document for a candidate list.
func WriteCandidates(path, runID string, candidates []types.ClipCandidate) error {
	doc := ExportFile{
		RunID:           runID,
		GeneratedAt:     time.Now().UTC(),
		TotalCandidates: len(candidates),
		Candidates:      make([]CandidateJSON, 0, len(candidates)),
	}
	for _, c := range candidates {
		doc.Candidates = append(doc.Candidates, ToJSON(c))
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal candidates: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}
