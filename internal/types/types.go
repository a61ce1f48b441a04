package types

import "time"

type Transcript struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language,omitempty"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`

	// Whisper quality metrics. Pointers so that absent values keep their
	// documented defaults (-1.0 and 0.5) instead of decoding to zero.
	AvgLogprob   *float64 `json:"avg_logprob,omitempty"`
	NoSpeechProb *float64 `json:"no_speech_prob,omitempty"`
}

type Word struct {
	Start       float64  `json:"start"`
	End         float64  `json:"end"`
	Word        string   `json:"word"`
	Text        string   `json:"text,omitempty"`
	Probability *float64 `json:"probability,omitempty"`
}

// Value returns the word text, accepting either the "word" or "text" key
// used by different ASR outputs.
func (w Word) Value() string {
	if w.Word != "" {
		return w.Word
	}
	return w.Text
}

// ClipCandidate is a scored, time-bounded span of the source transcript
// proposed as a short-form clip.
type ClipCandidate struct {
	ID       string
	Start    time.Duration
	End      time.Duration
	Text     string
	Keywords []string
	Score    float64
	Meta     CandidateMeta
}

func (c ClipCandidate) Duration() time.Duration { return c.End - c.Start }

// CandidateMeta carries diagnostic fields attached at generation time.
type CandidateMeta struct {
	Strategy        string   `json:"strategy"`
	SegmentCount    int      `json:"segment_count,omitempty"`
	WordCount       int      `json:"word_count,omitempty"`
	Language        string   `json:"language,omitempty"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`

	AI *AIMeta `json:"ai,omitempty"`
}

// AIMeta holds the model's own description of a proposed clip. The clip
// text is always re-derived from the local transcript; the model prose
// lives here as metadata only.
type AIMeta struct {
	Title             string   `json:"title,omitempty"`
	ContentType       string   `json:"content_type,omitempty"`
	Hook              string   `json:"hook,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	ViralPotential    float64  `json:"viral_potential"`
	CoherenceScore    float64  `json:"coherence_score"`
	EngagementFactors []string `json:"engagement_factors,omitempty"`
}

// SubtitleCue is a single subtitle display unit. Times are relative to
// whatever timeline the producing stage used; Rebase translates them onto
// a clip-local timeline.
type SubtitleCue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

func (c SubtitleCue) Duration() time.Duration { return c.End - c.Start }

type Manifest struct {
	RunID string         `json:"run_id"`
	Input string         `json:"input"`
	Clips []ManifestClip `json:"clips"`
}

type ManifestClip struct {
	ID        string   `json:"id"`
	StartSec  float64  `json:"start_sec"`
	EndSec    float64  `json:"end_sec"`
	Score     float64  `json:"score"`
	Text      string   `json:"text"`
	Keywords  []string `json:"keywords,omitempty"`
	File      string   `json:"file"`
	Subtitles string   `json:"subtitles,omitempty"`
	SRT       string   `json:"srt,omitempty"`
}

// Dur converts seconds-as-float (the transcript JSON convention) to a
// time.Duration.
func Dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
