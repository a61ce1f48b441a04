// Package config holds the tuning knobs for segmentation and subtitle
// generation. Values come from defaults overridden by environment
// variables; every override is bounds-checked and silently ignored when
// out of range.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Weights are the scoring shares used by the heuristic segmenter. A
// resolved Weights always reserves a fixed share for the language-content
// bonus and scales the other four down to make room.
type Weights struct {
	KeywordMatch         float64
	SentenceCompleteness float64
	DurationFit          float64
	SpeechQuality        float64
	LanguageContent      float64
}

const languageContentShare = 0.2

func DefaultWeights() Weights {
	return Weights{
		KeywordMatch:         0.3,
		SentenceCompleteness: 0.25,
		DurationFit:          0.25,
		SpeechQuality:        0.2,
	}
}

// Resolved folds the language-content share into the weight set. The four
// base weights are scaled by 1-share so the total stays at 1.0. Calling
// Resolved on an already-resolved set is a no-op.
func (w Weights) Resolved() Weights {
	if w.LanguageContent != 0 {
		return w
	}
	scale := 1 - languageContentShare
	return Weights{
		KeywordMatch:         w.KeywordMatch * scale,
		SentenceCompleteness: w.SentenceCompleteness * scale,
		DurationFit:          w.DurationFit * scale,
		SpeechQuality:        w.SpeechQuality * scale,
		LanguageContent:      languageContentShare,
	}
}

// Segmentation configures one heuristic segmentation run. Immutable once
// built; Weights must already be resolved.
type Segmentation struct {
	MinClip           time.Duration
	MaxClip           time.Duration
	TargetClip        time.Duration
	OverlapThreshold  float64
	Weights           Weights
	ImportantKeywords []string
}

func DefaultSegmentation() Segmentation {
	return Segmentation{
		MinClip:          15 * time.Second,
		MaxClip:          59 * time.Second,
		TargetClip:       45 * time.Second,
		OverlapThreshold: 0.1,
		Weights:          DefaultWeights().Resolved(),
	}
}

// SegmentationFromEnv applies environment overrides on top of the
// defaults.
func SegmentationFromEnv() Segmentation {
	c := DefaultSegmentation()
	c.MinClip = envSeconds("MIN_CLIP_DURATION", c.MinClip, 1, 600)
	c.MaxClip = envSeconds("MAX_CLIP_DURATION", c.MaxClip, 1, 600)
	c.TargetClip = envSeconds("TARGET_CLIP_DURATION", c.TargetClip, 1, 600)
	c.OverlapThreshold = envFloat("OVERLAP_THRESHOLD", c.OverlapThreshold, 0, 1)
	if v := os.Getenv("IMPORTANT_KEYWORDS"); v != "" {
		for _, kw := range strings.Split(v, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				c.ImportantKeywords = append(c.ImportantKeywords, kw)
			}
		}
	}
	return c
}

func (c Segmentation) Validate() error {
	if c.MinClip <= 0 {
		return errors.New("min clip duration must be > 0")
	}
	if c.MaxClip < c.MinClip {
		return errors.New("max clip duration must be >= min clip duration")
	}
	if c.TargetClip <= 0 {
		return errors.New("target clip duration must be > 0")
	}
	if c.OverlapThreshold < 0 || c.OverlapThreshold > 1 {
		return fmt.Errorf("overlap threshold %v outside [0,1]", c.OverlapThreshold)
	}
	return nil
}

// SubtitleMode selects the cue building strategy. It is threaded
// explicitly through the builder instead of being read from a process-wide
// toggle at call time.
type SubtitleMode int

const (
	ModeStandard SubtitleMode = iota
	ModeFastWord
)

func (m SubtitleMode) String() string {
	if m == ModeFastWord {
		return "fast-word"
	}
	return "standard"
}

// ParseSubtitleMode maps the historical SHORT_SUB_MODE values onto the
// enum. Anything unrecognized means standard mode.
func ParseSubtitleMode(s string) SubtitleMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fast", "rapid", "words":
		return ModeFastWord
	default:
		return ModeStandard
	}
}

type SubtitleOptions struct {
	Mode            SubtitleMode
	MaxCharsPerLine int
	MaxLines        int
	FastWord        FastWordOptions
}

type FastWordOptions struct {
	TargetWords int
	MinDuration time.Duration
	MaxDuration time.Duration
}

func DefaultSubtitleOptions() SubtitleOptions {
	return SubtitleOptions{
		Mode:            ModeStandard,
		MaxCharsPerLine: 40,
		MaxLines:        2,
		FastWord: FastWordOptions{
			TargetWords: 3,
			MinDuration: 350 * time.Millisecond,
			MaxDuration: 1200 * time.Millisecond,
		},
	}
}

// SubtitleOptionsFromEnv reads the mode toggle and fast-word tuning from
// the environment, with the documented bounds: words in [1,10], min in
// [0.1s,2.0s], max in [0.3s,3.5s].
func SubtitleOptionsFromEnv() SubtitleOptions {
	o := DefaultSubtitleOptions()
	o.Mode = ParseSubtitleMode(os.Getenv("SHORT_SUB_MODE"))
	o.FastWord.TargetWords = envInt("FAST_WORDS_TARGET", o.FastWord.TargetWords, 1, 10)
	o.FastWord.MinDuration = envSeconds("FAST_SUB_MIN", o.FastWord.MinDuration, 0.1, 2.0)
	o.FastWord.MaxDuration = envSeconds("FAST_SUB_MAX", o.FastWord.MaxDuration, 0.3, 3.5)
	o.FastWord = o.FastWord.Normalized()
	return o
}

// Normalized repairs an inverted min/max pair by pushing max above min.
func (o FastWordOptions) Normalized() FastWordOptions {
	if o.MinDuration >= o.MaxDuration {
		o.MaxDuration = o.MinDuration + 250*time.Millisecond
	}
	return o
}

// AI configures the model-assisted segmenter.
type AI struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	MaxClips    int
	MinClip     time.Duration
	MaxClip     time.Duration
	TargetClip  time.Duration
}

func DefaultAI() AI {
	return AI{
		Model:       "gpt-4o",
		MaxTokens:   4000,
		Temperature: 0.3,
		MaxClips:    5,
		MinClip:     15 * time.Second,
		MaxClip:     59 * time.Second,
		TargetClip:  35 * time.Second,
	}
}

func AIFromEnv() AI {
	c := DefaultAI()
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.Model = v
	}
	c.MaxClips = envInt("AI_MAX_CLIPS", c.MaxClips, 1, 20)
	return c
}

func EnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(name string, def, lo, hi int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(name)))
	if err != nil || v < lo || v > hi {
		return def
	}
	return v
}

func envFloat(name string, def, lo, hi float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(name)), 64)
	if err != nil || v < lo || v > hi {
		return def
	}
	return v
}

func envSeconds(name string, def time.Duration, lo, hi float64) time.Duration {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(name)), 64)
	if err != nil || v < lo || v > hi {
		return def
	}
	return time.Duration(v * float64(time.Second))
}
