package clips

import (
	"math"
	"regexp"
	"strings"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/types"
)

var reSentenceEnd = regexp.MustCompile(`[.!?]$`)

// hanging conjunctions a standalone clip should not open with
var hangingStarters = map[string]struct{}{
	"and": {}, "but": {}, "or": {}, "so": {}, "then": {}, "also": {}, "however": {},
}

// scoreCandidate computes the weighted 0-100 quality score for one
// candidate. All sub-scores are normalized to [0,1] before weighting.
func scoreCandidate(window []types.Segment, text string, keywords []string, durationSec float64, cfg config.Segmentation) float64 {
	w := cfg.Weights

	score := keywordMatchScore(keywords, cfg.ImportantKeywords)*w.KeywordMatch +
		completenessScore(text)*w.SentenceCompleteness +
		durationFitScore(durationSec, cfg.TargetClip.Seconds())*w.DurationFit +
		speechQuality(window)*w.SpeechQuality +
		languageBonus(text)*w.LanguageContent

	return round2(score * 100)
}

// keywordMatchScore is the ratio of configured important keywords present
// in the candidate.
func keywordMatchScore(keywords, important []string) float64 {
	if len(important) == 0 {
		return 0
	}
	present := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		present[kw] = struct{}{}
	}
	matches := 0
	for _, kw := range important {
		if _, ok := present[strings.ToLower(kw)]; ok {
			matches++
		}
	}
	return math.Min(float64(matches)/float64(len(important)), 1.0)
}

func completenessScore(text string) float64 {
	if isCompleteThought(text) {
		return 1.0
	}
	return 0.5
}

// durationFitScore decays linearly with the distance from the target
// duration, reaching zero at twice the target.
func durationFitScore(durationSec, targetSec float64) float64 {
	return math.Max(0, 1.0-math.Abs(durationSec-targetSec)/targetSec)
}

// speechQuality averages the normalized Whisper log-probability and the
// inverted no-speech probability across the window's segments. Segments
// without metrics fall back to avg_logprob=-1 and no_speech_prob=0.5.
func speechQuality(window []types.Segment) float64 {
	if len(window) == 0 {
		return 0
	}

	var total float64
	for _, seg := range window {
		avgLogprob := -1.0
		if seg.AvgLogprob != nil {
			avgLogprob = *seg.AvgLogprob
		}
		probScore := clamp(avgLogprob+1.0, 0, 1)

		noSpeech := 0.5
		if seg.NoSpeechProb != nil {
			noSpeech = *seg.NoSpeechProb
		}

		total += probScore + (1.0 - noSpeech)
	}
	return total / float64(2*len(window))
}

// Common Spanish function words plus a few domain terms. Substring
// containment on purpose: inflected forms still match.
var spanishWords = []string{
	"el", "la", "de", "que", "y", "a", "en", "un", "es", "se", "no", "te", "lo", "le",
	"da", "su", "por", "son", "con", "para", "al", "del", "los", "las", "pero", "más",
	"hay", "muy", "todo", "ser", "ya", "tiene", "así", "puede", "sus", "está", "me",
	"si", "bien", "dijo", "hacer", "ese", "esta", "vez", "años", "hasta", "donde",
	"porque", "mismo", "entonces", "nosotros", "vamos", "tenemos", "cosa", "tiempo",
	"programación", "código", "español", "idioma", "lenguaje", "desarrolladores",
}

var spanishPatterns = []string{
	"que ", " es ", " se ", " me ", " te ", " le ", " no ", " sí", " muy ",
}

// languageBonus scores how strongly the text reads as Spanish: the ratio
// of tokens containing a function word, plus up to 0.3 for typical
// patterns, capped at 1.0.
func languageBonus(text string) float64 {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)
	if len(words) == 0 {
		return 0
	}

	matched := 0
	for _, word := range words {
		for _, sw := range spanishWords {
			if strings.Contains(word, sw) {
				matched++
				break
			}
		}
	}
	ratio := float64(matched) / float64(len(words))

	patternHits := 0
	for _, p := range spanishPatterns {
		if strings.Contains(lower, p) {
			patternHits++
		}
	}
	patternBonus := math.Min(float64(patternHits)*0.1, 0.3)

	return math.Min(ratio+patternBonus, 1.0)
}

func isSentenceBoundary(text string) bool {
	return reSentenceEnd.MatchString(strings.TrimSpace(text))
}

// isCompleteThought requires terminal punctuation, at least five words and
// no hanging conjunction at the start.
func isCompleteThought(text string) bool {
	text = strings.TrimSpace(text)
	if !reSentenceEnd.MatchString(text) {
		return false
	}
	words := strings.Fields(text)
	if len(words) < 5 {
		return false
	}
	_, hanging := hangingStarters[strings.ToLower(words[0])]
	return !hanging
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
