// Package textutil has the text helpers shared by the segmenter and the
// subtitle builders: cleanup, keyword extraction and timestamp
// formatting.
package textutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)
	// Keep letters, digits, whitespace and basic punctuation; everything
	// else becomes a space.
	reDisallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?¿¡\-'"]`)
	reCommaLike  = regexp.MustCompile(`[,;]`)
	rePeriodLike = regexp.MustCompile(`[.!?¿¡]`)
	reNonWord    = regexp.MustCompile(`[^\p{L}\p{N}_]`)
)

// Clean normalizes whitespace and punctuation for segmentation analysis.
// Comma-like marks collapse to "," and sentence-final marks to ".".
func Clean(text string) string {
	text = reSpaces.ReplaceAllString(text, " ")
	text = reDisallowed.ReplaceAllString(text, " ")
	text = reCommaLike.ReplaceAllString(text, ",")
	text = rePeriodLike.ReplaceAllString(text, ".")
	return strings.TrimSpace(text)
}

var stopwords = map[string]struct{}{
	"el": {}, "la": {}, "de": {}, "que": {}, "y": {}, "a": {}, "en": {},
	"un": {}, "es": {}, "se": {}, "no": {}, "te": {}, "lo": {}, "le": {},
	"da": {}, "su": {}, "por": {}, "son": {}, "con": {}, "para": {},
	"del": {}, "las": {}, "una": {}, "al": {},
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {},
}

const minKeywordLength = 3

// Keywords extracts basic keyword tokens: cleaned, punctuation-stripped,
// at least three characters and not a stopword. Order follows the text.
func Keywords(text string) []string {
	clean := Clean(strings.ToLower(text))

	var keywords []string
	for _, word := range strings.Fields(clean) {
		word = reNonWord.ReplaceAllString(word, "")
		if len([]rune(word)) < minKeywordLength {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// FormatTimestamp renders a duration as MM:SS.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int { return len(strings.Fields(text)) }
