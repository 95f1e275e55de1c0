package detect

import (
	"strings"

	"github.com/nicolelu/esign/internal/content"
)

// Strategy produces a set of draft field candidates from one page of document
// content. Implementations read only the shared immutable page and must not
// fail on malformed input; unusable signals are skipped, not reported.
type Strategy interface {
	// Name identifies the strategy for priority resolution and debugging
	Name() StrategyName

	// DetectPage returns the candidates found on a single page
	DetectPage(page *content.Page) []DetectedField
}

// keywordMatch describes a keyword table hit
type keywordMatch struct {
	FieldType FieldType
	Phrase    string
	Index     int
}

// Confidence converts match specificity into a classification confidence:
// exact multi-word phrases beat single generic words.
func (m keywordMatch) Confidence() float64 {
	if strings.Contains(m.Phrase, " ") {
		return 0.9
	}
	return 0.75
}

// fallbackClassificationConfidence is the classification confidence for
// candidates that fall through to the generic TEXT type
const fallbackClassificationConfidence = 0.4

// matchFieldKeyword scans text against the keyword table and returns the
// longest matching phrase. Bare "date" never shadows "date signed" because
// length wins; table order breaks length ties.
func matchFieldKeyword(rules []keywordRule, text string) (keywordMatch, bool) {
	lower := strings.ToLower(text)

	var best keywordMatch
	found := false
	for _, rule := range rules {
		for _, phrase := range rule.Phrases {
			idx := strings.Index(lower, phrase)
			if idx < 0 {
				continue
			}
			if !found || len(phrase) > len(best.Phrase) {
				best = keywordMatch{FieldType: rule.FieldType, Phrase: phrase, Index: idx}
				found = true
			}
		}
	}
	return best, found
}

// classifyLabel resolves a label string to a field type. Labels with no
// keyword hit default to TEXT with the fallback confidence.
func classifyLabel(rules []keywordRule, label string) (FieldType, float64, string) {
	if m, ok := matchFieldKeyword(rules, label); ok {
		return m.FieldType, m.Confidence(), m.Phrase
	}
	return FieldTypeText, fallbackClassificationConfidence, ""
}

// findNearbyLabel searches for the closest text line above or to the left of
// the given position, within the lookup radius. Returns the empty string when
// nothing qualifies.
func findNearbyLabel(page *content.Page, x, y, width, radius float64) string {
	bestLabel := ""
	bestDistance := radius

	for _, tl := range page.TextLines {
		text := strings.TrimSpace(tl.Text)
		if text == "" {
			continue
		}
		// only text above or left of the field counts as its label
		if tl.Rect.Y > y || tl.Rect.X > x+width {
			continue
		}
		distance := absFloat(y-tl.Rect.Y) + absFloat(x-tl.Rect.X)
		if distance < bestDistance {
			bestDistance = distance
			bestLabel = text
		}
	}
	return bestLabel
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// clampConfidence keeps a confidence score inside the closed [0,1] interval
func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
