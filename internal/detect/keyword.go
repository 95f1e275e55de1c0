package detect

import (
	"fmt"
	"strings"

	"github.com/nicolelu/esign/internal/content"
)

// labelGap separates a synthesized field from the label text it follows
const labelGap = 10.0

// KeywordStrategy turns labeled text lines into typed field candidates
// positioned adjacent to the label.
type KeywordStrategy struct {
	config   DetectionConfig
	keywords []keywordRule
}

// NewKeywordStrategy creates a keyword strategy with the given config
func NewKeywordStrategy(config DetectionConfig, keywords []keywordRule) *KeywordStrategy {
	return &KeywordStrategy{config: config, keywords: keywords}
}

// Name identifies the strategy
func (s *KeywordStrategy) Name() StrategyName {
	return StrategyKeyword
}

// detectionConfidenceFor reflects how reliably a keyword of this type marks
// an actual fillable area
func (s *KeywordStrategy) detectionConfidenceFor(ft FieldType) float64 {
	switch ft {
	case FieldTypeSignature, FieldTypeInitials:
		return 0.8
	case FieldTypeDateSigned:
		return 0.75
	default:
		return 0.7
	}
}

// DetectPage returns the keyword candidates found on a single page
func (s *KeywordStrategy) DetectPage(page *content.Page) []DetectedField {
	var candidates []DetectedField

	for _, tl := range page.TextLines {
		match, ok := matchFieldKeyword(s.keywords, tl.Text)
		if !ok {
			continue
		}

		footprint := getFieldFootprints()[match.FieldType]
		bbox := s.placeAdjacent(page, tl, footprint)

		candidates = append(candidates, DetectedField{
			PageNumber:               page.Number,
			BBox:                     bbox,
			FieldType:                match.FieldType,
			AssigneeType:             AssigneeRole,
			DetectionConfidence:      s.detectionConfidenceFor(match.FieldType),
			ClassificationConfidence: match.Confidence(),
			Evidence: fmt.Sprintf("Keyword %q detected in line %q",
				match.Phrase, strings.TrimSpace(tl.Text)),
			Label:                strings.TrimSpace(tl.Text),
			SuggestedPlaceholder: getPlaceholders()[match.FieldType],
			SourceStrategy:       StrategyKeyword,
		})
	}
	return candidates
}

// placeAdjacent positions the synthesized field after the label, falling back
// to directly below it when the page has no room to the right
func (s *KeywordStrategy) placeAdjacent(page *content.Page, tl content.TextLine, fp fieldFootprint) content.Rect {
	right := tl.Rect.MaxX() + labelGap
	if page.Width > 0 && right+fp.Width > page.Width {
		return content.Rect{
			X:      tl.Rect.X,
			Y:      tl.Rect.MaxY() + 4,
			Width:  fp.Width,
			Height: fp.Height,
		}
	}
	return content.Rect{
		X:      right,
		Y:      tl.Rect.Y,
		Width:  fp.Width,
		Height: fp.Height,
	}
}
