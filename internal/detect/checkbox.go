package detect

import (
	"fmt"

	"github.com/nicolelu/esign/internal/content"
)

// Fixed confidence floors per checkbox signal source. A form widget is near
// certain; a drawn square is only suggestive.
const (
	checkboxWidgetConfidence = 0.95
	checkboxGlyphConfidence  = 0.90
	checkboxShapeConfidence  = 0.70
)

// CheckboxStrategy turns form widgets, checkbox glyphs, and small square
// vector shapes into checkbox candidates.
type CheckboxStrategy struct {
	config DetectionConfig
	glyphs []rune
}

// NewCheckboxStrategy creates a checkbox strategy with the given config
func NewCheckboxStrategy(config DetectionConfig) *CheckboxStrategy {
	return &CheckboxStrategy{config: config, glyphs: getCheckboxGlyphs()}
}

// Name identifies the strategy
func (s *CheckboxStrategy) Name() StrategyName {
	return StrategyFormWidget
}

// DetectPage returns the checkbox candidates found on a single page
func (s *CheckboxStrategy) DetectPage(page *content.Page) []DetectedField {
	var candidates []DetectedField

	for _, widget := range page.FormWidgets {
		if widget.Kind != content.WidgetKindCheckbox {
			continue
		}
		candidates = append(candidates, s.checkboxCandidate(
			page.Number, widget.Rect, checkboxWidgetConfidence,
			"PDF checkbox widget detected", StrategyFormWidget,
		))
	}

	candidates = append(candidates, s.glyphCandidates(page)...)
	candidates = append(candidates, s.shapeCandidates(page)...)

	return candidates
}

// glyphCandidates finds literal checkbox characters in the page text
func (s *CheckboxStrategy) glyphCandidates(page *content.Page) []DetectedField {
	var candidates []DetectedField

	for _, tl := range page.TextLines {
		runes := []rune(tl.Text)
		for i, r := range runes {
			if !s.isCheckboxGlyph(r) {
				continue
			}

			// approximate the glyph bbox from its rune offset in the line
			rect := tl.Rect
			if len(runes) > 0 && rect.Width > 0 {
				charWidth := rect.Width / float64(len(runes))
				rect = content.Rect{
					X:      rect.X + charWidth*float64(i),
					Y:      rect.Y,
					Width:  charWidth + 5,
					Height: rect.Height + 5,
				}
			}

			candidates = append(candidates, s.checkboxCandidate(
				page.Number, rect, checkboxGlyphConfidence,
				fmt.Sprintf("Checkbox character %q detected", string(r)), StrategyFormWidget,
			))
		}
	}
	return candidates
}

// shapeCandidates finds small near-square vector rectangles
func (s *CheckboxStrategy) shapeCandidates(page *content.Page) []DetectedField {
	var candidates []DetectedField

	for _, vp := range page.VectorPaths {
		if vp.Kind != content.PathKindRect {
			continue
		}
		w, h := vp.Rect.Width, vp.Rect.Height
		if w < s.config.MinCheckboxSide || w > s.config.MaxCheckboxSide {
			continue
		}
		if h < s.config.MinCheckboxSide || h > s.config.MaxCheckboxSide {
			continue
		}
		if absFloat(w-h) >= 5 {
			continue
		}

		candidates = append(candidates, s.checkboxCandidate(
			page.Number, vp.Rect, checkboxShapeConfidence,
			"Small square shape detected (potential checkbox)", StrategyShape,
		))
	}
	return candidates
}

func (s *CheckboxStrategy) isCheckboxGlyph(r rune) bool {
	for _, g := range s.glyphs {
		if r == g {
			return true
		}
	}
	return false
}

func (s *CheckboxStrategy) checkboxCandidate(
	pageNumber int, rect content.Rect, confidence float64, evidence string, source StrategyName,
) DetectedField {
	return DetectedField{
		PageNumber:               pageNumber,
		BBox:                     rect,
		FieldType:                FieldTypeCheckbox,
		AssigneeType:             AssigneeRole,
		DetectionConfidence:      confidence,
		ClassificationConfidence: confidence,
		Evidence:                 evidence,
		SourceStrategy:           source,
	}
}
