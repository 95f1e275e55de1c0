package detect

import (
	"fmt"

	"regexp"

	"github.com/nicolelu/esign/internal/content"
)

// senderVariablePattern matches merge placeholders like {{effective_date}}
var senderVariablePattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// SenderVariableStrategy turns merge-placeholder tokens into sender-owned
// text candidates. The sender resolves these to literal values before the
// document goes out for signing.
type SenderVariableStrategy struct{}

// NewSenderVariableStrategy creates a sender variable strategy
func NewSenderVariableStrategy() *SenderVariableStrategy {
	return &SenderVariableStrategy{}
}

// Name identifies the strategy
func (s *SenderVariableStrategy) Name() StrategyName {
	return StrategySenderVariable
}

// DetectPage returns the sender variable candidates found on a single page
func (s *SenderVariableStrategy) DetectPage(page *content.Page) []DetectedField {
	var candidates []DetectedField

	for _, tl := range page.TextLines {
		for _, match := range senderVariablePattern.FindAllStringSubmatchIndex(tl.Text, -1) {
			raw := tl.Text[match[0]:match[1]]
			key := tl.Text[match[2]:match[3]]

			candidates = append(candidates, DetectedField{
				PageNumber:               page.Number,
				BBox:                     spanRect(tl, match[0], match[1]),
				FieldType:                FieldTypeText,
				AssigneeType:             AssigneeSender,
				SenderVariableKey:        key,
				DetectionConfidence:      1.0,
				ClassificationConfidence: 1.0,
				// not meaningful for sender fields, fixed by convention
				RoleConfidence:       1.0,
				Evidence:             fmt.Sprintf("Sender variable tag %q detected", raw),
				Label:                key,
				SuggestedPlaceholder: getPlaceholders()[FieldTypeText],
				AnchorText:           raw,
				SourceStrategy:       StrategySenderVariable,
			})
		}
	}
	return candidates
}
