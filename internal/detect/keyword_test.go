package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolelu/esign/internal/content"
)

func keywordPage(text string, rect content.Rect) *content.Page {
	return &content.Page{
		Number: 1,
		Width:  612,
		Height: 792,
		TextLines: []content.TextLine{
			{PageNumber: 1, Rect: rect, Text: text},
		},
	}
}

func TestKeywordStrategy_DetectPage(t *testing.T) {
	tests := []struct {
		name                   string
		text                   string
		expectType             FieldType
		expectDetection        float64
		expectClassification   float64
		expectEvidencePhrase   string
		expectedNone           bool
		expectPlaceholderValue string
	}{
		{
			name:                   "client signature label",
			text:                   "Client Signature:",
			expectType:             FieldTypeSignature,
			expectDetection:        0.8,
			expectClassification:   0.9,
			expectEvidencePhrase:   "client signature",
			expectPlaceholderValue: "Sign here",
		},
		{
			name:                 "date signed beats date",
			text:                 "Date Signed:",
			expectType:           FieldTypeDateSigned,
			expectDetection:      0.75,
			expectClassification: 0.9,
			expectEvidencePhrase: "date signed",
		},
		{
			name:                 "bare name label",
			text:                 "Name:",
			expectType:           FieldTypeName,
			expectDetection:      0.7,
			expectClassification: 0.75,
			expectEvidencePhrase: "name",
		},
		{
			name:                 "print name beats name",
			text:                 "Print Name:",
			expectType:           FieldTypeName,
			expectDetection:      0.7,
			expectClassification: 0.9,
			expectEvidencePhrase: "print name",
		},
		{
			name:                 "email address beats email",
			text:                 "Email Address:",
			expectType:           FieldTypeEmail,
			expectDetection:      0.7,
			expectClassification: 0.9,
			expectEvidencePhrase: "email address",
		},
		{
			name:                 "initials label",
			text:                 "Initials:",
			expectType:           FieldTypeInitials,
			expectDetection:      0.8,
			expectClassification: 0.75,
			expectEvidencePhrase: "initials",
		},
		{
			name:         "no keyword",
			text:         "This agreement is made between the parties.",
			expectedNone: true,
		},
	}

	strategy := NewKeywordStrategy(DefaultDetectionConfig(), getKeywordRules())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := keywordPage(tt.text, content.Rect{X: 72, Y: 680, Width: 100, Height: 12})

			fields := strategy.DetectPage(page)
			if tt.expectedNone {
				assert.Empty(t, fields)
				return
			}

			require.Len(t, fields, 1)
			field := fields[0]
			assert.Equal(t, tt.expectType, field.FieldType)
			assert.Equal(t, AssigneeRole, field.AssigneeType)
			assert.InDelta(t, tt.expectDetection, field.DetectionConfidence, 1e-9)
			assert.InDelta(t, tt.expectClassification, field.ClassificationConfidence, 1e-9)
			assert.Contains(t, field.Evidence, tt.expectEvidencePhrase)
			assert.Equal(t, tt.text, field.Label)
			assert.Equal(t, StrategyKeyword, field.SourceStrategy)
			if tt.expectPlaceholderValue != "" {
				assert.Equal(t, tt.expectPlaceholderValue, field.SuggestedPlaceholder)
			}
		})
	}
}

func TestKeywordStrategy_PlacementRightOfLabel(t *testing.T) {
	strategy := NewKeywordStrategy(DefaultDetectionConfig(), getKeywordRules())

	page := keywordPage("Signature:", content.Rect{X: 72, Y: 680, Width: 100, Height: 12})
	fields := strategy.DetectPage(page)
	require.Len(t, fields, 1)

	// placed after the label with a gap, signature footprint 150x40
	bbox := fields[0].BBox
	assert.InDelta(t, 182, bbox.X, 1e-9)
	assert.InDelta(t, 680, bbox.Y, 1e-9)
	assert.InDelta(t, 150, bbox.Width, 1e-9)
	assert.InDelta(t, 40, bbox.Height, 1e-9)
}

func TestKeywordStrategy_PlacementBelowWhenNoRoom(t *testing.T) {
	strategy := NewKeywordStrategy(DefaultDetectionConfig(), getKeywordRules())

	// label ends at x=580; a 150pt field does not fit on a 612pt page
	page := keywordPage("Signature:", content.Rect{X: 500, Y: 680, Width: 80, Height: 12})
	fields := strategy.DetectPage(page)
	require.Len(t, fields, 1)

	bbox := fields[0].BBox
	assert.InDelta(t, 500, bbox.X, 1e-9)
	assert.InDelta(t, 696, bbox.Y, 1e-9)
}

func TestKeywordStrategy_OneCandidatePerLine(t *testing.T) {
	strategy := NewKeywordStrategy(DefaultDetectionConfig(), getKeywordRules())

	// line mentions both a signature and a date; the longest single match wins
	page := keywordPage("Signature and date:", content.Rect{X: 72, Y: 680, Width: 140, Height: 12})
	fields := strategy.DetectPage(page)
	require.Len(t, fields, 1)
	assert.Equal(t, FieldTypeSignature, fields[0].FieldType)
}
