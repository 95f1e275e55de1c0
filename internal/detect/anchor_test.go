package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolelu/esign/internal/content"
)

func anchorPage(text string) *content.Page {
	return &content.Page{
		Number: 1,
		Width:  612,
		Height: 792,
		TextLines: []content.TextLine{
			{PageNumber: 1, Rect: content.Rect{X: 100, Y: 700, Width: 200, Height: 12}, Text: text},
		},
	}
}

func TestAnchorTagStrategy_DetectPage(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		expectedCount    int
		expectedType     FieldType
		expectedAssignee AssigneeType
		expectedRoleKey  string
	}{
		{
			name:             "canonical_role_tag",
			text:             "Sign here: [sig|role:client]",
			expectedCount:    1,
			expectedType:     FieldTypeSignature,
			expectedAssignee: AssigneeRole,
			expectedRoleKey:  "client",
		},
		{
			name:             "canonical_sender_tag",
			text:             "Prepared by: [text|sender]",
			expectedCount:    1,
			expectedType:     FieldTypeText,
			expectedAssignee: AssigneeSender,
		},
		{
			name:             "legacy_signer1",
			text:             "Sign here: [sig|signer1]",
			expectedCount:    1,
			expectedType:     FieldTypeSignature,
			expectedAssignee: AssigneeRole,
			expectedRoleKey:  "signer_1",
		},
		{
			name:             "legacy_signer2",
			text:             "Date: [date|signer2]",
			expectedCount:    1,
			expectedType:     FieldTypeDateSigned,
			expectedAssignee: AssigneeRole,
			expectedRoleKey:  "signer_2",
		},
		{
			name:             "long_form_type_token",
			text:             "[signature|role:landlord]",
			expectedCount:    1,
			expectedType:     FieldTypeSignature,
			expectedAssignee: AssigneeRole,
			expectedRoleKey:  "landlord",
		},
		{
			name:          "unknown_type_token_skipped",
			text:          "[stamp|role:client]",
			expectedCount: 0,
		},
		{
			name:          "unknown_legacy_role_skipped",
			text:          "[sig|somebody]",
			expectedCount: 0,
		},
		{
			name:          "plain_text_no_tags",
			text:          "Please sign on the line below.",
			expectedCount: 0,
		},
		{
			name:          "multiple_tags_on_one_line",
			text:          "[sig|role:buyer] and [sig|role:seller]",
			expectedCount: 2,
		},
	}

	strategy := NewAnchorTagStrategy()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := strategy.DetectPage(anchorPage(tt.text))
			require.Len(t, fields, tt.expectedCount)

			if tt.expectedCount == 1 {
				f := fields[0]
				assert.Equal(t, tt.expectedType, f.FieldType)
				assert.Equal(t, tt.expectedAssignee, f.AssigneeType)
				assert.Equal(t, tt.expectedRoleKey, f.DetectedRoleKey)
				assert.Equal(t, 1.0, f.DetectionConfidence)
				assert.Equal(t, 1.0, f.ClassificationConfidence)
				assert.Equal(t, 1.0, f.RoleConfidence)
				assert.NotEmpty(t, f.Evidence)
				assert.NotEmpty(t, f.AnchorText)
			}
		})
	}
}

// Legacy and canonical grammars must produce identical output apart from the
// raw anchor text.
func TestAnchorTagStrategy_LegacyCanonicalEquivalence(t *testing.T) {
	strategy := NewAnchorTagStrategy()

	legacy := strategy.DetectPage(anchorPage("[sig|signer1]"))
	canonical := strategy.DetectPage(anchorPage("[sig|role:signer_1]"))

	require.Len(t, legacy, 1)
	require.Len(t, canonical, 1)

	assert.Equal(t, FieldTypeSignature, legacy[0].FieldType)
	assert.Equal(t, legacy[0].FieldType, canonical[0].FieldType)
	assert.Equal(t, legacy[0].AssigneeType, canonical[0].AssigneeType)
	assert.Equal(t, "signer_1", legacy[0].DetectedRoleKey)
	assert.Equal(t, legacy[0].DetectedRoleKey, canonical[0].DetectedRoleKey)
	assert.Equal(t, legacy[0].DetectionConfidence, canonical[0].DetectionConfidence)

	assert.Equal(t, "[sig|signer1]", legacy[0].AnchorText)
	assert.Equal(t, "[sig|role:signer_1]", canonical[0].AnchorText)
}

func TestAnchorTagStrategy_SpanPosition(t *testing.T) {
	strategy := NewAnchorTagStrategy()

	page := anchorPage("Sign: [sig|role:client]")
	fields := strategy.DetectPage(page)
	require.Len(t, fields, 1)

	line := page.TextLines[0].Rect
	bbox := fields[0].BBox

	// tag sits after the "Sign: " prefix, inside the line bbox
	assert.Greater(t, bbox.X, line.X)
	assert.LessOrEqual(t, bbox.MaxX(), line.MaxX()+1e-9)
	assert.Equal(t, line.Y, bbox.Y)
}
