package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSenderVariableStrategy_DetectPage(t *testing.T) {
	strategy := NewSenderVariableStrategy()

	tests := []struct {
		name         string
		text         string
		expectedKeys []string
	}{
		{
			name:         "single_placeholder",
			text:         "Effective Date: {{effective_date}}",
			expectedKeys: []string{"effective_date"},
		},
		{
			name:         "multiple_placeholders",
			text:         "{{company_name}} agrees to pay {{total_amount}}",
			expectedKeys: []string{"company_name", "total_amount"},
		},
		{
			name:         "unmatched_braces_ignored",
			text:         "{{not closed and }}not opened{{",
			expectedKeys: nil,
		},
		{
			name:         "spaces_not_allowed_in_identifier",
			text:         "{{effective date}}",
			expectedKeys: nil,
		},
		{
			name:         "no_placeholders",
			text:         "Just some contract prose.",
			expectedKeys: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := strategy.DetectPage(anchorPage(tt.text))
			require.Len(t, fields, len(tt.expectedKeys))

			for i, f := range fields {
				assert.Equal(t, FieldTypeText, f.FieldType)
				assert.Equal(t, AssigneeSender, f.AssigneeType)
				assert.Equal(t, tt.expectedKeys[i], f.SenderVariableKey)
				assert.Empty(t, f.DetectedRoleKey)
				assert.Equal(t, 1.0, f.DetectionConfidence)
				assert.Equal(t, 1.0, f.ClassificationConfidence)
				assert.NotEmpty(t, f.Evidence)
			}
		})
	}
}
