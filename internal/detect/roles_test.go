package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolelu/esign/internal/content"
)

func roleField(label string) *DetectedField {
	return &DetectedField{
		PageNumber:   1,
		BBox:         content.Rect{X: 200, Y: 500, Width: 150, Height: 40},
		FieldType:    FieldTypeSignature,
		AssigneeType: AssigneeRole,
		Label:        label,
		Evidence:     "Keyword \"signature\" detected",
	}
}

func TestRoleInferrer_FromLabel(t *testing.T) {
	tests := []struct {
		name             string
		label            string
		expectRole       string
		expectConfidence float64
		expectKeyword    string
	}{
		{name: "client keyword", label: "Client Signature:", expectRole: "client", expectConfidence: 0.7, expectKeyword: "client"},
		{name: "landlord keyword", label: "Landlord Signature:", expectRole: "landlord", expectConfidence: 0.7, expectKeyword: "landlord"},
		{name: "multi-word phrase", label: "First Party Signature:", expectRole: "client", expectConfidence: 0.8, expectKeyword: "first party"},
		{name: "contractor beats client on length", label: "Client or Contractor:", expectRole: "contractor", expectConfidence: 0.7, expectKeyword: "contractor"},
		{name: "table order breaks ties", label: "Seller and Vendor:", expectRole: "contractor", expectConfidence: 0.7, expectKeyword: "vendor"},
		{name: "no keyword falls back to default", label: "Signature:", expectRole: DefaultRoleKey, expectConfidence: 0.3},
	}

	inferrer := NewRoleInferrer(getRoleRules(), 100)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := roleField(tt.label)
			inferrer.Infer(nil, field)

			assert.Equal(t, tt.expectRole, field.DetectedRoleKey)
			assert.InDelta(t, tt.expectConfidence, field.RoleConfidence, 1e-9)
			if tt.expectKeyword != "" {
				assert.Contains(t, field.Evidence, tt.expectKeyword)
			} else {
				assert.Contains(t, field.Evidence, "defaulted")
			}
		})
	}
}

func TestRoleInferrer_DefaultStrictlyLowerThanMatch(t *testing.T) {
	inferrer := NewRoleInferrer(getRoleRules(), 100)

	matched := roleField("Tenant Signature:")
	inferrer.Infer(nil, matched)

	defaulted := roleField("Signature:")
	inferrer.Infer(nil, defaulted)

	assert.Less(t, defaulted.RoleConfidence, matched.RoleConfidence)
	assert.Equal(t, DefaultRoleKey, defaulted.DetectedRoleKey)
}

func TestRoleInferrer_NeighborhoodText(t *testing.T) {
	inferrer := NewRoleInferrer(getRoleRules(), 100)

	page := &content.Page{
		Number: 1,
		Width:  612,
		Height: 792,
		TextLines: []content.TextLine{
			// within the 100pt radius of the field bbox
			{PageNumber: 1, Rect: content.Rect{X: 200, Y: 460, Width: 120, Height: 12}, Text: "Borrower acknowledges"},
			// far outside the radius
			{PageNumber: 1, Rect: content.Rect{X: 200, Y: 100, Width: 120, Height: 12}, Text: "Lender retains title"},
		},
	}

	field := roleField("")
	inferrer.Infer(page, field)

	assert.Equal(t, "borrower", field.DetectedRoleKey)
	assert.InDelta(t, 0.7, field.RoleConfidence, 1e-9)
}

func TestRoleInferrer_SkipsExplicitAssignments(t *testing.T) {
	inferrer := NewRoleInferrer(getRoleRules(), 100)

	sender := roleField("Client Signature:")
	sender.AssigneeType = AssigneeSender
	inferrer.Infer(nil, sender)
	assert.Empty(t, sender.DetectedRoleKey, "sender fields never get a role key")

	anchored := roleField("Client Signature:")
	anchored.DetectedRoleKey = "signer_2"
	anchored.RoleConfidence = 1.0
	inferrer.Infer(nil, anchored)
	assert.Equal(t, "signer_2", anchored.DetectedRoleKey, "explicit role keys are preserved")
	assert.InDelta(t, 1.0, anchored.RoleConfidence, 1e-9)
}

func TestRoleInferrer_CaseInsensitive(t *testing.T) {
	inferrer := NewRoleInferrer(getRoleRules(), 100)

	field := roleField("EMPLOYEE SIGNATURE")
	inferrer.Infer(nil, field)

	require.Equal(t, "employee", field.DetectedRoleKey)
}
