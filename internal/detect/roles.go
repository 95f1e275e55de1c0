package detect

import (
	"fmt"
	"strings"

	"github.com/nicolelu/esign/internal/content"
)

// Role confidence levels. The default is strictly lower than any keyword
// match so an unassigned candidate is visibly flagged for human review.
const (
	rolePhraseConfidence  = 0.8
	roleKeywordConfidence = 0.7
	roleDefaultConfidence = 0.3
)

// RoleInferrer assigns a semantic role key to candidates that arrived without
// an explicit one. It never touches anchor-tagged or sender-owned fields.
type RoleInferrer struct {
	rules  []roleRule
	radius float64
}

// NewRoleInferrer creates a role inferrer with the given lookup radius
func NewRoleInferrer(rules []roleRule, radius float64) *RoleInferrer {
	return &RoleInferrer{rules: rules, radius: radius}
}

// Infer fills the role assignment of a single candidate from its label and
// the text in the bbox neighborhood
func (ri *RoleInferrer) Infer(page *content.Page, field *DetectedField) {
	if field.AssigneeType != AssigneeRole || field.DetectedRoleKey != "" {
		return
	}

	roleKey, confidence, keyword := ri.inferFromText(ri.neighborhoodText(page, field))
	field.DetectedRoleKey = roleKey
	field.RoleConfidence = confidence

	if keyword != "" {
		field.Evidence += fmt.Sprintf("; inferred role %q from keyword %q", roleKey, keyword)
	} else {
		field.Evidence += fmt.Sprintf("; no role keyword nearby, defaulted to %q", roleKey)
	}
}

// neighborhoodText collects the candidate's label plus every text line whose
// bbox falls inside the lookup radius
func (ri *RoleInferrer) neighborhoodText(page *content.Page, field *DetectedField) string {
	var parts []string
	if field.Label != "" {
		parts = append(parts, field.Label)
	}

	if page != nil {
		search := content.Rect{
			X:      field.BBox.X - ri.radius,
			Y:      field.BBox.Y - ri.radius,
			Width:  field.BBox.Width + 2*ri.radius,
			Height: field.BBox.Height + 2*ri.radius,
		}
		for _, tl := range page.TextLines {
			if search.Intersect(tl.Rect).Area() > 0 {
				parts = append(parts, tl.Text)
			}
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// inferFromText returns the role key of the longest matching keyword, ties
// broken by table order. The default role is returned when nothing matches.
func (ri *RoleInferrer) inferFromText(text string) (string, float64, string) {
	bestRole := ""
	bestKeyword := ""

	for _, rule := range ri.rules {
		for _, keyword := range rule.Keywords {
			if !strings.Contains(text, keyword) {
				continue
			}
			if len(keyword) > len(bestKeyword) {
				bestRole = rule.RoleKey
				bestKeyword = keyword
			}
		}
	}

	if bestRole == "" {
		return DefaultRoleKey, roleDefaultConfidence, ""
	}
	if strings.Contains(bestKeyword, " ") {
		return bestRole, rolePhraseConfidence, bestKeyword
	}
	return bestRole, roleKeywordConfidence, bestKeyword
}
