package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nicolelu/esign/internal/content"
)

// anchorTagPattern matches both grammars:
//
//	[type|role:key]  canonical, explicit role key
//	[type|sender]    canonical, sender-owned
//	[type|signer1]   legacy alias, resolved via the alias table
var anchorTagPattern = regexp.MustCompile(`\[(\w+)\|(role:)?(\w+)\]`)

// AnchorTagStrategy turns explicit inline markers into high-confidence,
// explicitly typed and assigned candidates. A recognized tag is author
// intent and overrides every heuristic signal.
type AnchorTagStrategy struct {
	typeTokens map[string]FieldType
	aliases    map[string]legacyRoleAlias
}

// NewAnchorTagStrategy creates an anchor tag strategy
func NewAnchorTagStrategy() *AnchorTagStrategy {
	return &AnchorTagStrategy{
		typeTokens: getAnchorTypeTokens(),
		aliases:    getLegacyRoleAliases(),
	}
}

// Name identifies the strategy
func (s *AnchorTagStrategy) Name() StrategyName {
	return StrategyAnchorTag
}

// DetectPage returns the anchor tag candidates found on a single page.
// Malformed tags are skipped, never fatal.
func (s *AnchorTagStrategy) DetectPage(page *content.Page) []DetectedField {
	var candidates []DetectedField

	for _, tl := range page.TextLines {
		for _, match := range anchorTagPattern.FindAllStringSubmatchIndex(tl.Text, -1) {
			raw := tl.Text[match[0]:match[1]]
			typeToken := strings.ToLower(tl.Text[match[2]:match[3]])
			hasRolePrefix := match[4] >= 0
			roleToken := strings.ToLower(tl.Text[match[6]:match[7]])

			fieldType, ok := s.typeTokens[typeToken]
			if !ok {
				continue // unknown type token
			}

			assignee, roleKey, ok := s.resolveAssignee(hasRolePrefix, roleToken)
			if !ok {
				continue // unparseable role token
			}

			field := DetectedField{
				PageNumber:               page.Number,
				BBox:                     spanRect(tl, match[0], match[1]),
				FieldType:                fieldType,
				AssigneeType:             assignee,
				DetectedRoleKey:          roleKey,
				DetectionConfidence:      1.0,
				ClassificationConfidence: 1.0,
				RoleConfidence:           1.0,
				Label:                    raw,
				AnchorText:               raw,
				SuggestedPlaceholder:     getPlaceholders()[fieldType],
				SourceStrategy:           StrategyAnchorTag,
			}
			if assignee == AssigneeSender {
				field.Evidence = fmt.Sprintf("Anchor tag %q detected (sender)", raw)
			} else {
				field.Evidence = fmt.Sprintf("Anchor tag %q detected (role: %s)", raw, roleKey)
			}

			candidates = append(candidates, field)
		}
	}
	return candidates
}

// resolveAssignee maps the role portion of a tag to an assignment. Canonical
// role:key tokens pass through; bare tokens resolve via the legacy alias
// table and anything else is rejected.
func (s *AnchorTagStrategy) resolveAssignee(hasRolePrefix bool, roleToken string) (AssigneeType, string, bool) {
	if hasRolePrefix {
		if roleToken == "" {
			return "", "", false
		}
		return AssigneeRole, roleToken, true
	}

	alias, ok := s.aliases[roleToken]
	if !ok {
		return "", "", false
	}
	if alias.IsSender {
		return AssigneeSender, "", true
	}
	return AssigneeRole, alias.RoleKey, true
}

// spanRect approximates the bounding box of a byte span inside a text line
// from its proportional character offsets
func spanRect(tl content.TextLine, start, end int) content.Rect {
	total := len(tl.Text)
	if total == 0 || tl.Rect.Width <= 0 {
		return tl.Rect
	}
	charWidth := tl.Rect.Width / float64(total)
	return content.Rect{
		X:      tl.Rect.X + charWidth*float64(start),
		Y:      tl.Rect.Y,
		Width:  charWidth * float64(end-start),
		Height: tl.Rect.Height,
	}
}
