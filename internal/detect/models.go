package detect

import (
	"github.com/nicolelu/esign/internal/content"
)

// FieldType represents the semantic type of a detected field
type FieldType string

const (
	FieldTypeText       FieldType = "TEXT"
	FieldTypeName       FieldType = "NAME"
	FieldTypeEmail      FieldType = "EMAIL"
	FieldTypeDateSigned FieldType = "DATE_SIGNED"
	FieldTypeCheckbox   FieldType = "CHECKBOX"
	FieldTypeSignature  FieldType = "SIGNATURE"
	FieldTypeInitials   FieldType = "INITIALS"
)

// IsValid checks if the field type is one of the known values
func (ft FieldType) IsValid() bool {
	switch ft {
	case FieldTypeText, FieldTypeName, FieldTypeEmail, FieldTypeDateSigned,
		FieldTypeCheckbox, FieldTypeSignature, FieldTypeInitials:
		return true
	default:
		return false
	}
}

// AssigneeType represents who is expected to fill a detected field
type AssigneeType string

const (
	// AssigneeSender marks fields the sender resolves before sending
	AssigneeSender AssigneeType = "SENDER"
	// AssigneeRole marks fields assigned to a signing party by role key
	AssigneeRole AssigneeType = "ROLE"
)

// StrategyName identifies the detection strategy that produced a candidate
type StrategyName string

const (
	StrategyAnchorTag      StrategyName = "anchor_tag"
	StrategyFormWidget     StrategyName = "form_widget"
	StrategyKeyword        StrategyName = "keyword"
	StrategyUnderline      StrategyName = "underline"
	StrategyShape          StrategyName = "shape"
	StrategySenderVariable StrategyName = "sender_variable"
)

// DefaultRoleKey is assigned when no role could be inferred around a
// role-eligible candidate. Consumers treat it as "unassigned, needs review".
const DefaultRoleKey = "signer"

// DetectedField is a candidate signable field produced by the pipeline
type DetectedField struct {
	PageNumber int          `json:"page_number"`
	BBox       content.Rect `json:"bbox"`
	FieldType  FieldType    `json:"field_type"`

	AssigneeType      AssigneeType `json:"assignee_type"`
	DetectedRoleKey   string       `json:"detected_role_key,omitempty"`
	SenderVariableKey string       `json:"sender_variable_key,omitempty"`

	DetectionConfidence      float64 `json:"detection_confidence"`
	ClassificationConfidence float64 `json:"classification_confidence"`
	RoleConfidence           float64 `json:"role_confidence"`

	Evidence             string `json:"evidence"`
	Label                string `json:"label,omitempty"`
	SuggestedPlaceholder string `json:"suggested_placeholder,omitempty"`
	AnchorText           string `json:"anchor_text,omitempty"`

	// SourceStrategy is kept for dedup tie-breaking and debugging only; it is
	// not part of the contract consumers build business logic on.
	SourceStrategy StrategyName `json:"source_strategy"`
}

// DetectionResult holds the final field list plus run statistics
type DetectionResult struct {
	DetectedFields     []DetectedField `json:"detected_fields"`
	DetectionTimeMS    float64         `json:"detection_time_ms"`
	TotalCandidates    int             `json:"total_candidates"`
	FilteredCandidates int             `json:"filtered_candidates"`
}

// DetectionConfig provides the tunable thresholds for a detection run. The
// keyword and role tables are data (rules.go), not configuration; they are
// injected at detector construction and never mutated afterwards.
type DetectionConfig struct {
	// DetectionConfidenceThreshold drops merged candidates below it
	DetectionConfidenceThreshold float64 `json:"detection_confidence_threshold"`

	// OverlapThreshold is the IoU above which two same-page candidates are
	// treated as the same physical field. Subject to calibration; keep
	// configurable rather than hard-coded.
	OverlapThreshold float64 `json:"overlap_threshold"`

	// LabelLookupRadius bounds the Manhattan distance searched for a label
	// near an underline or role-eligible candidate
	LabelLookupRadius float64 `json:"label_lookup_radius"`

	// MinUnderlineWidth is the minimum horizontal extent for a vector
	// segment group to count as a blank field
	MinUnderlineWidth float64 `json:"min_underline_width"`

	// UnderlineBandTolerance groups segments whose y coordinates lie within
	// this band
	UnderlineBandTolerance float64 `json:"underline_band_tolerance"`

	// Checkbox square side bounds, in page units
	MinCheckboxSide float64 `json:"min_checkbox_side"`
	MaxCheckboxSide float64 `json:"max_checkbox_side"`
}

// DefaultDetectionConfig returns the default pipeline configuration
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		DetectionConfidenceThreshold: 0.5,
		OverlapThreshold:             0.3,
		LabelLookupRadius:            100,
		MinUnderlineWidth:            50,
		UnderlineBandTolerance:       2,
		MinCheckboxSide:              8,
		MaxCheckboxSide:              25,
	}
}
