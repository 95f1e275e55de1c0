// Package content defines the structured per-page document model consumed by
// the field detection pipeline. The pipeline never parses PDF bytes itself; an
// adapter (internal/pdf) materializes this model up front and the detectors
// treat it as immutable input.
//
// All coordinates use a top-left origin: Y grows downward, so a smaller Y is
// higher on the page. Adapters are responsible for converting from source
// conventions (PDF user space puts the origin at the bottom-left corner).
package content

// PathKind represents the primitive kind of a vector path
type PathKind string

const (
	PathKindLine PathKind = "line"
	PathKindRect PathKind = "rect"
)

// WidgetKind represents the kind of a pre-existing form widget
type WidgetKind string

const (
	WidgetKindCheckbox  WidgetKind = "checkbox"
	WidgetKindText      WidgetKind = "text"
	WidgetKindSignature WidgetKind = "signature"
	WidgetKindRadio     WidgetKind = "radio"
	WidgetKindUnknown   WidgetKind = "unknown"
)

// TextLine represents a positioned run of text on a page
type TextLine struct {
	PageNumber int    `json:"page_number"`
	Rect       Rect   `json:"rect"`
	Text       string `json:"text"`
}

// VectorPath represents a vector drawing primitive on a page. For line
// segments the endpoint coordinates are populated; for rectangles the Rect
// carries the geometry.
type VectorPath struct {
	PageNumber int      `json:"page_number"`
	Rect       Rect     `json:"rect"`
	Kind       PathKind `json:"kind"`
	X1         float64  `json:"x1,omitempty"`
	Y1         float64  `json:"y1,omitempty"`
	X2         float64  `json:"x2,omitempty"`
	Y2         float64  `json:"y2,omitempty"`
}

// FormWidget represents an interactive form widget already present in the
// document (AcroForm annotation)
type FormWidget struct {
	PageNumber int        `json:"page_number"`
	Rect       Rect       `json:"rect"`
	Kind       WidgetKind `json:"kind"`
	Name       string     `json:"name,omitempty"`
}

// Page holds everything the detectors read from a single page
type Page struct {
	Number      int          `json:"number"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	TextLines   []TextLine   `json:"text_lines"`
	VectorPaths []VectorPath `json:"vector_paths"`
	FormWidgets []FormWidget `json:"form_widgets"`
}

// Document is the per-document input structure for a detection run
type Document struct {
	Pages []Page `json:"pages"`
}
