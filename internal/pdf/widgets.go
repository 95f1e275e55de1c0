package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/nicolelu/esign/internal/content"
)

// Button field flag bits, PDF 32000-1 table 226
const (
	btnFlagRadio      = 1 << 15
	btnFlagPushbutton = 1 << 16
)

// WidgetExtractor pulls interactive form widgets out of a PDF using pdfcpu.
// Widgets are attributed to pages by walking the page tree, so a multi-page
// form reports each widget on the page that actually draws it.
type WidgetExtractor struct{}

// NewWidgetExtractor creates a new widget extractor
func NewWidgetExtractor() *WidgetExtractor {
	return &WidgetExtractor{}
}

// ExtractWidgetsFromFile extracts all form widgets from a PDF file
func (we *WidgetExtractor) ExtractWidgetsFromFile(filePath string) ([]content.FormWidget, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return we.extractFromContext(ctx)
}

// extractFromContext walks the page tree and collects widget annotations
func (we *WidgetExtractor) extractFromContext(ctx *model.Context) ([]content.FormWidget, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	pagesObj, found := rootDict.Find("Pages")
	if !found {
		return nil, nil
	}

	pagesDict, err := ctx.DereferenceDict(pagesObj)
	if err != nil || pagesDict == nil {
		return nil, fmt.Errorf("failed to dereference page tree root: %w", err)
	}

	var widgets []content.FormWidget
	pageNumber := 0
	we.walkPageTree(ctx, pagesDict, &pageNumber, &widgets)
	return widgets, nil
}

// walkPageTree recurses through Pages nodes, numbering leaf pages in order
func (we *WidgetExtractor) walkPageTree(
	ctx *model.Context, node types.Dict, pageNumber *int, widgets *[]content.FormWidget,
) {
	nodeType, _ := ctx.DereferenceName(node["Type"], model.V10, nil)

	if nodeType == "Page" {
		*pageNumber++
		*widgets = append(*widgets, we.pageWidgets(ctx, node, *pageNumber)...)
		return
	}

	kidsObj, found := node.Find("Kids")
	if !found {
		return
	}
	kids, err := ctx.DereferenceArray(kidsObj)
	if err != nil {
		return
	}

	for _, kid := range kids {
		kidDict, err := ctx.DereferenceDict(kid)
		if err != nil || kidDict == nil {
			continue
		}
		we.walkPageTree(ctx, kidDict, pageNumber, widgets)
	}
}

// pageWidgets collects the widget annotations of one page
func (we *WidgetExtractor) pageWidgets(ctx *model.Context, pageDict types.Dict, pageNumber int) []content.FormWidget {
	annotsObj, found := pageDict.Find("Annots")
	if !found {
		return nil
	}
	annots, err := ctx.DereferenceArray(annotsObj)
	if err != nil {
		return nil
	}

	var widgets []content.FormWidget
	for _, annotRef := range annots {
		annotDict, err := ctx.DereferenceDict(annotRef)
		if err != nil || annotDict == nil {
			continue
		}

		subtype, err := ctx.DereferenceName(annotDict["Subtype"], model.V10, nil)
		if err != nil || subtype != "Widget" {
			continue
		}

		rect, ok := we.annotationRect(ctx, annotDict)
		if !ok {
			continue
		}

		widgets = append(widgets, content.FormWidget{
			PageNumber: pageNumber,
			Rect:       rect,
			Kind:       we.widgetKind(ctx, annotDict),
			Name:       we.fieldName(ctx, annotDict),
		})
	}
	return widgets
}

// annotationRect parses the /Rect array into a normalized rectangle
func (we *WidgetExtractor) annotationRect(ctx *model.Context, annotDict types.Dict) (content.Rect, bool) {
	rectObj, found := annotDict.Find("Rect")
	if !found {
		return content.Rect{}, false
	}

	rectArray, err := ctx.DereferenceArray(rectObj)
	if err != nil || len(rectArray) != 4 {
		return content.Rect{}, false
	}

	coords := make([]float64, 4)
	for i, coord := range rectArray {
		if f, err := ctx.DereferenceNumber(coord); err == nil {
			coords[i] = f
		}
	}

	rect := content.Rect{
		X:      coords[0],
		Y:      coords[1],
		Width:  coords[2] - coords[0],
		Height: coords[3] - coords[1],
	}
	if rect.Width < 0 {
		rect.X += rect.Width
		rect.Width = -rect.Width
	}
	if rect.Height < 0 {
		rect.Y += rect.Height
		rect.Height = -rect.Height
	}
	return rect, true
}

// widgetKind maps the field type entry to a widget kind. The FT entry may be
// inherited from a parent field dictionary.
func (we *WidgetExtractor) widgetKind(ctx *model.Context, fieldDict types.Dict) content.WidgetKind {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, found := fieldDict.Find("Parent"); found {
			if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return we.widgetKind(ctx, parentDict)
			}
		}
		return content.WidgetKindUnknown
	}

	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return content.WidgetKindUnknown
	}

	switch ftName {
	case "Btn":
		if flagsObj, found := fieldDict.Find("Ff"); found {
			if flags, err := ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
				if (*flags & btnFlagRadio) != 0 {
					return content.WidgetKindRadio
				}
				if (*flags & btnFlagPushbutton) != 0 {
					return content.WidgetKindUnknown
				}
			}
		}
		return content.WidgetKindCheckbox
	case "Tx":
		return content.WidgetKindText
	case "Sig":
		return content.WidgetKindSignature
	default:
		return content.WidgetKindUnknown
	}
}

// fieldName reads the partial field name, checking the parent when the widget
// annotation itself is unnamed
func (we *WidgetExtractor) fieldName(ctx *model.Context, fieldDict types.Dict) string {
	if nameObj, found := fieldDict.Find("T"); found {
		if name, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
			return name
		}
	}
	if parentObj, found := fieldDict.Find("Parent"); found {
		if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
			return we.fieldName(ctx, parentDict)
		}
	}
	return ""
}
