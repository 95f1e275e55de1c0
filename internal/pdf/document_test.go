package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolelu/esign/internal/content"
)

func TestDocumentLoader_LoadDocument(t *testing.T) {
	path := writeMinimalFormPDF(t)

	loader := NewDocumentLoader()
	doc, err := loader.LoadDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	page := doc.Pages[0]
	assert.Equal(t, 1, page.Number)
	assert.InDelta(t, 612, page.Width, 1e-9)
	assert.InDelta(t, 792, page.Height, 1e-9)

	// the filled rectangle from the content stream, flipped so Y measures
	// down from the top edge: 792 - 500 - 1
	require.Len(t, page.VectorPaths, 1)
	assert.Equal(t, content.PathKindRect, page.VectorPaths[0].Kind)
	assert.Equal(t, content.Rect{X: 72, Y: 291, Width: 150, Height: 1}, page.VectorPaths[0].Rect)

	// the checkbox widget from the pdfcpu pass, flipped the same way
	require.Len(t, page.FormWidgets, 1)
	assert.Equal(t, content.WidgetKindCheckbox, page.FormWidgets[0].Kind)
	assert.Equal(t, content.Rect{X: 100, Y: 278, Width: 14, Height: 14}, page.FormWidgets[0].Rect)
}

func TestAttachWidgets_FlipsToPageOrientation(t *testing.T) {
	doc := &content.Document{
		Pages: []content.Page{{Number: 1, Width: 612, Height: 792}},
	}

	attachWidgets(doc, []content.FormWidget{
		{PageNumber: 1, Kind: content.WidgetKindCheckbox, Rect: content.Rect{X: 100, Y: 500, Width: 14, Height: 14}},
	})

	require.Len(t, doc.Pages[0].FormWidgets, 1)
	assert.Equal(t, content.Rect{X: 100, Y: 278, Width: 14, Height: 14}, doc.Pages[0].FormWidgets[0].Rect)
}

func TestDocumentLoader_LoadDocument_MissingFile(t *testing.T) {
	loader := NewDocumentLoader()

	_, err := loader.LoadDocument("/non/existent/file.pdf")
	assert.Error(t, err)
}

func TestAttachWidgets_OutOfRangePagesIgnored(t *testing.T) {
	doc := &content.Document{
		Pages: []content.Page{{Number: 1}, {Number: 2}},
	}

	attachWidgets(doc, []content.FormWidget{
		{PageNumber: 0, Kind: content.WidgetKindCheckbox},
		{PageNumber: 2, Kind: content.WidgetKindText},
		{PageNumber: 7, Kind: content.WidgetKindCheckbox},
	})

	assert.Empty(t, doc.Pages[0].FormWidgets)
	require.Len(t, doc.Pages[1].FormWidgets, 1)
	assert.Equal(t, content.WidgetKindText, doc.Pages[1].FormWidgets[0].Kind)
}
