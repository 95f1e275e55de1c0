package pdf

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/nicolelu/esign/internal/content"
)

// Default US Letter dimensions, used when a page carries no MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// DocumentLoader materializes PDF files into the content model the detection
// pipeline consumes: text lines, vector paths, and form widgets per page.
type DocumentLoader struct {
	widgetExtractor *WidgetExtractor
}

// NewDocumentLoader creates a new document loader
func NewDocumentLoader() *DocumentLoader {
	return &DocumentLoader{
		widgetExtractor: NewWidgetExtractor(),
	}
}

// LoadDocument reads a PDF file into the content model. A page that cannot
// be parsed contributes an empty page rather than failing the document; only
// a file that cannot be opened at all is an error.
func (dl *DocumentLoader) LoadDocument(filePath string) (*content.Document, error) {
	f, pdfReader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	numPages := pdfReader.NumPage()
	doc := &content.Document{
		Pages: make([]content.Page, 0, numPages),
	}

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		doc.Pages = append(doc.Pages, dl.loadPage(pdfReader, pageNum))
	}

	// form widgets come from a separate pdfcpu pass; widget extraction
	// failure degrades to widget-free detection instead of failing the load
	if widgets, err := dl.widgetExtractor.ExtractWidgetsFromFile(filePath); err == nil {
		attachWidgets(doc, widgets)
	}

	return doc, nil
}

// loadPage extracts one page, recovering from parser panics with an empty
// page so a single corrupt page cannot sink the whole document
func (dl *DocumentLoader) loadPage(pdfReader *pdf.Reader, pageNum int) (result content.Page) {
	width, height := defaultPageWidth, defaultPageHeight
	result = content.Page{Number: pageNum, Width: width, Height: height}

	defer func() {
		if r := recover(); r != nil {
			result = content.Page{Number: pageNum, Width: width, Height: height}
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return result
	}

	if w, h, ok := mediaBoxSize(page); ok {
		width, height = w, h
		result.Width, result.Height = w, h
	}

	result.TextLines = extractTextLines(page, pageNum)
	result.VectorPaths = extractVectorPaths(page, pageNum)
	flipPageOrientation(&result)
	return result
}

// flipPageOrientation converts from PDF user space, where the origin sits at
// the bottom-left corner and Y grows upward, to the top-left origin the
// detection heuristics reason in: smaller Y means higher on the page, so
// "the label above this blank" is the line with the smaller Y.
func flipPageOrientation(page *content.Page) {
	for i := range page.TextLines {
		r := &page.TextLines[i].Rect
		r.Y = page.Height - r.Y - r.Height
	}
	for i := range page.VectorPaths {
		vp := &page.VectorPaths[i]
		switch vp.Kind {
		case content.PathKindLine:
			vp.Y1 = page.Height - vp.Y1
			vp.Y2 = page.Height - vp.Y2
			vp.Rect.Y = page.Height - vp.Rect.Y - vp.Rect.Height
		case content.PathKindRect:
			vp.Rect.Y = page.Height - vp.Rect.Y - vp.Rect.Height
		}
	}
}

// mediaBoxSize resolves the page dimensions, following Parent links for
// inherited MediaBox entries
func mediaBoxSize(page pdf.Page) (width, height float64, ok bool) {
	node := page.V
	for i := 0; i < 32 && !node.IsNull(); i++ {
		box := node.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h, true
			}
		}
		node = node.Key("Parent")
	}
	return 0, 0, false
}

// extractVectorPaths scans the page's content streams for drawn lines and
// rectangles
func extractVectorPaths(page pdf.Page, pageNum int) []content.VectorPath {
	var paths []content.VectorPath
	for _, reader := range contentStreamReaders(page) {
		paths = append(paths, scanVectorPaths(reader, pageNum)...)
		reader.Close()
	}
	return paths
}

// contentStreamReaders returns a reader per content stream of the page; the
// Contents entry is either a single stream or an array of streams
func contentStreamReaders(page pdf.Page) []io.ReadCloser {
	contents := page.V.Key("Contents")

	switch contents.Kind() {
	case pdf.Stream:
		return []io.ReadCloser{contents.Reader()}
	case pdf.Array:
		readers := make([]io.ReadCloser, 0, contents.Len())
		for i := 0; i < contents.Len(); i++ {
			if item := contents.Index(i); item.Kind() == pdf.Stream {
				readers = append(readers, item.Reader())
			}
		}
		return readers
	default:
		return nil
	}
}

// attachWidgets distributes extracted widgets onto their pages, flipping the
// annotation rects into the same top-left orientation as the page content
func attachWidgets(doc *content.Document, widgets []content.FormWidget) {
	for _, w := range widgets {
		if w.PageNumber < 1 || w.PageNumber > len(doc.Pages) {
			continue
		}
		page := &doc.Pages[w.PageNumber-1]
		w.Rect.Y = page.Height - w.Rect.Y - w.Rect.Height
		page.FormWidgets = append(page.FormWidgets, w)
	}
}
