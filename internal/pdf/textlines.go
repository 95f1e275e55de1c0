package pdf

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/nicolelu/esign/internal/content"
)

const (
	// defaultTextHeight approximates run height when the font size is unknown
	defaultTextHeight = 12.0

	// lineYTolerance groups runs whose baselines differ by less than this
	lineYTolerance = 3.0

	// wordGapFactor decides when two runs on the same baseline get a space
	// between them, as a multiple of the run height
	wordGapFactor = 0.3
)

// textRun is a positioned fragment of text as the PDF draws it
type textRun struct {
	x, y   float64
	width  float64
	height float64
	text   string
}

// extractTextLines collects the page's text runs and assembles them into
// reading-order lines with union bounding boxes.
func extractTextLines(page pdf.Page, pageNumber int) []content.TextLine {
	pageContent := page.Content()
	if len(pageContent.Text) == 0 {
		return nil
	}

	runs := make([]textRun, 0, len(pageContent.Text))
	for _, t := range pageContent.Text {
		if t.S == "" {
			continue
		}
		height := t.FontSize
		if height == 0 {
			height = defaultTextHeight
		}
		runs = append(runs, textRun{x: t.X, y: t.Y, width: t.W, height: height, text: t.S})
	}
	if len(runs) == 0 {
		return nil
	}

	return assembleLines(runs, pageNumber)
}

// assembleLines groups runs by baseline and stitches each group into one line
func assembleLines(runs []textRun, pageNumber int) []content.TextLine {
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].y != runs[j].y {
			return runs[i].y < runs[j].y
		}
		return runs[i].x < runs[j].x
	})

	var lines []content.TextLine
	group := []textRun{runs[0]}

	for _, run := range runs[1:] {
		if run.y-group[0].y < lineYTolerance {
			group = append(group, run)
			continue
		}
		lines = append(lines, buildLine(group, pageNumber))
		group = []textRun{run}
	}
	lines = append(lines, buildLine(group, pageNumber))

	return lines
}

// buildLine joins same-baseline runs left to right into a single text line
func buildLine(group []textRun, pageNumber int) content.TextLine {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].x < group[j].x
	})

	var sb strings.Builder
	minX, minY := group[0].x, group[0].y
	maxX := group[0].x + group[0].width
	maxHeight := group[0].height

	sb.WriteString(group[0].text)
	prevEnd := maxX

	for _, run := range group[1:] {
		if run.x-prevEnd > run.height*wordGapFactor {
			sb.WriteString(" ")
		}
		sb.WriteString(run.text)

		if run.y < minY {
			minY = run.y
		}
		if end := run.x + run.width; end > maxX {
			maxX = end
		}
		if run.height > maxHeight {
			maxHeight = run.height
		}
		prevEnd = run.x + run.width
	}

	return content.TextLine{
		PageNumber: pageNumber,
		Rect: content.Rect{
			X:      minX,
			Y:      minY,
			Width:  maxX - minX,
			Height: maxHeight,
		},
		Text: sb.String(),
	}
}
