package pdf

import (
	"bufio"
	"io"
	"strconv"

	"github.com/nicolelu/esign/internal/content"
)

// pathScanner walks a page content stream and records the path construction
// operators that can outline a fillable area: "re" rectangles and "m"/"l"
// line segments. Everything else in the stream is skipped.
type pathScanner struct {
	reader  *bufio.Reader
	current byte
	hasNext bool

	// operand stack for the operator being assembled
	operands []float64

	// current point set by the last m/l operator
	curX, curY float64
	hasPoint   bool

	paths      []content.VectorPath
	pageNumber int
}

// newPathScanner creates a scanner over a single content stream
func newPathScanner(reader io.Reader, pageNumber int) *pathScanner {
	s := &pathScanner{
		reader:     bufio.NewReader(reader),
		hasNext:    true,
		pageNumber: pageNumber,
	}
	s.advance()
	return s
}

// scanVectorPaths extracts line and rectangle paths from a content stream
func scanVectorPaths(reader io.Reader, pageNumber int) []content.VectorPath {
	s := newPathScanner(reader, pageNumber)
	s.run()
	return s.paths
}

func (s *pathScanner) advance() {
	ch, err := s.reader.ReadByte()
	if err != nil {
		s.hasNext = false
		s.current = 0
		return
	}
	s.current = ch
}

func (s *pathScanner) run() {
	for s.hasNext {
		switch {
		case isStreamWhitespace(s.current):
			s.advance()
		case s.current == '%':
			s.skipComment()
		case s.current == '(':
			s.skipLiteralString()
		case s.current == '<':
			s.skipAngleBrackets()
		case s.current == '/':
			s.skipName()
		case s.current == '[' || s.current == ']' ||
			s.current == '{' || s.current == '}' || s.current == '>':
			s.operands = s.operands[:0]
			s.advance()
		case s.current == '+' || s.current == '-' || s.current == '.' ||
			(s.current >= '0' && s.current <= '9'):
			s.readNumber()
		default:
			s.readOperator()
		}
	}
}

func (s *pathScanner) skipComment() {
	for s.hasNext && s.current != '\n' && s.current != '\r' {
		s.advance()
	}
}

func (s *pathScanner) skipLiteralString() {
	depth := 0
	for s.hasNext {
		switch s.current {
		case '\\':
			s.advance() // skip the escaped byte
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				s.advance()
				return
			}
		}
		s.advance()
	}
}

func (s *pathScanner) skipAngleBrackets() {
	// covers both hex strings <...> and dictionary openers <<
	for s.hasNext && s.current != '>' {
		s.advance()
	}
	for s.hasNext && s.current == '>' {
		s.advance()
	}
	s.operands = s.operands[:0]
}

func (s *pathScanner) skipName() {
	s.advance()
	for s.hasNext && !isStreamWhitespace(s.current) && !isStreamDelimiter(s.current) {
		s.advance()
	}
}

func (s *pathScanner) readNumber() {
	var buf []byte
	for s.hasNext && (s.current == '+' || s.current == '-' || s.current == '.' ||
		(s.current >= '0' && s.current <= '9')) {
		buf = append(buf, s.current)
		s.advance()
	}
	if f, err := strconv.ParseFloat(string(buf), 64); err == nil {
		s.operands = append(s.operands, f)
	}
}

func (s *pathScanner) readOperator() {
	var buf []byte
	for s.hasNext && !isStreamWhitespace(s.current) && !isStreamDelimiter(s.current) {
		buf = append(buf, s.current)
		s.advance()
	}
	s.applyOperator(string(buf))
	s.operands = s.operands[:0]
}

// applyOperator records the path effect of one operator
func (s *pathScanner) applyOperator(op string) {
	n := len(s.operands)

	switch op {
	case "m":
		if n >= 2 {
			s.curX, s.curY = s.operands[n-2], s.operands[n-1]
			s.hasPoint = true
		}
	case "l":
		if n >= 2 && s.hasPoint {
			x, y := s.operands[n-2], s.operands[n-1]
			s.paths = append(s.paths, lineSegmentPath(s.pageNumber, s.curX, s.curY, x, y))
			s.curX, s.curY = x, y
		}
	case "re":
		if n >= 4 {
			x, y, w, h := s.operands[n-4], s.operands[n-3], s.operands[n-2], s.operands[n-1]
			s.paths = append(s.paths, content.VectorPath{
				PageNumber: s.pageNumber,
				Rect:       normalizedRect(x, y, w, h),
				Kind:       content.PathKindRect,
			})
		}
	default:
		// other operators end any pending subpath construction
		if op == "h" || op == "S" || op == "s" || op == "f" || op == "F" ||
			op == "f*" || op == "B" || op == "B*" || op == "b" || op == "b*" || op == "n" {
			s.hasPoint = false
		}
	}
}

// lineSegmentPath builds a line path with a degenerate-safe bounding rect
func lineSegmentPath(pageNumber int, x1, y1, x2, y2 float64) content.VectorPath {
	minX, maxX := x1, x2
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := y1, y2
	if minY > maxY {
		minY, maxY = maxY, minY
	}

	return content.VectorPath{
		PageNumber: pageNumber,
		Rect: content.Rect{
			X:      minX,
			Y:      minY,
			Width:  maxX - minX,
			Height: maxY - minY,
		},
		Kind: content.PathKindLine,
		X1:   x1, Y1: y1, X2: x2, Y2: y2,
	}
}

// normalizedRect flips negative width/height rectangles into canonical form
func normalizedRect(x, y, w, h float64) content.Rect {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return content.Rect{X: x, Y: y, Width: w, Height: h}
}

func isStreamWhitespace(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isStreamDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
