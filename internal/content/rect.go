package content

// Rect represents a rectangular area in document coordinate space
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// MaxX returns the right edge of the rectangle
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MaxY returns the bottom edge of the rectangle
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Intersect returns the intersection of two rectangles. The zero Rect is
// returned when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := maxFloat(r.X, o.X)
	y1 := maxFloat(r.Y, o.Y)
	x2 := minFloat(r.MaxX(), o.MaxX())
	y2 := minFloat(r.MaxY(), o.MaxY())

	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Union returns the smallest rectangle covering both rectangles
func (r Rect) Union(o Rect) Rect {
	if r.Area() == 0 {
		return o
	}
	if o.Area() == 0 {
		return r
	}
	x1 := minFloat(r.X, o.X)
	y1 := minFloat(r.Y, o.Y)
	x2 := maxFloat(r.MaxX(), o.MaxX())
	y2 := maxFloat(r.MaxY(), o.MaxY())
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// IoU returns the intersection-over-union overlap ratio of two rectangles.
// Degenerate rectangles yield 0.
func (r Rect) IoU(o Rect) float64 {
	inter := r.Intersect(o).Area()
	if inter == 0 {
		return 0
	}
	union := r.Area() + o.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
