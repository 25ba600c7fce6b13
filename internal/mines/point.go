package mines

// Outside marks an axis of a pointer position that lies left of or above the
// field.
const Outside = -1

type CellSize struct {
	Width, Height int
}

// PointFromPixel maps a position in the field's local drawing coordinates to
// the cell under it. The result is not bounds-checked against any field.
func PointFromPixel(px, py int, size CellSize) Point {
	return Point{
		X: axisFromPixel(px, size.Width),
		Y: axisFromPixel(py, size.Height),
	}
}

func axisFromPixel(v, cell int) int {
	// integer division truncates towards zero, so -1/3 would alias column 0
	if v < 0 || cell <= 0 {
		return Outside
	}
	return v / cell
}
