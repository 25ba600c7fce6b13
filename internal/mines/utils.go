package mines

type Point struct {
	X, Y int
}

// neighbours calls fn for every in-bounds cell at Chebyshev distance 1 from
// (x, y).
func (p GameParams) neighbours(x, y int, fn func(nx, ny int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if p.Contains(x+dx, y+dy) {
				fn(x+dx, y+dy)
			}
		}
	}
}
