package mines

import "math/rand/v2"

// Rejection sampling is cheap while most cells are free. Past this density, or
// once the draw budget runs out, the remaining mines are picked from the list
// of free cells instead.
const (
	maxRejectionDensity = 0.5
	drawsPerCell        = 4
)

// placeMines returns the mine layout for p: exactly p.MineCount distinct
// cells, uniformly at random. p must be valid.
func (p GameParams) placeMines(r *rand.Rand) []Point {
	width, height, mineCount := p.Unpack()

	grid := make([]bool, width*height)
	locations := make([]Point, 0, mineCount)

	if float64(mineCount) <= maxRejectionDensity*float64(width*height) {
		budget := drawsPerCell * width * height
		for draws := 0; len(locations) < mineCount && draws < budget; draws++ {
			x, y := r.IntN(width), r.IntN(height)
			if grid[y*width+x] {
				continue
			}
			grid[y*width+x] = true
			locations = append(locations, Point{x, y})
		}
	}

	if len(locations) == mineCount {
		return locations
	}

	/*
	 * Write down the list of possible mine locations, then pick the rest
	 * off it at random.
	 */
	candidates := make([]int, 0, width*height-len(locations))
	for i, mine := range grid {
		if !mine {
			candidates = append(candidates, i)
		}
	}
	k := len(candidates)
	for len(locations) < mineCount {
		i := r.IntN(k)
		j := candidates[i]
		locations = append(locations, Point{j % width, j / width})
		k--
		candidates[i] = candidates[k]
	}

	return locations
}
