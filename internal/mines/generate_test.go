package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{
			name:   "9x9(10)",
			params: GameParams{Width: 9, Height: 9, MineCount: 10},
		},
		{
			name:   "9x9(35)",
			params: GameParams{Width: 9, Height: 9, MineCount: 35},
		},
		{
			name:   "9x9(80)",
			params: GameParams{Width: 9, Height: 9, MineCount: 80},
		},
		{
			name:   "16x16(40)",
			params: GameParams{Width: 16, Height: 16, MineCount: 40},
		},
		{
			name:   "30x16(99)",
			params: GameParams{Width: 30, Height: 16, MineCount: 99},
		},
		{
			name:   "30x16(479)",
			params: GameParams{Width: 30, Height: 16, MineCount: 479},
		},
		{
			name:   "1x1(0)",
			params: GameParams{Width: 1, Height: 1, MineCount: 0},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for range 20 {
				locations := test.params.placeMines(r)
				assert.Len(t, locations, test.params.MineCount)

				seen := make(map[Point]bool, len(locations))
				for _, p := range locations {
					assert.True(t, test.params.Contains(p.X, p.Y), "%v out of bounds", p)
					assert.False(t, seen[p], "%v placed twice", p)
					seen[p] = true
				}
			}
		})
	}
}

func TestPlaceMinesIsDeterministic(t *testing.T) {
	params := GameParams{Width: 16, Height: 16, MineCount: 200}
	a := params.placeMines(rand.New(rand.NewPCG(42, 43)))
	b := params.placeMines(rand.New(rand.NewPCG(42, 43)))
	assert.Equal(t, a, b)
}

// Every cell of a small field must be able to hold a mine.
func TestPlaceMinesCoversField(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	for _, params := range []GameParams{
		{Width: 4, Height: 3, MineCount: 1},
		{Width: 4, Height: 3, MineCount: 10},
	} {
		r := rand.New(rand.NewPCG(1, 2))
		hits := make(map[Point]int)
		for range 2000 {
			for _, p := range params.placeMines(r) {
				hits[p]++
			}
		}
		assert.Len(t, hits, params.Cells(), params.String())
	}
}
