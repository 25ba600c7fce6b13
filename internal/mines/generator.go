package mines

import (
	"fmt"
	"strings"
)

// MaxCells bounds the field area.
const MaxCells = 1 << 24

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) Cells() int {
	return p.Width * p.Height
}

// Validate reports whether a field can be generated from p. At least one cell
// must stay free of mines.
func (p GameParams) Validate() error {
	switch {
	case p.Width < 1:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidParams, p.Width)
	case p.Height < 1:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidParams, p.Height)
	case p.Width > MaxCells/p.Height:
		return fmt.Errorf("%w: field must have at most %d cells", ErrInvalidParams, MaxCells)
	case p.MineCount < 0:
		return fmt.Errorf("%w: mine count must not be negative, got %d", ErrInvalidParams, p.MineCount)
	case p.MineCount >= p.Cells():
		return fmt.Errorf(
			"%w: mine count must be less than %d, got %d",
			ErrInvalidParams, p.Cells(), p.MineCount,
		)
	}
	return nil
}

func (p GameParams) Contains(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
