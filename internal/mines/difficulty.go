package mines

import (
	"fmt"
	"strings"
)

type Difficulty uint8

const (
	Beginner Difficulty = iota + 1
	Intermediate
	Expert
	Custom
)

var presets = map[Difficulty]GameParams{
	Beginner:     {Width: 9, Height: 9, MineCount: 10},
	Intermediate: {Width: 16, Height: 16, MineCount: 40},
	Expert:       {Width: 30, Height: 16, MineCount: 99},
}

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Expert:
		return "expert"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("Difficulty(%d)", d)
	}
}

// Params returns the preset field for d. Custom has no preset.
func (d Difficulty) Params() (GameParams, bool) {
	p, ok := presets[d]
	return p, ok
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "b", "1":
		return Beginner, nil
	case "intermediate", "i", "2":
		return Intermediate, nil
	case "expert", "e", "3":
		return Expert, nil
	case "custom", "c":
		return Custom, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// DifficultyOf maps p back to its preset, or Custom.
func DifficultyOf(p GameParams) Difficulty {
	for d, preset := range presets {
		if preset == p {
			return d
		}
	}
	return Custom
}
