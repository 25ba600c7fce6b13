package console

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("invalid arguments")
)

type Verb uint8

const (
	NewGame Verb = iota + 1
	Open
	Flag
	Chord
	Print
	Quit
)

func (v Verb) String() string {
	switch v {
	case NewGame:
		return "n"
	case Open:
		return "o"
	case Flag:
		return "f"
	case Chord:
		return "c"
	case Print:
		return "p"
	case Quit:
		return "q"
	default:
		return fmt.Sprintf("Verb(%d)", v)
	}
}

// Maps known commands to the argument counts they accept
var commandNargs = map[string]struct {
	verb  Verb
	nargs []int
}{
	"n": {NewGame, []int{1, 3}},
	"o": {Open, []int{2}},
	"f": {Flag, []int{2}},
	"c": {Chord, []int{2}},
	"p": {Print, []int{0}},
	"q": {Quit, []int{0}},
}

type Command struct {
	Verb   Verb
	Point  mines.Point
	Params mines.GameParams
}

type pointDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

type newGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

func decodePoint(args []string) (mines.Point, error) {
	var dto pointDTO
	err := decoder.Decode(&dto, map[string][]string{
		"x": {args[0]},
		"y": {args[1]},
	})
	if err != nil {
		return mines.Point{}, fmt.Errorf("%w: %w", ErrBadArguments, err)
	}
	return mines.Point{X: dto.X, Y: dto.Y}, nil
}

func decodeNewGame(args []string) (mines.GameParams, error) {
	if len(args) == 1 {
		return decodeNewGameName(args[0])
	}
	var dto newGameDTO
	err := decoder.Decode(&dto, map[string][]string{
		"width":      {args[0]},
		"height":     {args[1]},
		"mine_count": {args[2]},
	})
	if err != nil {
		return mines.GameParams{}, fmt.Errorf("%w: %w", ErrBadArguments, err)
	}
	params := mines.GameParams(dto)
	if err := params.Validate(); err != nil {
		return mines.GameParams{}, err
	}
	return params, nil
}

// decodeNewGameName accepts a difficulty name or a W:H:M seed string.
func decodeNewGameName(arg string) (mines.GameParams, error) {
	if strings.Contains(arg, ":") {
		params, err := mines.ParseSeed(arg)
		if err != nil {
			return mines.GameParams{}, err
		}
		return *params, nil
	}
	d, err := mines.ParseDifficulty(arg)
	if err != nil {
		return mines.GameParams{}, err
	}
	params, ok := d.Params()
	if !ok {
		return mines.GameParams{}, fmt.Errorf("%w: %s needs a size", ErrBadArguments, d)
	}
	return params, nil
}

// ParseCommand reads one line of input. Blank lines and lines starting with
// '#' yield a nil command.
func ParseCommand(line string) (*Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
		return nil, nil
	}
	known, ok := commandNargs[strings.ToLower(parts[0])]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	args := parts[1:]
	if !slices.Contains(known.nargs, len(args)) {
		return nil, fmt.Errorf("%w: %s takes %v arguments, got %d",
			ErrBadArguments, known.verb, known.nargs, len(args))
	}

	cmd := &Command{Verb: known.verb}
	var err error
	switch known.verb {
	case NewGame:
		cmd.Params, err = decodeNewGame(args)
	case Open, Flag, Chord:
		cmd.Point, err = decodePoint(args)
	}
	if err != nil {
		return nil, err
	}
	return cmd, nil
}
