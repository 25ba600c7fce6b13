package mines

import "errors"

var (
	ErrInvalidParams     = errors.New("invalid game params")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
