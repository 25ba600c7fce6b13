package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	keyDifficulty = "difficulty"
	keyCustom     = "custom"
)

// Preferences are the player choices remembered between runs.
type Preferences struct {
	store *Store
}

func NewPreferences(store *Store) *Preferences {
	return &Preferences{store: store}
}

// Difficulty returns the last played difficulty, Beginner if none was saved.
func (p *Preferences) Difficulty(ctx context.Context) (mines.Difficulty, error) {
	var name string
	err := p.store.Get(ctx, keyDifficulty, &name)
	if errors.Is(err, ErrNotFound) {
		return mines.Beginner, nil
	}
	if err != nil {
		return 0, fmt.Errorf("unable to read difficulty: %w", err)
	}
	return mines.ParseDifficulty(name)
}

func (p *Preferences) SetDifficulty(ctx context.Context, d mines.Difficulty) error {
	return p.store.Set(ctx, keyDifficulty, d.String())
}

// Custom returns the last custom field, or ok == false if none was saved or
// the saved one is no longer valid.
func (p *Preferences) Custom(ctx context.Context) (params mines.GameParams, ok bool, err error) {
	var seed string
	err = p.store.Get(ctx, keyCustom, &seed)
	if errors.Is(err, ErrNotFound) {
		return params, false, nil
	}
	if err != nil {
		return params, false, fmt.Errorf("unable to read custom field: %w", err)
	}
	parsed, err := mines.ParseSeed(seed)
	if err != nil {
		// unusable field, forget it
		if err := p.store.Delete(ctx, keyCustom); err != nil {
			return params, false, fmt.Errorf("unable to drop custom field: %w", err)
		}
		return params, false, nil
	}
	return *parsed, true, nil
}

func (p *Preferences) SetCustom(ctx context.Context, params mines.GameParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return p.store.Set(ctx, keyCustom, params.Seed())
}

// GameParams is the field to start with: the saved difficulty, or the saved
// custom field when the difficulty is Custom.
func (p *Preferences) GameParams(ctx context.Context) (mines.GameParams, error) {
	d, err := p.Difficulty(ctx)
	if err != nil {
		return mines.GameParams{}, err
	}
	if params, ok := d.Params(); ok {
		return params, nil
	}
	params, ok, err := p.Custom(ctx)
	if err != nil {
		return params, err
	}
	if !ok {
		params, _ = mines.Beginner.Params()
	}
	return params, nil
}

// Remember saves params as the field to start with next time.
func (p *Preferences) Remember(ctx context.Context, params mines.GameParams) error {
	d := mines.DifficultyOf(params)
	if d == mines.Custom {
		if err := p.SetCustom(ctx, params); err != nil {
			return err
		}
	}
	return p.SetDifficulty(ctx, d)
}
