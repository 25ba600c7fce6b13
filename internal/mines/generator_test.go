package mines

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		params GameParams
		valid  bool
	}{
		{GameParams{1, 1, 0}, true},
		{GameParams{9, 9, 10}, true},
		{GameParams{9, 9, 80}, true},
		{GameParams{9, 9, 81}, false},
		{GameParams{0, 9, 0}, false},
		{GameParams{9, -1, 0}, false},
		{GameParams{9, 9, -1}, false},
		{GameParams{4096, 4096, 1}, true},
		{GameParams{4097, 4096, 1}, false},
		{GameParams{math.MaxInt, 2, 1}, false},
		{GameParams{2, math.MaxInt, 1}, false},
	}
	for _, test := range testCases {
		err := test.params.Validate()
		if test.valid {
			assert.NoError(t, err, test.params.String())
		} else {
			assert.ErrorIs(t, err, ErrInvalidParams, test.params.String())
		}
	}
}

func TestSeed(t *testing.T) {
	p := GameParams{Width: 30, Height: 16, MineCount: 99}
	assert.Equal(t, "30:16:99", p.Seed())

	parsed, err := ParseSeed(p.Seed())
	require.NoError(t, err)
	assert.Equal(t, p, *parsed)

	for _, seed := range []string{"", "30:16", "a:b:c", "3:3:9"} {
		_, err := ParseSeed(seed)
		assert.Error(t, err, seed)
	}
}

func TestParseSeedRejectsHugeField(t *testing.T) {
	_, err := ParseSeed("3037000500:3037000500:1")
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.NotContains(t, err.Error(), "-")
}

func TestContains(t *testing.T) {
	p := GameParams{Width: 3, Height: 2}
	assert.True(t, p.Contains(0, 0))
	assert.True(t, p.Contains(2, 1))
	assert.False(t, p.Contains(3, 1))
	assert.False(t, p.Contains(2, 2))
	assert.False(t, p.Contains(-1, 0))
	assert.False(t, p.Contains(0, Outside))
}
