package profile_test

import (
	"testing"

	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/stretchr/testify/assert"
)

func TestNextColor(t *testing.T) {
	assert.Len(t, profile.Palette, 8)
	assert.Equal(t, profile.Blue, profile.NextColor(0))
	assert.Equal(t, profile.Purple, profile.NextColor(7))
	assert.Equal(t, profile.Blue, profile.NextColor(8), "cycling wraps")
	assert.Equal(t, profile.Green, profile.NextColor(18))
	assert.Equal(t, profile.Blue, profile.NextColor(-1))
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#37adff", profile.Blue.Hex())
	assert.Equal(t, "#af51f5", profile.Purple.Hex())
	assert.Empty(t, profile.Color("magenta").Hex())
	assert.False(t, profile.Color("magenta").Valid())

	for _, c := range profile.Palette {
		assert.True(t, c.Valid(), c)
	}
}
