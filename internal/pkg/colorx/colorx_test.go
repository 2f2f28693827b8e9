package colorx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForUserIsStable(t *testing.T) {
	first := ForUser("u-alice")
	assert.NotEmpty(t, first)
	assert.Equal(t, first, ForUser("u-alice"))
}

func TestForUserAlwaysReturnsPaletteColor(t *testing.T) {
	ids := []string{"", "u-alice", "u-bob", "a-very-long-user-identifier-0123456789"}
	for _, id := range ids {
		assert.Contains(t, palette, ForUser(id), "id %q", id)
	}
}
