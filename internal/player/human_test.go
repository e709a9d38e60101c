package player

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relearn/internal/game"
)

func TestHuman_ChooseMove(t *testing.T) {
	t.Run("Relays the typed cell index", func(t *testing.T) {
		// Given: a participant who types cell 4
		var out strings.Builder
		human := NewHuman(strings.NewReader("4\n"), &out)

		// When: asking for a move
		cell, err := human.ChooseMove(game.NewBoard(), game.PlayerX)

		// Then: the index is returned and the board was shown
		require.NoError(t, err)
		assert.Equal(t, 4, cell)
		assert.Contains(t, out.String(), "Available moves")
	})

	t.Run("Prompts again on non-numeric input", func(t *testing.T) {
		// Given: a participant who mistypes before entering a number
		var out strings.Builder
		human := NewHuman(strings.NewReader("oops\n7\n"), &out)

		// When: asking for a move
		cell, err := human.ChooseMove(game.NewBoard(), game.PlayerX)

		// Then: the retry succeeds
		require.NoError(t, err)
		assert.Equal(t, 7, cell)
		assert.Contains(t, out.String(), "Please enter a cell number.")
	})

	t.Run("Fails when the input ends", func(t *testing.T) {
		// Given: a closed input
		var out strings.Builder
		human := NewHuman(strings.NewReader(""), &out)

		// When: asking for a move
		_, err := human.ChooseMove(game.NewBoard(), game.PlayerX)

		// Then: the failure propagates instead of looping
		require.Error(t, err)
	})
}
