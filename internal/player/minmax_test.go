package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relearn/internal/game"
)

func TestMinmax_ChooseMove(t *testing.T) {
	t.Run("Takes an immediate win", func(t *testing.T) {
		// Given: X threatens the top row and O the middle row
		board := boardFromMoves(t,
			move{game.PlayerX, 0}, move{game.PlayerO, 3},
			move{game.PlayerX, 1}, move{game.PlayerO, 4},
		)

		// When: the search picks X's move
		cell, err := NewMinmax().ChooseMove(board, game.PlayerX)

		// Then: X completes its own row instead of blocking
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Blocks the opponent's winning move", func(t *testing.T) {
		// Given: O threatens cell 5 and X has no win of its own
		board := boardFromMoves(t,
			move{game.PlayerX, 0}, move{game.PlayerO, 3},
			move{game.PlayerX, 8}, move{game.PlayerO, 4},
		)

		// When: the search picks X's move
		cell, err := NewMinmax().ChooseMove(board, game.PlayerX)

		// Then: blocking is the only move that avoids a loss
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
	})

	t.Run("Chosen move is no worse than any alternative", func(t *testing.T) {
		// Given: an ongoing midgame board
		board := boardFromMoves(t,
			move{game.PlayerX, 4}, move{game.PlayerO, 0},
			move{game.PlayerX, 8},
		)
		minmax := NewMinmax()

		// When: valuing the chosen move and every alternative
		chosenValue, chosen := minmax.maximize(board, game.PlayerO)

		for _, cell := range board.Available {
			next := board.Clone()
			require.NoError(t, next.Apply(game.PlayerO, cell))
			value, _ := minmax.minimize(next, game.PlayerO)

			// Then: no alternative strictly beats the chosen move
			assert.LessOrEqual(t, value, chosenValue, "cell %d beats chosen cell %d", cell, chosen)
		}
	})
}

func TestMinmax_Learn(t *testing.T) {
	t.Run("Learned table answers the empty board with a legal move", func(t *testing.T) {
		// Given: a freshly learned player
		minmax := NewMinmax()
		minmax.Learn()

		// When: looking up the empty board
		board := game.NewBoard()
		cell, err := minmax.ChooseMove(board, game.PlayerX)

		// Then: the answer is one of the nine legal cells
		require.NoError(t, err)
		assert.Contains(t, board.Available, cell)
		assert.NotEmpty(t, minmax.Policy())
	})

	t.Run("Two learned players always draw", func(t *testing.T) {
		// Given: one learned policy shared by both sides
		minmax := NewMinmax()
		minmax.Learn()

		other := NewMinmax()
		other.SetPolicy(minmax.Policy())

		// When: playing a full game with each side following the table
		board := game.NewBoard()
		mark := game.PlayerX
		players := map[string]Player{game.PlayerX: minmax, game.PlayerO: other}

		for {
			cell, err := players[mark].ChooseMove(board, mark)
			require.NoError(t, err)
			require.NoError(t, board.Apply(mark, cell))

			if status, winner := board.Status(); status == game.StatusFinished {
				// Then: perfect play against perfect play is a draw
				assert.Equal(t, game.PlayerTie, winner)
				break
			}

			mark = game.Opponent(mark)
		}
	})

	t.Run("Lookup outside the table is a distinct error", func(t *testing.T) {
		// Given: a player with an empty installed table
		minmax := NewMinmax()
		minmax.SetPolicy(game.Policy{})

		// When: looking up any board
		_, err := minmax.ChooseMove(game.NewBoard(), game.PlayerX)

		// Then: the miss is reported, never played around
		require.ErrorIs(t, err, ErrMissingPolicyEntry)
	})
}

type move struct {
	mark string
	cell int
}

func boardFromMoves(t *testing.T, moves ...move) *game.Board {
	t.Helper()

	board := game.NewBoard()
	for _, m := range moves {
		require.NoError(t, board.Apply(m.mark, m.cell))
	}

	return board
}
