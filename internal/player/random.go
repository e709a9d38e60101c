package player

import (
	"errors"
	"math/rand"

	"relearn/internal/game"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Random picks a uniformly random cell among the available ones.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random player drawing from the given generator.
// The generator is not synchronized, so concurrent callers must each use
// their own instance.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (that *Random) ChooseMove(board *game.Board, _ string) (int, error) {
	moves := board.Available
	if len(moves) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return moves[that.rng.Intn(len(moves))], nil
}
