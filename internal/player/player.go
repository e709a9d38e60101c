package player

import (
	"relearn/internal/game"
)

const (
	KindHuman  = "human"
	KindRandom = "random"
	KindMinmax = "minmax"
)

// Player is a playing strategy: given a board and the mark whose turn it
// is, it chooses a cell. Bounds and occupancy of the chosen cell are
// validated by the rules engine, not by the player.
type Player interface {
	ChooseMove(board *game.Board, mark string) (int, error)
}

// Trainable is implemented by player kinds that build a policy table and
// can have it persisted and restored.
type Trainable interface {
	Player

	Learn()
	Policy() game.Policy
	SetPolicy(policy game.Policy)
}
