package player

import (
	"errors"
	"fmt"

	"relearn/internal/game"
)

const (
	utilityWin  = 1
	utilityDraw = 0
	utilityLoss = -1
)

var ErrMissingPolicyEntry = errors.New("no policy entry for board")

type searchResult struct {
	value int
	cell  int
}

// Minmax chooses moves by exhaustive adversarial search: maximize and
// minimize alternate by ply down to a terminal board, scoring +1/0/-1
// from the searching player's point of view. Among equally good moves the
// earliest one in the available list wins, so move choice follows the
// list's ascending order.
//
// Without a policy table every ChooseMove runs a fresh search over the
// remaining subtree. After Learn the table answers every reachable
// ongoing board and ChooseMove becomes a lookup.
type Minmax struct {
	policy game.Policy
	memo   map[uint16]searchResult
}

func NewMinmax() *Minmax {
	return &Minmax{}
}

// ChooseMove returns the table entry for the board when a policy is
// present, otherwise it searches. A table miss means the table was built
// from a different game or not at all, which is a caller defect.
func (that *Minmax) ChooseMove(board *game.Board, mark string) (int, error) {
	if that.policy != nil {
		cell, ok := that.policy[board.Key()]
		if !ok {
			return 0, fmt.Errorf("%w: key %d", ErrMissingPolicyEntry, board.Key())
		}

		return cell, nil
	}

	_, cell := that.maximize(board, mark)
	if cell < 0 {
		return 0, ErrNoAvailableMoves
	}

	return cell, nil
}

// Learn explores every board reachable from the empty one and records
// the best move for each ongoing board it visits, for both the
// maximizing and the minimizing side, so a learned player can move with
// either mark. The learning traversal is exhaustive: the one-shot
// win/loss cutoff stays off so no reachable board is skipped, and exact
// positions reached through different move orders are searched once via
// the memo table.
func (that *Minmax) Learn() {
	that.memo = make(map[uint16]searchResult)

	that.maximize(game.NewBoard(), game.PlayerX)

	policy := make(game.Policy, len(that.memo))
	for key, result := range that.memo {
		policy[key] = result.cell
	}

	that.memo = nil
	that.policy = policy
}

// Policy returns the learned table, nil before Learn or SetPolicy.
func (that *Minmax) Policy() game.Policy {
	return that.policy
}

// SetPolicy installs a previously learned table, e.g. one restored from
// storage. The table is used read-only from here on.
func (that *Minmax) SetPolicy(policy game.Policy) {
	that.policy = policy
}

func (that *Minmax) maximize(board *game.Board, self string) (int, int) {
	if status, winner := board.Status(); status == game.StatusFinished {
		return utility(winner, self), -1
	}

	if result, ok := that.memo[board.Key()]; ok {
		return result.value, result.cell
	}

	best := utilityLoss - 1 // below any reachable utility
	bestCell := -1

	for _, cell := range board.Available {
		next := board.Clone()
		if err := next.Apply(self, cell); err != nil {
			// Moves come straight from the available list, so a
			// rejection here is a programming error.
			panic(fmt.Sprintf("illegal move %d drawn from available list: %v", cell, err))
		}

		value, _ := that.minimize(next, self)
		if value > best {
			best = value
			bestCell = cell
		}

		// No move can beat a guaranteed win, unless we are learning
		// and still need entries for the remaining subtrees.
		if best == utilityWin && that.memo == nil {
			break
		}
	}

	if that.memo != nil {
		that.memo[board.Key()] = searchResult{value: best, cell: bestCell}
	}

	return best, bestCell
}

func (that *Minmax) minimize(board *game.Board, self string) (int, int) {
	if status, winner := board.Status(); status == game.StatusFinished {
		return utility(winner, self), -1
	}

	if result, ok := that.memo[board.Key()]; ok {
		return result.value, result.cell
	}

	worst := utilityWin + 1
	worstCell := -1

	for _, cell := range board.Available {
		next := board.Clone()
		if err := next.Apply(game.Opponent(self), cell); err != nil {
			panic(fmt.Sprintf("illegal move %d drawn from available list: %v", cell, err))
		}

		value, _ := that.maximize(next, self)
		if value < worst {
			worst = value
			worstCell = cell
		}

		// Symmetric cutoff: the opponent cannot do better than a win
		// of their own.
		if worst == utilityLoss && that.memo == nil {
			break
		}
	}

	if that.memo != nil {
		that.memo[board.Key()] = searchResult{value: worst, cell: worstCell}
	}

	return worst, worstCell
}

func utility(winner, self string) int {
	switch winner {
	case self:
		return utilityWin
	case game.PlayerTie:
		return utilityDraw
	default:
		return utilityLoss
	}
}
