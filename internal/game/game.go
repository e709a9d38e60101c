package game

import (
	"fmt"
	"strings"

	"relearn/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""

	boardSize = 9
)

// WinCombos lists the 3 rows, 3 columns and 2 diagonals of the board.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Policy maps a board key to the best cell for the mark whose turn it is.
// Built once by a learning player and read-only afterwards.
type Policy map[uint16]int

// Board is a single tic-tac-toe position: nine cells plus the indices of
// the cells that are still empty. The board is branched with Clone during
// search, never shared mutably.
type Board struct {
	Cells     [boardSize]string
	Available []int
}

// NewBoard returns an empty board with all nine cells available.
func NewBoard() *Board {
	available := make([]int, 0, boardSize)
	for i := 0; i < boardSize; i++ {
		available = append(available, i)
	}

	return &Board{Available: available}
}

// Clone returns a deep copy of the board so a search branch can mutate it
// without touching the original.
func (that *Board) Clone() *Board {
	available := make([]int, len(that.Available))
	copy(available, that.Available)

	return &Board{Cells: that.Cells, Available: available}
}

// Apply places mark on the given cell and removes the cell from the
// available list. The board is left untouched when the move is rejected.
// The available list keeps its ascending order, so callers enumerating it
// always see moves in lowest-index-first order.
func (that *Board) Apply(mark string, cell int) error {
	if cell < 0 || cell >= boardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOutOfBounds, cell)
	}

	if that.Cells[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Cells[cell] = mark

	for i, available := range that.Available {
		if available == cell {
			that.Available = append(that.Available[:i], that.Available[i+1:]...)
			break
		}
	}

	return nil
}

// Status reports whether the game is over and who won. The winner is
// PlayerTie on a draw and empty while the game is ongoing.
func (that *Board) Status() (string, string) {
	// A winning line needs at least five placed marks, so the line scan
	// is skipped while more than four cells are empty. Only holds for a
	// 3x3 board with the three-in-a-row win condition.
	if len(that.Available) <= boardSize-5 {
		for _, combo := range WinCombos {
			a, b, c := that.Cells[combo[0]], that.Cells[combo[1]], that.Cells[combo[2]]
			if a != EmptyCell && a == b && b == c {
				return StatusFinished, a
			}
		}
	}

	if len(that.Available) == 0 {
		return StatusFinished, PlayerTie
	}

	return StatusOngoing, EmptyCell
}

// Key encodes the cell contents as a base-3 number. Two boards with the
// same cells always produce the same key regardless of how their
// available lists are ordered, and all 3^9 possible values fit in a
// uint16.
func (that *Board) Key() uint16 {
	var key uint16

	for i := boardSize - 1; i >= 0; i-- {
		key *= 3

		switch that.Cells[i] {
		case PlayerX:
			key++
		case PlayerO:
			key += 2
		}
	}

	return key
}

// Opponent returns the mark that moves after the given one.
func Opponent(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}

	return PlayerX
}

// String renders the board as a grid for interactive play.
func (that *Board) String() string {
	var builder strings.Builder

	for i, cell := range that.Cells {
		if cell == EmptyCell {
			builder.WriteString("   ")
		} else {
			fmt.Fprintf(&builder, " %s ", cell)
		}

		switch {
		case i%3 < 2:
			builder.WriteString("|")
		case i < boardSize-1:
			builder.WriteString("\n---+---+---\n")
		}
	}

	return builder.String()
}
