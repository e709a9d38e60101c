package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"relearn/internal/game"
)

// Human relays moves from an interactive participant. It renders the
// board, lists the available cells and reads an index from its input.
// Occupied or out-of-bounds picks are rejected by the rules engine and
// the game loop prompts the same mover again.
type Human struct {
	in  *bufio.Reader
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (that *Human) ChooseMove(board *game.Board, mark string) (int, error) {
	fmt.Fprintln(that.out, board)
	fmt.Fprintf(that.out, "Available moves: %v\n", board.Available)

	for {
		fmt.Fprintf(that.out, "Player %s, pick a cell: ", mark)

		line, err := that.in.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("could not read move: %w", err)
		}

		cell, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(that.out, "Please enter a cell number.")
			continue
		}

		return cell, nil
	}
}
