package arena

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"relearn/internal/apperror"
	"relearn/internal/game"
	"relearn/internal/player"
)

// GamesResult tallies batch outcomes relative to the first player.
type GamesResult struct {
	Wins   int
	Draws  int
	Losses int
}

// Add merges another tally into this one. Addition is commutative, so
// worker tallies can be folded in any order.
func (that *GamesResult) Add(other GamesResult) {
	that.Wins += other.Wins
	that.Draws += other.Draws
	that.Losses += other.Losses
}

func (that GamesResult) GameCount() int {
	return that.Wins + that.Draws + that.Losses
}

// String renders the percentage summary for the batch.
func (that GamesResult) String() string {
	count := that.GameCount()
	if count == 0 {
		return "Win: 0.00%, Draw: 0.00%, Loss: 0.00%, Game Count: 0"
	}

	return fmt.Sprintf(
		"Win: %.2f%%, Draw: %.2f%%, Loss: %.2f%%, Game Count: %d",
		float64(that.Wins)/float64(count)*100,
		float64(that.Draws)/float64(count)*100,
		float64(that.Losses)/float64(count)*100,
		count,
	)
}

type Option func(arena *Arena)

// WithWorkers caps the number of worker goroutines for a batch.
func WithWorkers(workers int) Option {
	return func(that *Arena) {
		if workers > 0 {
			that.maxWorkers = workers
		}
	}
}

// Arena plays batches of games between two fixed players and aggregates
// the outcomes. Both players are read-only for the whole batch; every
// worker owns its boards and its random generator exclusively.
type Arena struct {
	logger     *slog.Logger
	player1    player.Player
	player2    player.Player
	maxWorkers int
}

func New(logger *slog.Logger, player1, player2 player.Player, options ...Option) *Arena {
	arena := &Arena{
		logger:  logger.With("component", "arena"),
		player1: player1,
		player2: player2,
	}

	for _, option := range options {
		option(arena)
	}

	return arena
}

// Run plays n games split evenly across min(cores, n) workers and
// returns the summed tally. Each worker plays n/workers games; the
// remainder games are intentionally not played, matching the truncating
// split the summary reports through its game count. Any worker failure
// fails the whole batch.
func (that *Arena) Run(n int) (GamesResult, error) {
	if n <= 0 {
		return GamesResult{}, nil
	}

	workers := min(runtime.NumCPU(), n)
	if that.maxWorkers > 0 {
		workers = min(workers, that.maxWorkers)
	}

	share := n / workers

	that.logger.Debug("starting batch", "games", n, "workers", workers, "games_per_worker", share)

	results := make([]GamesResult, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(w)))
			player1 := workerPlayer(that.player1, rng)
			player2 := workerPlayer(that.player2, rng)

			results[w], errs[w] = that.playShare(player1, player2, share)
		}(w)
	}
	wg.Wait()

	var total GamesResult
	for w := range results {
		if errs[w] != nil {
			return GamesResult{}, fmt.Errorf("worker %d: %w", w, errs[w])
		}

		total.Add(results[w])
	}

	return total, nil
}

// playShare runs one worker's games sequentially, alternating which
// player moves first and classifying every outcome relative to player 1.
func (that *Arena) playShare(player1, player2 player.Player, n int) (GamesResult, error) {
	var result GamesResult

	firstPlayer := false

	for i := 0; i < n; i++ {
		firstPlayer = !firstPlayer

		var winner string
		var err error

		if firstPlayer {
			winner, err = PlayGame(player1, player2)
		} else {
			winner, err = PlayGame(player2, player1)
		}

		if err != nil {
			return GamesResult{}, err
		}

		switch {
		case winner == game.PlayerTie:
			result.Draws++
		case (winner == game.PlayerX) == firstPlayer:
			result.Wins++
		default:
			result.Losses++
		}
	}

	return result, nil
}

// PlayGame runs a single game to its terminal state, xPlayer moving
// first as X, and returns the winning mark or PlayerTie. A rejected move
// from an interactive player prompts the same mover again; from any
// other kind it is a defect and fails the game.
func PlayGame(xPlayer, oPlayer player.Player) (string, error) {
	board := game.NewBoard()
	players := map[string]player.Player{
		game.PlayerX: xPlayer,
		game.PlayerO: oPlayer,
	}

	mark := game.PlayerX

	for {
		current := players[mark]

		cell, err := current.ChooseMove(board, mark)
		if err != nil {
			return "", fmt.Errorf("player %s could not choose a move: %w", mark, err)
		}

		if err = board.Apply(mark, cell); err != nil {
			if isMoveError(err) && isInteractive(current) {
				// The same mover tries again.
				continue
			}

			return "", fmt.Errorf("player %s played an illegal move: %w", mark, err)
		}

		if status, winner := board.Status(); status == game.StatusFinished {
			return winner, nil
		}

		mark = game.Opponent(mark)
	}
}

func isMoveError(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, apperror.ErrCellOutOfBounds)
}

func isInteractive(p player.Player) bool {
	_, ok := p.(*player.Human)
	return ok
}

// workerPlayer returns the player instance a worker should use. Random
// players get a worker-local copy around the worker's generator; other
// kinds are safe to share because they hold no mutable state during play.
func workerPlayer(p player.Player, rng *rand.Rand) player.Player {
	if _, ok := p.(*player.Random); ok {
		return player.NewRandom(rng)
	}

	return p
}
