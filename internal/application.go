package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"relearn/internal/apperror"
	"relearn/internal/arena"
	"relearn/internal/config"
	"relearn/internal/player"
	"relearn/internal/repository"
	"relearn/internal/repository/storage"
)

var (
	ErrUsage          = errors.New("usage: relearn play <player1> <player2> <game-count> | relearn learn <player>")
	ErrBadGameCount   = errors.New("game count must be a non-negative integer")
	ErrUnknownStorage = errors.New("unknown storage backend")
)

// RunApp - dispatches the CLI subcommands.
func RunApp(logger *slog.Logger, conf *config.Config, args []string) error {
	log := logger.With("component", "app")

	ctx := context.Background()

	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "play":
		return runPlay(ctx, log, conf, args[1:])
	case "learn":
		return runLearn(ctx, log, conf, args[1:])
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownCommand, args[0])
	}
}

// runPlay builds the two players, runs the batch and prints the summary.
func runPlay(ctx context.Context, log *slog.Logger, conf *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}

	gameCount, err := strconv.Atoi(args[2])
	if err != nil || gameCount < 0 {
		return fmt.Errorf("%w: %q", ErrBadGameCount, args[2])
	}

	// The policy store is only needed when a learned player takes part.
	var repo repository.PolicyRepository
	closeRepo := func() {}

	if args[0] == player.KindMinmax || args[1] == player.KindMinmax {
		repo, closeRepo, err = openPolicyRepository(ctx, conf)
		if err != nil {
			return err
		}
	}
	defer closeRepo()

	player1, err := buildPlayer(ctx, args[0], repo)
	if err != nil {
		return err
	}

	player2, err := buildPlayer(ctx, args[1], repo)
	if err != nil {
		return err
	}

	games := arena.New(log, player1, player2, arena.WithWorkers(conf.Workers))

	result, err := games.Run(gameCount)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	fmt.Println(result)

	return nil
}

// runLearn trains a trainable player from the empty board and persists
// its policy table. A persistence failure is reported as such: the
// learning itself already succeeded in memory.
func runLearn(ctx context.Context, log *slog.Logger, conf *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	kind := args[0]

	switch kind {
	case player.KindMinmax:
	case player.KindHuman, player.KindRandom:
		return fmt.Errorf("%w: %s", apperror.ErrNonTrainablePlayer, kind)
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownPlayerKind, kind)
	}

	var trainable player.Trainable = player.NewMinmax()

	log.Info("learning policy", "player", kind)
	trainable.Learn()
	log.Info("policy learned", "player", kind, "boards", len(trainable.Policy()))

	repo, closeRepo, err := openPolicyRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	if err = repo.Save(ctx, kind, trainable.Policy()); err != nil {
		return fmt.Errorf("policy was learned but could not be persisted: %w", err)
	}

	log.Info("policy persisted", "player", kind, "storage", conf.Storage)

	return nil
}

// buildPlayer constructs one player of the given kind. A minmax player
// requires a previously persisted policy; it is never silently replaced
// with another kind.
func buildPlayer(ctx context.Context, kind string, repo repository.PolicyRepository) (player.Player, error) {
	switch kind {
	case player.KindHuman:
		return player.NewHuman(os.Stdin, os.Stdout), nil
	case player.KindRandom:
		return player.NewRandom(rand.New(rand.NewSource(time.Now().UnixNano()))), nil
	case player.KindMinmax:
		policy, err := repo.Load(ctx, kind)
		if err != nil {
			if errors.Is(err, repository.ErrPolicyNotFound) {
				return nil, fmt.Errorf("%w: run `relearn learn %s` first", err, kind)
			}

			return nil, fmt.Errorf("could not load %s policy: %w", kind, err)
		}

		minmax := player.NewMinmax()
		minmax.SetPolicy(policy)

		return minmax, nil
	default:
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownPlayerKind, kind)
	}
}

// openPolicyRepository picks the persistence backend from the config.
func openPolicyRepository(ctx context.Context, conf *config.Config) (repository.PolicyRepository, func(), error) {
	switch conf.Storage {
	case config.StorageFile:
		return repository.NewFilePolicyRepository(conf.PolicyDir), func() {}, nil
	case config.StorageRedis:
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewPolicyRepository(redisStorage.Connection), func() {
			_ = redisStorage.Close()
		}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownStorage, conf.Storage)
	}
}
