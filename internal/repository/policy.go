package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"relearn/internal/game"
)

var ErrPolicyNotFound = errors.New("policy not found")

// PolicyRepository persists learned policy tables as opaque blobs. A
// table is saved wholesale after learning and loaded wholesale before
// play; it is never partially updated. Round trips recover every board
// key and chosen cell exactly.
type PolicyRepository interface {
	Save(ctx context.Context, name string, policy game.Policy) error
	Load(ctx context.Context, name string) (game.Policy, error)
}

type dbPolicy struct {
	client *redis.Client
}

func NewPolicyRepository(client *redis.Client) PolicyRepository {
	return &dbPolicy{
		client: client,
	}
}

func (that *dbPolicy) Save(ctx context.Context, name string, policy game.Policy) error {
	policyJSON, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("could not marshal policy: %w", err)
	}

	policyKey := "policy:" + name

	if err = that.client.Set(ctx, policyKey, policyJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set policy: %w", err)
	}

	return nil
}

func (that *dbPolicy) Load(ctx context.Context, name string) (game.Policy, error) {
	policyKey := "policy:" + name

	response, err := that.client.Get(ctx, policyKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrPolicyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}

	var policy game.Policy
	if err = json.Unmarshal([]byte(response), &policy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal policy: %w", err)
	}

	return policy, nil
}
