package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"relearn/internal/game"
)

const policyFilePerm = 0o600

// filePolicy stores each policy as a single JSON file under a directory,
// the same blob the redis repository stores under a key.
type filePolicy struct {
	dir string
}

func NewFilePolicyRepository(dir string) PolicyRepository {
	return &filePolicy{
		dir: dir,
	}
}

func (that *filePolicy) Save(_ context.Context, name string, policy game.Policy) error {
	policyJSON, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("could not marshal policy: %w", err)
	}

	if err = os.WriteFile(that.path(name), policyJSON, policyFilePerm); err != nil {
		return fmt.Errorf("failed to write policy file: %w", err)
	}

	return nil
}

func (that *filePolicy) Load(_ context.Context, name string) (game.Policy, error) {
	policyJSON, err := os.ReadFile(that.path(name))

	if os.IsNotExist(err) {
		return nil, ErrPolicyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var policy game.Policy
	if err = json.Unmarshal(policyJSON, &policy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal policy: %w", err)
	}

	return policy, nil
}

func (that *filePolicy) path(name string) string {
	return filepath.Join(that.dir, name+".json")
}
