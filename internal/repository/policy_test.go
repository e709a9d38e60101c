package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relearn/internal/game"
	"relearn/testing/suite"
)

func TestPolicyRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewPolicyRepository(st.Storage)

	// Given: a learned table
	policy := game.Policy{0: 4, 42: 7}

	// When: Save is called
	err := repo.Save(ctx, "minmax", policy)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestPolicyRepository_Load(t *testing.T) {
	t.Run("Load_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewPolicyRepository(st.Storage)

		// Given: a saved table
		policy := game.Policy{0: 4, 42: 7, 19682: 3}
		require.NoError(t, repo.Save(ctx, "minmax", policy))

		// When: Load is called for the same name
		loaded, err := repo.Load(ctx, "minmax")

		// Then: the loaded table matches the saved one exactly
		require.NoError(t, err)
		assert.Equal(t, policy, loaded)
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewPolicyRepository(st.Storage)

		// When: Load is called for a name that was never saved
		_, err := repo.Load(ctx, "unknown")

		// Then: an ErrPolicyNotFound error should be returned
		require.ErrorIs(t, err, ErrPolicyNotFound)
	})
}
