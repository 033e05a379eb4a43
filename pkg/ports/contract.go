package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/slipway/pkg/domain"
)

// RunStateStoreContract runs a suite of tests verifying that a StateStore
// implementation adheres to the interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID, "dynatraceOnboarding")
		state.Data["dynatraceOnboarding_response"] = "no"
		state.History = append(state.History, "dynatraceOnboarding")

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.CurrentSlide, loaded.CurrentSlide)
		assert.Equal(t, state.Phase, loaded.Phase)
		assert.Equal(t, "no", loaded.Data["dynatraceOnboarding_response"])
		assert.Equal(t, []string{"dynatraceOnboarding"}, loaded.History)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		state := domain.NewState(sessionID, "dynatraceOnboarding")
		require.NoError(t, store.Save(ctx, sessionID, state))

		first, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		first.Data["mutated"] = "yes"

		second, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.NotContains(t, second.Data, "mutated", "stored state must not alias loaded copies")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID, "dynatraceOnboarding"))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1, "dynatraceOnboarding"))
		_ = store.Save(ctx, id2, domain.NewState(id2, "dynatraceOnboarding"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
