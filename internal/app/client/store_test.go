package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindfulsteps/internal/domain/goal"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data.db"), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store { return newTestSQLite(t) },
		"memory": func(*testing.T) Store { return NewMemoryStore(discardLogger()) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			var g goal.StepGoal
			found, err := store.Get(ctx, KeyGoals, &g)
			require.NoError(t, err)
			assert.False(t, found)

			want := goal.StepGoal{Daily: 4000, Weekly: 28000, Monthly: 120000}
			require.NoError(t, store.Set(ctx, KeyGoals, want))
			require.NoError(t, store.Set(ctx, KeyGoals, want))

			found, err = store.Get(ctx, KeyGoals, &g)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, want, g)

			require.NoError(t, store.Remove(ctx, KeyGoals))
			found, err = store.Get(ctx, KeyGoals, &g)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Set(ctx, KeyStreak, map[string]int{"current": 1}))
			require.NoError(t, store.Set(ctx, KeyPhotos, []string{}))
			require.NoError(t, store.Clear(ctx))

			var st map[string]int
			found, err = store.Get(ctx, KeyStreak, &st)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestSQLiteStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	require.NoError(t, store.setRaw(ctx, KeyWalkLogs, "[{broken"))

	logs := []string{"default"}
	found, err := store.Get(ctx, KeyWalkLogs, &logs)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []string{"default"}, logs)
}

func TestSQLiteStore_KeyLayout(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)
	require.NoError(t, store.Set(ctx, KeyGoals, goal.Default()))

	var key, version string
	err := store.db.QueryRowContext(ctx, "SELECT key, version FROM documents").Scan(&key, &version)
	require.NoError(t, err)
	assert.Equal(t, "mindful-steps-goals", key)
	assert.Equal(t, "1.0", version)
}

func TestMemoryStore_CorruptValue(t *testing.T) {
	store := NewMemoryStore(discardLogger())
	require.NoError(t, store.setRaw(context.Background(), KeyGoals, "not json at all"))

	g := goal.Default()
	found, err := store.Get(context.Background(), KeyGoals, &g)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, goal.Default(), g)
}

func TestStores_TypeMismatchKeepsDestination(t *testing.T) {
	type rawStore interface {
		Store
		setRaw(ctx context.Context, key, raw string) error
	}
	stores := map[string]func(t *testing.T) rawStore{
		"sqlite": func(t *testing.T) rawStore { return newTestSQLite(t) },
		"memory": func(*testing.T) rawStore { return NewMemoryStore(discardLogger()) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			// weekly разбирается раньше, чем обнаруживается ошибка в daily
			require.NoError(t, store.setRaw(ctx, KeyGoals, `{"weekly":9,"daily":"x"}`))

			g := goal.Default()
			found, err := store.Get(ctx, KeyGoals, &g)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Equal(t, goal.Default(), g)
		})
	}
}

func TestDecode_NonPointer(t *testing.T) {
	var g goal.StepGoal
	assert.False(t, decode(discardLogger(), KeyGoals, []byte(`{"daily":1}`), g))
	assert.False(t, decode(discardLogger(), KeyGoals, []byte(`{"daily":1}`), (*goal.StepGoal)(nil)))

	assert.True(t, decode(discardLogger(), KeyGoals, []byte(`{"daily":1}`), &g))
	assert.Equal(t, 1, g.Daily)
}
