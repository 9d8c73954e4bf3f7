package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(discardLogger())
	q := NewQueue(store)

	first, err := q.Enqueue(ctx, KindWalkLogDelete, "w1")
	require.NoError(t, err)
	second, err := q.Enqueue(ctx, KindPhotoDelete, "p1")
	require.NoError(t, err)
	third, err := q.Enqueue(ctx, KindWalkLogDelete, "w2")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotZero(t, first.QueuedAt)

	items, err := q.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, []string{items[0].ID, items[1].ID, items[2].ID})

	require.NoError(t, q.Remove(ctx, second.ID))
	items, err = q.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, third.ID, items[1].ID)

	require.NoError(t, q.Remove(ctx, first.ID, third.ID))
	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	var raw []QueueItem
	found, err := store.Get(ctx, KeySyncQueue, &raw)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQueue_RemoveNothing(t *testing.T) {
	q := NewQueue(NewMemoryStore(discardLogger()))
	assert.NoError(t, q.Remove(context.Background()))
}
