package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()

	item, err := store.Save(context.Background(), testDefinition("alpha"), "id-1", StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, "id-1", item.AgentID)
	assert.Equal(t, StatusDraft, item.Status)
	assert.NotZero(t, item.CreatedAt)

	got, ok, err := store.Get(context.Background(), "alpha")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "id-1", got.AgentID)
	assert.Equal(t, testDefinition("alpha"), got.Definition)

	_, ok, err = store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_SaveKeepsCreationTime(t *testing.T) {
	store := NewMemoryStore()

	first, err := store.Save(context.Background(), testDefinition("alpha"), "id-1", StatusDraft)
	require.NoError(t, err)

	second, err := store.Save(context.Background(), testDefinition("alpha"), "id-2", StatusDraft)
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "id-2", second.AgentID)
}

func TestMemoryStore_UpdateStatus(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Save(context.Background(), testDefinition("alpha"), "id-1", StatusDraft)
	require.NoError(t, err)

	err = store.UpdateStatus(context.Background(), "alpha", StatusFailed, "model unavailable")
	require.NoError(t, err)

	item, ok, err := store.Get(context.Background(), "alpha")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, item.Status)
	assert.Equal(t, "model unavailable", item.Error)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()

	ok, err := store.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Save(context.Background(), testDefinition("alpha"), "id-1", StatusDraft)
	require.NoError(t, err)

	ok, err = store.Delete(context.Background(), "alpha")
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = store.List(context.Background(), 1, 10)
	require.NoError(t, err)
}

func TestMemoryStore_ListPreservesInsertionOrder(t *testing.T) {
	store := NewMemoryStore()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		_, err := store.Save(context.Background(), testDefinition(name), "id-"+name, StatusDraft)
		require.NoError(t, err)
	}

	items, total, err := store.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, "charlie", items[0].Definition.Name)
	assert.Equal(t, "alpha", items[1].Definition.Name)
	assert.Equal(t, "bravo", items[2].Definition.Name)
}

func TestPaginate(t *testing.T) {
	items := make([]StoredAgent, 5)

	assert.Len(t, paginate(items, 1, 2), 2)
	assert.Len(t, paginate(items, 3, 2), 1)
	assert.Empty(t, paginate(items, 4, 2))
	assert.Len(t, paginate(items, 0, 0), 5)
}

func TestSortByCreatedDesc(t *testing.T) {
	now := time.Now()
	items := []StoredAgent{
		{AgentID: "old", CreatedAt: now.Add(-time.Hour)},
		{AgentID: "new", CreatedAt: now},
		{AgentID: "mid", CreatedAt: now.Add(-time.Minute)},
	}

	sortByCreatedDesc(items)

	assert.Equal(t, "new", items[0].AgentID)
	assert.Equal(t, "mid", items[1].AgentID)
	assert.Equal(t, "old", items[2].AgentID)
}
