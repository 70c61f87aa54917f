// Tests live in store_test because they drive the collection through the
// in-memory backend, which itself imports this package.
package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetkeep/wardrobe-api/internal/platform/memory"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

type widget struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newWidgets(t *testing.T) *store.Collection[widget] {
	t.Helper()
	return store.NewCollection[widget](memory.NewStore(), store.TableClothes)
}

func TestCollectionPutGet(t *testing.T) {
	ctx := context.Background()
	widgets := newWidgets(t)

	require.NoError(t, widgets.Put(ctx, "w1", &widget{ID: "w1", Name: "one"}))

	got, err := widgets.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Name)

	_, err = widgets.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.True(t, store.IsNotFoundError(err))
}

func TestCollectionGetAll(t *testing.T) {
	ctx := context.Background()
	widgets := newWidgets(t)

	require.NoError(t, widgets.Put(ctx, "b", &widget{ID: "b"}))
	require.NoError(t, widgets.Put(ctx, "a", &widget{ID: "a"}))

	all, err := widgets.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
}

func TestCollectionUpdate(t *testing.T) {
	ctx := context.Background()
	widgets := newWidgets(t)

	require.NoError(t, widgets.Put(ctx, "w1", &widget{ID: "w1", Name: "one", Count: 1}))

	updated, err := widgets.Update(ctx, "w1", func(w *widget) error {
		w.Count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Count)

	// Fields the mutation never touched survive the round-trip.
	got, err := widgets.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Name)
	assert.Equal(t, 2, got.Count)
}

func TestCollectionUpdateMutateError(t *testing.T) {
	ctx := context.Background()
	widgets := newWidgets(t)

	require.NoError(t, widgets.Put(ctx, "w1", &widget{ID: "w1", Count: 1}))

	boom := errors.New("boom")
	_, err := widgets.Update(ctx, "w1", func(w *widget) error {
		w.Count = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// A failed mutation writes nothing.
	got, err := widgets.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
}

func TestCollectionUpdateMissing(t *testing.T) {
	widgets := newWidgets(t)

	_, err := widgets.Update(context.Background(), "missing", func(w *widget) error { return nil })
	require.Error(t, err)
	assert.True(t, store.IsNotFoundError(err))
}

func TestCollectionDelete(t *testing.T) {
	ctx := context.Background()
	widgets := newWidgets(t)

	require.NoError(t, widgets.Put(ctx, "w1", &widget{ID: "w1"}))
	require.NoError(t, widgets.Delete(ctx, "w1"))

	err := widgets.Delete(ctx, "w1")
	require.Error(t, err)
	assert.True(t, store.IsNotFoundError(err))
}
