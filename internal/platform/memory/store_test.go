package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetkeep/wardrobe-api/internal/store"
)

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	doc := json.RawMessage(`{"name":"Tee"}`)
	require.NoError(t, s.Put(ctx, store.TableClothes, "c1", doc))

	got, err := s.GetByID(ctx, store.TableClothes, "c1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Tee"}`, string(got))
}

func TestStoreGetByIDMissing(t *testing.T) {
	s := NewStore()

	_, err := s.GetByID(context.Background(), store.TableClothes, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoreGetAllSorted(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Put(ctx, store.TableClothes, "b", json.RawMessage(`{}`)))
	require.NoError(t, s.Put(ctx, store.TableClothes, "a", json.RawMessage(`{}`)))
	require.NoError(t, s.Put(ctx, store.TableClothes, "c", json.RawMessage(`{}`)))

	records, err := s.GetAll(ctx, store.TableClothes)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "c", records[2].ID)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Put(ctx, store.TableClothes, "c1", json.RawMessage(`{}`)))
	require.NoError(t, s.Delete(ctx, store.TableClothes, "c1"))

	err := s.Delete(ctx, store.TableClothes, "c1")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoreBulkOperations(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.BulkPut(ctx, store.TableClothes, []store.Record{
		{ID: "a", Doc: json.RawMessage(`{"n":1}`)},
		{ID: "b", Doc: json.RawMessage(`{"n":2}`)},
		{ID: "c", Doc: json.RawMessage(`{"n":3}`)},
	})
	require.NoError(t, err)

	// Missing IDs in a bulk delete are skipped, not errors.
	require.NoError(t, s.BulkDelete(ctx, store.TableClothes, []string{"a", "missing"}))

	records, err := s.GetAll(ctx, store.TableClothes)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStoreClearIsolatesTables(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Put(ctx, store.TableClothes, "c1", json.RawMessage(`{}`)))
	require.NoError(t, s.Put(ctx, store.TableOutfits, "o1", json.RawMessage(`{}`)))

	require.NoError(t, s.Clear(ctx, store.TableClothes))

	records, err := s.GetAll(ctx, store.TableClothes)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = s.GetAll(ctx, store.TableOutfits)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	original := json.RawMessage(`{"name":"Tee"}`)
	require.NoError(t, s.Put(ctx, store.TableClothes, "c1", original))

	// Mutating the caller's slice after Put must not leak into the store.
	original[9] = 'X'

	got, err := s.GetByID(ctx, store.TableClothes, "c1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Tee"}`, string(got))

	// Mutating a read result must not corrupt later reads.
	got[9] = 'Y'
	again, err := s.GetByID(ctx, store.TableClothes, "c1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Tee"}`, string(again))
}
