package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetkeep/wardrobe-api/internal/platform/memory"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

type tripFixture struct {
	clothes ClothService
	outfits OutfitService
	trips   TripService
}

func newTrips(t *testing.T) (*tripFixture, string) {
	t.Helper()
	rs := memory.NewStore()

	categories, err := NewCategoryService(rs, nil, nil)
	require.NoError(t, err)
	clothes, err := NewClothService(rs, categories, nil, nil)
	require.NoError(t, err)
	prefs, err := NewPreferencesService(rs, nil)
	require.NoError(t, err)
	outfits, err := NewOutfitService(rs, prefs, nil, nil)
	require.NoError(t, err)
	trips, err := NewTripService(rs, nil)
	require.NoError(t, err)

	category, err := categories.AddRoot(context.Background(), CategoryData{Name: "Tops"})
	require.NoError(t, err)

	return &tripFixture{clothes: clothes, outfits: outfits, trips: trips}, category.ID
}

func TestTripServicePackingList(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newTrips(t)

	cloth, err := fx.clothes.Create(ctx, ClothData{Name: "Tee", CategoryID: categoryID})
	require.NoError(t, err)
	outfit, err := fx.outfits.Create(ctx, OutfitData{Name: "Travel", ClothIDs: []string{cloth.ID}})
	require.NoError(t, err)
	trip, err := fx.trips.Create(ctx, TripData{Name: "Lisbon", StartDate: "2026-09-01", EndDate: "2026-09-07"})
	require.NoError(t, err)

	updated, err := fx.trips.AddCloth(ctx, trip.ID, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{cloth.ID}, updated.ClothIDs)

	// Adding the same reference twice does not duplicate it.
	updated, err = fx.trips.AddCloth(ctx, trip.ID, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{cloth.ID}, updated.ClothIDs)

	updated, err = fx.trips.AddOutfit(ctx, trip.ID, outfit.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{outfit.ID}, updated.OutfitIDs)

	updated, err = fx.trips.RemoveCloth(ctx, trip.ID, cloth.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.ClothIDs)

	// Removing an absent reference is a no-op.
	_, err = fx.trips.RemoveCloth(ctx, trip.ID, cloth.ID)
	require.NoError(t, err)
}

func TestTripServiceAddMissingReference(t *testing.T) {
	ctx := context.Background()
	fx, _ := newTrips(t)

	trip, err := fx.trips.Create(ctx, TripData{Name: "Lisbon"})
	require.NoError(t, err)

	_, err = fx.trips.AddCloth(ctx, trip.ID, "no-such-cloth")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrClothNotFound)

	_, err = fx.trips.AddOutfit(ctx, trip.ID, "no-such-outfit")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrOutfitNotFound)

	_, err = fx.trips.AddEssential(ctx, trip.ID, "no-such-essential")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrEssentialNotFound)
}

func TestTripServiceEssentials(t *testing.T) {
	ctx := context.Background()
	fx, _ := newTrips(t)

	essential, err := fx.trips.CreateEssential(ctx, "Passport", "document")
	require.NoError(t, err)
	assert.NotEmpty(t, essential.ID)

	listed, err := fx.trips.ListEssentials(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Passport", listed[0].Name)

	trip, err := fx.trips.Create(ctx, TripData{Name: "Lisbon"})
	require.NoError(t, err)
	updated, err := fx.trips.AddEssential(ctx, trip.ID, essential.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{essential.ID}, updated.EssentialIDs)

	// Deleting the essential leaves the trip's reference dangling.
	require.NoError(t, fx.trips.DeleteEssential(ctx, essential.ID))
	after, err := fx.trips.Get(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{essential.ID}, after.EssentialIDs)
}

func TestTripServiceDeleteKeepsEssentials(t *testing.T) {
	ctx := context.Background()
	fx, _ := newTrips(t)

	essential, err := fx.trips.CreateEssential(ctx, "Charger", "plug")
	require.NoError(t, err)
	trip, err := fx.trips.Create(ctx, TripData{Name: "Lisbon"})
	require.NoError(t, err)
	_, err = fx.trips.AddEssential(ctx, trip.ID, essential.ID)
	require.NoError(t, err)

	require.NoError(t, fx.trips.Delete(ctx, trip.ID))

	_, err = fx.trips.Get(ctx, trip.ID)
	assert.ErrorIs(t, err, store.ErrTripNotFound)

	listed, err := fx.trips.ListEssentials(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
