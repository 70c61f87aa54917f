package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/memory"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

type ledgerFixture struct {
	clothes    ClothService
	outfits    OutfitService
	activities ActivityService
}

// newLedger wires the full activity stack over one in-memory store and
// seeds a category so clothes can be created directly.
func newLedger(t *testing.T) (*ledgerFixture, string) {
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
	activities, err := NewActivityService(rs, clothes, nil)
	require.NoError(t, err)

	category, err := categories.AddRoot(context.Background(), CategoryData{Name: "Tops"})
	require.NoError(t, err)

	return &ledgerFixture{clothes: clothes, outfits: outfits, activities: activities}, category.ID
}

func (f *ledgerFixture) newCloth(t *testing.T, categoryID, name string) *domain.Cloth {
	t.Helper()
	cloth, err := f.clothes.Create(context.Background(), ClothData{Name: name, CategoryID: categoryID})
	require.NoError(t, err)
	return cloth
}

func TestActivityServiceLogWorn(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newLedger(t)
	cloth := fx.newCloth(t, categoryID, "Tee")

	entry, err := fx.activities.Log(ctx, ActivityData{
		Date:     "2026-03-14",
		Kind:     domain.ActivityKindIndividual,
		ClothIDs: []string{cloth.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityStatusWorn, entry.Status)
	assert.True(t, entry.AppliedWearCounts)

	worn, err := fx.clothes.Get(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, worn.CurrentWearCount)
	assert.Equal(t, 1, worn.TotalWearCount)
}

func TestActivityServiceLogPlanned(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newLedger(t)
	cloth := fx.newCloth(t, categoryID, "Tee")

	entry, err := fx.activities.Log(ctx, ActivityData{
		Date:     "2026-03-14",
		Kind:     domain.ActivityKindIndividual,
		ClothIDs: []string{cloth.ID},
		Status:   domain.ActivityStatusPlanned,
	})
	require.NoError(t, err)
	assert.False(t, entry.AppliedWearCounts)

	// Planning does not touch wear counts.
	planned, err := fx.clothes.Get(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, planned.CurrentWearCount)
}

func TestActivityServiceLogOutfit(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newLedger(t)
	shirt := fx.newCloth(t, categoryID, "Shirt")
	pants := fx.newCloth(t, categoryID, "Pants")

	outfit, err := fx.outfits.Create(ctx, OutfitData{
		Name:     "Office",
		ClothIDs: []string{shirt.ID, pants.ID},
	})
	require.NoError(t, err)

	_, err = fx.activities.Log(ctx, ActivityData{
		Date:     "2026-03-14",
		Kind:     domain.ActivityKindOutfit,
		OutfitID: outfit.ID,
	})
	require.NoError(t, err)

	// Every member of the outfit gets a wear.
	for _, id := range []string{shirt.ID, pants.ID} {
		worn, err := fx.clothes.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, worn.CurrentWearCount)
	}
}

func TestActivityServiceLogMissingReferences(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newLedger(t)
	cloth := fx.newCloth(t, categoryID, "Tee")

	_, err := fx.activities.Log(ctx, ActivityData{
		Date:     "2026-03-14",
		Kind:     domain.ActivityKindOutfit,
		OutfitID: "no-such-outfit",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrOutfitNotFound)

	_, err = fx.activities.Log(ctx, ActivityData{
		Date:     "2026-03-14",
		Kind:     domain.ActivityKindIndividual,
		ClothIDs: []string{cloth.ID, "no-such-cloth"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrClothNotFound)

	// The failed log applied nothing.
	untouched, err := fx.clothes.Get(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, untouched.CurrentWearCount)

	logs, err := fx.activities.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestActivityServicePlannedToWornAppliesOnce(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newLedger(t)
	cloth := fx.newCloth(t, categoryID, "Tee")

	entry, err := fx.activities.Log(ctx, ActivityData{
		Date:     "2026-03-14",
		Kind:     domain.ActivityKindIndividual,
		ClothIDs: []string{cloth.ID},
		Status:   domain.ActivityStatusPlanned,
	})
	require.NoError(t, err)

	worn := domain.ActivityStatusWorn
	updated, err := fx.activities.Update(ctx, entry.ID, ActivityUpdate{Status: &worn})
	require.NoError(t, err)
	assert.True(t, updated.AppliedWearCounts)

	after, err := fx.clothes.Get(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CurrentWearCount)

	// Re-asserting worn status must not apply counts again.
	_, err = fx.activities.Update(ctx, entry.ID, ActivityUpdate{Status: &worn})
	require.NoError(t, err)
	after, err = fx.clothes.Get(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CurrentWearCount)
}

func TestActivityServiceRemoveKeepsWearCounts(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newLedger(t)
	cloth := fx.newCloth(t, categoryID, "Tee")

	entry, err := fx.activities.Log(ctx, ActivityData{
		Date:     "2026-03-14",
		Kind:     domain.ActivityKindIndividual,
		ClothIDs: []string{cloth.ID},
	})
	require.NoError(t, err)

	require.NoError(t, fx.activities.Remove(ctx, entry.ID))

	// The journal entry is gone; the wear it applied stays.
	_, err = fx.activities.Get(ctx, entry.ID)
	require.Error(t, err)
	assert.True(t, store.IsNotFoundError(err))

	after, err := fx.clothes.Get(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CurrentWearCount)
	assert.Equal(t, 1, after.TotalWearCount)
}

func TestActivityServiceGroupByDate(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newLedger(t)
	cloth := fx.newCloth(t, categoryID, "Tee")

	for _, date := range []string{"2026-03-14", "2026-03-14", "2026-03-15"} {
		_, err := fx.activities.Log(ctx, ActivityData{
			Date:     date,
			Kind:     domain.ActivityKindIndividual,
			ClothIDs: []string{cloth.ID},
			Status:   domain.ActivityStatusPlanned,
		})
		require.NoError(t, err)
	}

	grouped, err := fx.activities.GroupByDate(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["2026-03-14"], 2)
	assert.Len(t, grouped["2026-03-15"], 1)
}

func TestActivityServiceResolveDetails(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newLedger(t)
	shirt := fx.newCloth(t, categoryID, "Shirt")
	pants := fx.newCloth(t, categoryID, "Pants")

	outfit, err := fx.outfits.Create(ctx, OutfitData{
		Name:     "Office",
		ClothIDs: []string{shirt.ID, pants.ID},
	})
	require.NoError(t, err)

	entry, err := fx.activities.Log(ctx, ActivityData{
		Date:     "2026-03-14",
		Kind:     domain.ActivityKindOutfit,
		OutfitID: outfit.ID,
	})
	require.NoError(t, err)

	details, err := fx.activities.ResolveDetails(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office", details.Title)
	assert.Contains(t, details.Items, "Shirt")
	assert.Contains(t, details.Items, "Pants")

	// A deleted referent resolves to a placeholder, not an error.
	require.NoError(t, fx.outfits.Delete(ctx, outfit.ID))
	details, err = fx.activities.ResolveDetails(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, DeletedPlaceholder, details.Title)
}

func TestActivityServiceLogInvalidDate(t *testing.T) {
	fx, categoryID := newLedger(t)
	cloth := fx.newCloth(t, categoryID, "Tee")

	_, err := fx.activities.Log(context.Background(), ActivityData{
		Date:     "14/03/2026",
		Kind:     domain.ActivityKindIndividual,
		ClothIDs: []string{cloth.ID},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
