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

type outfitFixture struct {
	clothes ClothService
	outfits OutfitService
	prefs   PreferencesService
}

func newOutfits(t *testing.T) (*outfitFixture, string) {
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

	category, err := categories.AddRoot(context.Background(), CategoryData{Name: "Tops"})
	require.NoError(t, err)

	return &outfitFixture{clothes: clothes, outfits: outfits, prefs: prefs}, category.ID
}

func TestOutfitServiceCreate(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newOutfits(t)

	shirt, err := fx.clothes.Create(ctx, ClothData{Name: "Shirt", CategoryID: categoryID})
	require.NoError(t, err)

	outfit, err := fx.outfits.Create(ctx, OutfitData{
		Name:     "Office",
		ClothIDs: []string{shirt.ID},
		Tags:     []string{"Work", "#work", " Smart "},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, outfit.ID)
	assert.Equal(t, []string{"#work", "#smart"}, outfit.Tags)
}

func TestOutfitServiceCreateMissingCloth(t *testing.T) {
	fx, _ := newOutfits(t)

	_, err := fx.outfits.Create(context.Background(), OutfitData{
		Name:     "Office",
		ClothIDs: []string{"no-such-cloth"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrClothNotFound)
	assert.Contains(t, err.Error(), "no-such-cloth")
}

func TestOutfitServiceTagStatsAccumulate(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newOutfits(t)

	shirt, err := fx.clothes.Create(ctx, ClothData{Name: "Shirt", CategoryID: categoryID})
	require.NoError(t, err)

	outfit, err := fx.outfits.Create(ctx, OutfitData{
		Name:     "Office",
		ClothIDs: []string{shirt.ID},
		Tags:     []string{"work"},
	})
	require.NoError(t, err)

	// An update that touches tags re-merges the full tag set, so the
	// unchanged tag's count climbs again.
	updated, err := fx.outfits.Update(ctx, outfit.ID, OutfitUpdate{
		Tags: []string{"work", "summer"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"#work", "#summer"}, updated.Tags)

	prefs, err := fx.prefs.Get(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"#work", "#summer"}, prefs.TagSuggestions)
	assert.Equal(t, 2, prefs.TagStats["#work"].Count)
	assert.Equal(t, 1, prefs.TagStats["#summer"].Count)
}

func TestOutfitServiceUpdateClothRefs(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newOutfits(t)

	shirt, err := fx.clothes.Create(ctx, ClothData{Name: "Shirt", CategoryID: categoryID})
	require.NoError(t, err)
	pants, err := fx.clothes.Create(ctx, ClothData{Name: "Pants", CategoryID: categoryID})
	require.NoError(t, err)

	outfit, err := fx.outfits.Create(ctx, OutfitData{Name: "Office", ClothIDs: []string{shirt.ID}})
	require.NoError(t, err)

	updated, err := fx.outfits.Update(ctx, outfit.ID, OutfitUpdate{
		ClothIDs: []string{shirt.ID, pants.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{shirt.ID, pants.ID}, updated.ClothIDs)

	// Swapping in a dangling reference is rejected.
	_, err = fx.outfits.Update(ctx, outfit.ID, OutfitUpdate{
		ClothIDs: []string{"no-such-cloth"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrClothNotFound)
}

func TestOutfitServiceDelete(t *testing.T) {
	ctx := context.Background()
	fx, categoryID := newOutfits(t)

	shirt, err := fx.clothes.Create(ctx, ClothData{Name: "Shirt", CategoryID: categoryID})
	require.NoError(t, err)
	outfit, err := fx.outfits.Create(ctx, OutfitData{Name: "Office", ClothIDs: []string{shirt.ID}})
	require.NoError(t, err)

	require.NoError(t, fx.outfits.Delete(ctx, outfit.ID))

	_, err = fx.outfits.Get(ctx, outfit.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrOutfitNotFound)
}

func TestOutfitServiceCreateInvalid(t *testing.T) {
	fx, _ := newOutfits(t)

	_, err := fx.outfits.Create(context.Background(), OutfitData{Name: "Empty"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
