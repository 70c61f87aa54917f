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

// newWardrobe wires a category and cloth service over a shared in-memory
// store, the same way the application composes them.
func newWardrobe(t *testing.T) (CategoryService, ClothService) {
	t.Helper()
	rs := memory.NewStore()
	categories, err := NewCategoryService(rs, nil, nil)
	require.NoError(t, err)
	clothes, err := NewClothService(rs, categories, nil, nil)
	require.NoError(t, err)
	return categories, clothes
}

func TestClothServiceCreate(t *testing.T) {
	ctx := context.Background()
	categories, clothes := newWardrobe(t)

	category, err := categories.AddRoot(ctx, CategoryData{Name: "Tops"})
	require.NoError(t, err)

	cloth, err := clothes.Create(ctx, ClothData{
		Name:       "Blue Oxford",
		CategoryID: category.ID,
		Cost:       80,
		Brand:      "Uniqlo",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, cloth.ID)
	assert.Equal(t, domain.ClothStatusClean, cloth.Status)
	assert.Equal(t, 0, cloth.CurrentWearCount)
	assert.Equal(t, 0, cloth.TotalWearCount)
	assert.Equal(t, 80.0, cloth.Cost)
}

func TestClothServiceCreateMissingCategory(t *testing.T) {
	_, clothes := newWardrobe(t)

	_, err := clothes.Create(context.Background(), ClothData{
		Name:       "Orphan",
		CategoryID: "no-such-category",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestClothServiceWearThreshold(t *testing.T) {
	ctx := context.Background()
	categories, clothes := newWardrobe(t)

	// Default limit is 2: clean after one wear, dirty after the second.
	category, err := categories.AddRoot(ctx, CategoryData{Name: "Tops"})
	require.NoError(t, err)
	cloth, err := clothes.Create(ctx, ClothData{Name: "Tee", CategoryID: category.ID})
	require.NoError(t, err)

	worn, err := clothes.IncrementWear(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, worn.CurrentWearCount)
	assert.Equal(t, domain.ClothStatusClean, worn.Status)

	worn, err = clothes.IncrementWear(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, worn.CurrentWearCount)
	assert.Equal(t, 2, worn.TotalWearCount)
	assert.Equal(t, domain.ClothStatusDirty, worn.Status)
}

func TestClothServiceWearInheritedLimit(t *testing.T) {
	ctx := context.Background()
	categories, clothes := newWardrobe(t)

	// A limit of 1 on the root applies to items in the subcategory.
	root, err := categories.AddRoot(ctx, CategoryData{Name: "Underwear", MaxWearCount: intPtr(1)})
	require.NoError(t, err)
	child, err := categories.AddChild(ctx, root.ID, CategoryData{Name: "Socks"})
	require.NoError(t, err)
	cloth, err := clothes.Create(ctx, ClothData{Name: "Wool Socks", CategoryID: child.ID})
	require.NoError(t, err)

	worn, err := clothes.IncrementWear(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClothStatusDirty, worn.Status)
}

func TestClothServiceDecrementWear(t *testing.T) {
	ctx := context.Background()
	categories, clothes := newWardrobe(t)

	category, err := categories.AddRoot(ctx, CategoryData{Name: "Tops"})
	require.NoError(t, err)
	cloth, err := clothes.Create(ctx, ClothData{Name: "Tee", CategoryID: category.ID})
	require.NoError(t, err)

	_, err = clothes.IncrementWear(ctx, cloth.ID)
	require.NoError(t, err)
	dirty, err := clothes.IncrementWear(ctx, cloth.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ClothStatusDirty, dirty.Status)

	// Dropping below the limit turns the item clean again.
	clean, err := clothes.DecrementWear(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, clean.CurrentWearCount)
	assert.Equal(t, 1, clean.TotalWearCount)
	assert.Equal(t, domain.ClothStatusClean, clean.Status)

	// Counts floor at zero.
	_, err = clothes.DecrementWear(ctx, cloth.ID)
	require.NoError(t, err)
	floored, err := clothes.DecrementWear(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, floored.CurrentWearCount)
	assert.Equal(t, 0, floored.TotalWearCount)
	assert.Equal(t, domain.ClothStatusClean, floored.Status)
}

func TestClothServiceWearMissingCloth(t *testing.T) {
	ctx := context.Background()
	_, clothes := newWardrobe(t)

	// Dangling ledger references are skipped, not errors.
	cloth, err := clothes.IncrementWear(ctx, "no-such-cloth")
	require.NoError(t, err)
	assert.Nil(t, cloth)

	cloth, err = clothes.DecrementWear(ctx, "no-such-cloth")
	require.NoError(t, err)
	assert.Nil(t, cloth)
}

func TestClothServiceUpdate(t *testing.T) {
	ctx := context.Background()
	categories, clothes := newWardrobe(t)

	category, err := categories.AddRoot(ctx, CategoryData{Name: "Tops"})
	require.NoError(t, err)
	cloth, err := clothes.Create(ctx, ClothData{Name: "Tee", CategoryID: category.ID})
	require.NoError(t, err)

	archived := true
	updated, err := clothes.Update(ctx, cloth.ID, ClothUpdate{
		Name:       strPtr("Old Tee"),
		IsArchived: &archived,
	})
	require.NoError(t, err)
	assert.Equal(t, "Old Tee", updated.Name)
	assert.True(t, updated.IsArchived)
	assert.Equal(t, category.ID, updated.CategoryID)

	_, err = clothes.Update(ctx, cloth.ID, ClothUpdate{CategoryID: strPtr("missing")})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestClothServiceDelete(t *testing.T) {
	ctx := context.Background()
	categories, clothes := newWardrobe(t)

	category, err := categories.AddRoot(ctx, CategoryData{Name: "Tops"})
	require.NoError(t, err)
	cloth, err := clothes.Create(ctx, ClothData{Name: "Tee", CategoryID: category.ID})
	require.NoError(t, err)

	require.NoError(t, clothes.Delete(ctx, cloth.ID))

	_, err = clothes.Get(ctx, cloth.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrClothNotFound)

	err = clothes.Delete(ctx, cloth.ID)
	assert.ErrorIs(t, err, store.ErrClothNotFound)
}
