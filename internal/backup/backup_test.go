package backup

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/memory"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

func newBackup(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	rs := memory.NewStore()
	svc, err := NewService(rs, slog.Default())
	require.NoError(t, err)
	return svc, rs
}

func seedWardrobe(t *testing.T, rs store.RecordStore) (*domain.Category, *domain.Cloth) {
	t.Helper()
	ctx := context.Background()

	category, err := domain.NewCategory("Tops")
	require.NoError(t, err)
	require.NoError(t, store.NewCollection[domain.Category](rs, store.TableCategories).Put(ctx, category.ID, category))

	cloth, err := domain.NewCloth("Tee", category.ID)
	require.NoError(t, err)
	require.NoError(t, store.NewCollection[domain.Cloth](rs, store.TableClothes).Put(ctx, cloth.ID, cloth))

	return category, cloth
}

func TestBackupExport(t *testing.T) {
	svc, rs := newBackup(t)
	category, cloth := seedWardrobe(t, rs)

	doc, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.False(t, doc.ExportDate.IsZero())
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, category.ID, doc.Categories[0].ID)
	require.Len(t, doc.Clothes, 1)
	assert.Equal(t, cloth.ID, doc.Clothes[0].ID)
	assert.Empty(t, doc.Outfits)
}

func TestBackupImportRejectsMissingExportDate(t *testing.T) {
	ctx := context.Background()
	svc, rs := newBackup(t)
	_, cloth := seedWardrobe(t, rs)

	result := svc.Import(ctx, &Document{})
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "missing export date")

	result = svc.Import(ctx, nil)
	assert.False(t, result.Success)

	// The rejected import left the store untouched.
	_, err := rs.GetByID(ctx, store.TableClothes, cloth.ID)
	assert.NoError(t, err)
}

func TestBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, rs := newBackup(t)
	category, cloth := seedWardrobe(t, rs)

	doc, err := svc.Export(ctx)
	require.NoError(t, err)

	// Restore into a fresh store.
	target := memory.NewStore()
	targetSvc, err := NewService(target, slog.Default())
	require.NoError(t, err)

	result := targetSvc.Import(ctx, doc)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, 1, result.Counts[string(store.TableCategories)])
	assert.Equal(t, 1, result.Counts[string(store.TableClothes)])

	restored, err := store.NewCollection[domain.Cloth](target, store.TableClothes).GetByID(ctx, cloth.ID)
	require.NoError(t, err)
	assert.Equal(t, cloth.Name, restored.Name)
	assert.Equal(t, category.ID, restored.CategoryID)
}

func TestBackupImportReplacesContents(t *testing.T) {
	ctx := context.Background()
	svc, rs := newBackup(t)
	_, stale := seedWardrobe(t, rs)

	incoming, err := domain.NewCategory("Bottoms")
	require.NoError(t, err)

	result := svc.Import(ctx, &Document{
		ExportDate: time.Now().UTC(),
		Categories: []*domain.Category{incoming},
	})
	require.True(t, result.Success, result.Message)

	// Collections absent from the document are cleared, not preserved.
	_, err = rs.GetByID(ctx, store.TableClothes, stale.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = rs.GetByID(ctx, store.TableCategories, incoming.ID)
	assert.NoError(t, err)
}

func TestBackupImportPreservesAccountAndAudit(t *testing.T) {
	ctx := context.Background()
	svc, rs := newBackup(t)

	user, err := domain.NewUser("user@wardrobe.local", "$2a$10$hashhashhashhashhashha")
	require.NoError(t, err)
	require.NoError(t, store.NewCollection[domain.User](rs, store.TableUser).Put(ctx, user.ID, user))

	result := svc.Import(ctx, &Document{ExportDate: time.Now().UTC()})
	require.True(t, result.Success)

	// Restoring a backup must never lock the account out.
	_, err = rs.GetByID(ctx, store.TableUser, user.ID)
	assert.NoError(t, err)
}

func TestBackupImportSanitizesPreferences(t *testing.T) {
	ctx := context.Background()
	svc, rs := newBackup(t)

	result := svc.Import(ctx, &Document{
		ExportDate: time.Now().UTC(),
		Preferences: []*domain.UserPreferences{{
			Notifications:  domain.NotificationPreferences{ReminderTime: "25:99"},
			TagSuggestions: []string{"Summer", "#summer"},
			Currency:       "EURO",
		}},
	})
	require.True(t, result.Success, result.Message)

	prefs, err := store.NewCollection[domain.UserPreferences](rs, store.TablePreferences).GetByID(ctx, domain.PreferencesID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", prefs.Notifications.ReminderTime)
	assert.Equal(t, []string{"#summer"}, prefs.TagSuggestions)
	assert.Equal(t, "USD", prefs.Currency)
}
