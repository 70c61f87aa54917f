package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/platform/memory"
)

func newPreferencesService(t *testing.T) PreferencesService {
	t.Helper()
	svc, err := NewPreferencesService(memory.NewStore(), nil)
	require.NoError(t, err)
	return svc
}

func TestPreferencesServiceGetDefaults(t *testing.T) {
	svc := newPreferencesService(t)

	prefs, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PreferencesID, prefs.ID)
	assert.Equal(t, "grid", prefs.WardrobeView)
	assert.Equal(t, "USD", prefs.Currency)
	assert.Equal(t, []string{"favorites", "clean", "dirty"}, prefs.FilterChips)
	assert.True(t, prefs.Notifications.Enabled)
}

func TestPreferencesServicePartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newPreferencesService(t)

	view := "list"
	updated, err := svc.Update(ctx, PreferencesUpdate{WardrobeView: &view})
	require.NoError(t, err)
	assert.Equal(t, "list", updated.WardrobeView)

	// Untouched fields keep their defaults across the write.
	fetched, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "list", fetched.WardrobeView)
	assert.Equal(t, "recent", fetched.WardrobeSort)
	assert.Equal(t, "USD", fetched.Currency)
}

func TestPreferencesServiceMergeTagUsage(t *testing.T) {
	ctx := context.Background()
	svc := newPreferencesService(t)

	require.NoError(t, svc.MergeTagUsage(ctx, []string{"#summer", "#work"}))
	require.NoError(t, svc.MergeTagUsage(ctx, []string{"#summer"}))

	prefs, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"#summer", "#work"}, prefs.TagSuggestions)
	assert.Equal(t, 2, prefs.TagStats["#summer"].Count)
	assert.Equal(t, 1, prefs.TagStats["#work"].Count)
	assert.False(t, prefs.TagStats["#summer"].LastUsed.IsZero())
}

func TestPreferencesServiceMergeTagUsageEmpty(t *testing.T) {
	svc := newPreferencesService(t)

	// No tags, no write.
	require.NoError(t, svc.MergeTagUsage(context.Background(), nil))

	prefs, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prefs.TagStats)
}
