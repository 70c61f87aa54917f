package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferencesMergeNil(t *testing.T) {
	var p *UserPreferences
	merged := p.Merge()
	assert.Equal(t, DefaultPreferences().FilterChips, merged.FilterChips)
	assert.Equal(t, "USD", merged.Currency)
}

func TestPreferencesMergePartial(t *testing.T) {
	p := &UserPreferences{WardrobeView: "list"}
	merged := p.Merge()

	assert.Equal(t, "list", merged.WardrobeView)
	assert.Equal(t, "recent", merged.WardrobeSort)
	assert.Equal(t, "09:00", merged.Notifications.ReminderTime)
	assert.NotNil(t, merged.TagStats)
}

func TestSanitizePreferences(t *testing.T) {
	in := &UserPreferences{
		Notifications: NotificationPreferences{
			Enabled:      true,
			ReminderTime: "not-a-time",
		},
		FilterChips:    []string{"clean", "", "clean", "dirty"},
		TagSuggestions: []string{"Summer", "#summer"},
		TagStats: map[string]TagStat{
			"#summer": {Count: 3},
			"":        {Count: 1},
			"#bad":    {Count: -2},
		},
		Currency: "EURO",
	}

	out := SanitizePreferences(in)

	// Invalid values fall back to defaults; valid ones are kept coerced.
	assert.Equal(t, "09:00", out.Notifications.ReminderTime)
	assert.Equal(t, []string{"clean", "dirty"}, out.FilterChips)
	assert.Equal(t, []string{"#summer"}, out.TagSuggestions)
	assert.Equal(t, 3, out.TagStats["#summer"].Count)
	assert.NotContains(t, out.TagStats, "")
	assert.NotContains(t, out.TagStats, "#bad")
	assert.Equal(t, "USD", out.Currency)
}

func TestSanitizePreferencesNil(t *testing.T) {
	out := SanitizePreferences(nil)
	assert.Equal(t, DefaultPreferences().WardrobeView, out.WardrobeView)
}
