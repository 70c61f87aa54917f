package domain

import "time"

// PreferencesID is the fixed record key of the singleton preferences
// document in the preferences table.
const PreferencesID = "preferences"

// TagStat tracks how often an outfit tag has been used and when it was
// last applied. Counts only ever accumulate.
type TagStat struct {
	Count    int       `json:"count"`
	LastUsed time.Time `json:"lastUsed"`
}

// NotificationPreferences holds the user's alert toggles.
type NotificationPreferences struct {
	Enabled         bool   `json:"enabled"`
	LaundryReminder bool   `json:"laundryReminder"`
	ReminderTime    string `json:"reminderTime,omitempty"`
}

// UserPreferences is the app-wide preference document. Readers always merge
// a stored document over DefaultPreferences so partial or missing documents
// never crash callers.
type UserPreferences struct {
	ID              string                  `json:"id"`
	Notifications   NotificationPreferences `json:"notifications"`
	FilterChips     []string                `json:"filterChips,omitempty"`
	TagSuggestions  []string                `json:"tagSuggestions,omitempty"`
	TagStats        map[string]TagStat      `json:"tagStats,omitempty"`
	WardrobeView    string                  `json:"wardrobeView"`
	WardrobeSort    string                  `json:"wardrobeSort"`
	InsightsModules []string                `json:"insightsModules,omitempty"`
	Currency        string                  `json:"currency"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// DefaultPreferences returns the fixed fallback preference document.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		ID: PreferencesID,
		Notifications: NotificationPreferences{
			Enabled:         true,
			LaundryReminder: true,
			ReminderTime:    "09:00",
		},
		FilterChips:     []string{"favorites", "clean", "dirty"},
		TagSuggestions:  []string{},
		TagStats:        map[string]TagStat{},
		WardrobeView:    "grid",
		WardrobeSort:    "recent",
		InsightsModules: []string{"costPerWear", "closetGhosts", "workhorses", "sustainability"},
		Currency:        "USD",
	}
}

// Merge overlays the receiver's populated fields onto the defaults and
// returns the combined document. Zero-valued scalar fields fall back to
// their defaults; nil collections fall back to the default collections.
func (p *UserPreferences) Merge() *UserPreferences {
	merged := DefaultPreferences()
	if p == nil {
		return merged
	}

	merged.Notifications = p.Notifications
	if p.Notifications.ReminderTime == "" {
		merged.Notifications.ReminderTime = "09:00"
	}
	if p.FilterChips != nil {
		merged.FilterChips = p.FilterChips
	}
	if p.TagSuggestions != nil {
		merged.TagSuggestions = p.TagSuggestions
	}
	if p.TagStats != nil {
		merged.TagStats = p.TagStats
	}
	if p.WardrobeView != "" {
		merged.WardrobeView = p.WardrobeView
	}
	if p.WardrobeSort != "" {
		merged.WardrobeSort = p.WardrobeSort
	}
	if p.InsightsModules != nil {
		merged.InsightsModules = p.InsightsModules
	}
	if p.Currency != "" {
		merged.Currency = p.Currency
	}
	merged.UpdatedAt = p.UpdatedAt

	return merged
}

// SanitizePreferences rebuilds a preferences document field-by-field from
// untrusted input, coercing each value against the defaults. Backup import
// uses this instead of trusting the imported document verbatim, so a
// malformed document cannot corrupt app state.
func SanitizePreferences(in *UserPreferences) *UserPreferences {
	out := DefaultPreferences()
	if in == nil {
		return out
	}

	out.Notifications.Enabled = in.Notifications.Enabled
	out.Notifications.LaundryReminder = in.Notifications.LaundryReminder
	if _, err := time.Parse(TimeLayout, in.Notifications.ReminderTime); err == nil {
		out.Notifications.ReminderTime = in.Notifications.ReminderTime
	}

	if in.FilterChips != nil {
		chips := make([]string, 0, len(in.FilterChips))
		for _, chip := range in.FilterChips {
			if chip != "" {
				chips = appendUnique(chips, chip)
			}
		}
		out.FilterChips = chips
	}

	out.TagSuggestions = NormalizeTags(in.TagSuggestions)

	for tag, stat := range in.TagStats {
		if tag == "" || stat.Count < 0 {
			continue
		}
		out.TagStats[tag] = stat
	}

	if in.WardrobeView != "" {
		out.WardrobeView = in.WardrobeView
	}
	if in.WardrobeSort != "" {
		out.WardrobeSort = in.WardrobeSort
	}

	if in.InsightsModules != nil {
		modules := make([]string, 0, len(in.InsightsModules))
		for _, m := range in.InsightsModules {
			if m != "" {
				modules = appendUnique(modules, m)
			}
		}
		out.InsightsModules = modules
	}

	if len(in.Currency) == 3 {
		out.Currency = in.Currency
	}

	out.UpdatedAt = time.Now().UTC()
	return out
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
