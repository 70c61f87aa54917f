package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetkeep/wardrobe-api/internal/domain"
)

var anchor = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func cloth(id, name, categoryID string, cost float64) *domain.Cloth {
	return &domain.Cloth{
		ID:         id,
		Name:       name,
		CategoryID: categoryID,
		Status:     domain.ClothStatusClean,
		Cost:       cost,
	}
}

func wornOn(date string, clothIDs ...string) *domain.ActivityLog {
	return &domain.ActivityLog{
		ID:       "act-" + date + "-" + clothIDs[0],
		Date:     date,
		Kind:     domain.ActivityKindIndividual,
		ClothIDs: clothIDs,
		Status:   domain.ActivityStatusWorn,
	}
}

func TestComputeEmptySnapshot(t *testing.T) {
	report := Compute(Snapshot{Now: anchor})

	assert.Equal(t, 0, report.ClothCount)
	assert.Equal(t, 0, report.TotalWears)
	assert.Equal(t, 0, report.SustainabilityScore)
	assert.Empty(t, report.BestValue)
	assert.Empty(t, report.ClosetGhosts)
	assert.Empty(t, report.Workhorses)
	assert.Empty(t, report.OutfitRepeats)
	assert.Empty(t, report.MonthlyWears)
	assert.Empty(t, report.Uniform)
}

func TestComputeCostPerWear(t *testing.T) {
	snap := Snapshot{
		Clothes: []*domain.Cloth{
			cloth("c1", "Boots", "cat", 120),
			cloth("c2", "Tee", "cat", 20),
		},
		Activities: []*domain.ActivityLog{
			wornOn("2026-05-01", "c1"),
			wornOn("2026-05-02", "c1"),
			wornOn("2026-05-03", "c1"),
			wornOn("2026-05-01", "c2"),
		},
		Now: anchor,
	}

	report := Compute(snap)
	assert.Equal(t, 4, report.TotalWears)

	// Best value sorts ascending on cost per wear: 20/1 beats 120/3.
	require.Len(t, report.BestValue, 2)
	assert.Equal(t, "c2", report.BestValue[0].ClothID)
	assert.InDelta(t, 20.0, report.BestValue[0].CostPerWear, 0.001)
	assert.InDelta(t, 40.0, report.BestValue[1].CostPerWear, 0.001)

	require.Len(t, report.WorstValue, 2)
	assert.Equal(t, "c1", report.WorstValue[0].ClothID)
}

func TestComputeNeverWornCostPerWear(t *testing.T) {
	snap := Snapshot{
		Clothes: []*domain.Cloth{cloth("c1", "Coat", "cat", 300)},
		Now:     anchor,
	}

	// A never-worn item's cost per wear is its full cost.
	report := Compute(snap)
	require.Len(t, report.WorstValue, 1)
	assert.InDelta(t, 300.0, report.WorstValue[0].CostPerWear, 0.001)
}

func TestComputeFallsBackToLifetimeCounter(t *testing.T) {
	imported := cloth("c1", "Old Tee", "cat", 30)
	imported.TotalWearCount = 6
	imported.UpdatedAt = anchor.AddDate(0, -1, 0)

	report := Compute(Snapshot{Clothes: []*domain.Cloth{imported}, Now: anchor})

	// No activity history: the item's own counter stands in.
	assert.Equal(t, 6, report.TotalWears)
	require.Len(t, report.BestValue, 1)
	assert.InDelta(t, 5.0, report.BestValue[0].CostPerWear, 0.001)
	require.NotNil(t, report.BestValue[0].LastWorn)
}

func TestComputeClosetGhosts(t *testing.T) {
	snap := Snapshot{
		Clothes: []*domain.Cloth{
			cloth("fresh", "Fresh Tee", "cat", 0),
			cloth("stale", "Stale Coat", "cat", 0),
			cloth("never-b", "B Never", "cat", 0),
			cloth("never-a", "A Never", "cat", 0),
		},
		Activities: []*domain.ActivityLog{
			wornOn("2026-05-20", "fresh"),
			wornOn("2025-01-15", "stale"),
		},
		Now: anchor,
	}

	report := Compute(snap)

	// Never-worn first, alphabetical, then stale items oldest first.
	require.Len(t, report.ClosetGhosts, 3)
	assert.Equal(t, "A Never", report.ClosetGhosts[0].Name)
	assert.Equal(t, "B Never", report.ClosetGhosts[1].Name)
	assert.Equal(t, "Stale Coat", report.ClosetGhosts[2].Name)
}

func TestComputeWorkhorses(t *testing.T) {
	snap := Snapshot{
		Clothes: []*domain.Cloth{
			cloth("horse", "Denim Jacket", "cat", 12),
			cloth("rare", "Silk Shirt", "cat", 200),
			cloth("free", "Hand-me-down", "cat", 0),
		},
		Activities: []*domain.ActivityLog{
			wornOn("2026-05-01", "horse"),
			wornOn("2026-05-02", "horse"),
			wornOn("2026-05-03", "horse"),
			wornOn("2026-05-04", "horse"),
			wornOn("2026-05-01", "rare"),
			wornOn("2026-05-01", "free"),
			wornOn("2026-05-02", "free"),
			wornOn("2026-05-03", "free"),
		},
		Now: anchor,
	}

	report := Compute(snap)

	// Only the cheap frequently worn item qualifies; the free one has no
	// cost and the expensive one too few wears for its price.
	require.Len(t, report.Workhorses, 1)
	assert.Equal(t, "horse", report.Workhorses[0].ClothID)
	assert.InDelta(t, 3.0, report.Workhorses[0].CostPerWear, 0.001)
}

func TestComputeSustainabilityScore(t *testing.T) {
	assert.Equal(t, 0, sustainabilityScore(0, 0))
	assert.Equal(t, 10, sustainabilityScore(2, 2))
	assert.Equal(t, 35, sustainabilityScore(7, 2))
	assert.Equal(t, 100, sustainabilityScore(50, 2))
}

func TestComputeGroupStats(t *testing.T) {
	a := cloth("c1", "Tee", "cat-tops", 20)
	a.Brand = "Uniqlo"
	a.Color = "blue"
	b := cloth("c2", "Shirt", "cat-tops", 40)
	b.Brand = "Uniqlo"
	c := cloth("c3", "Jeans", "cat-bottoms", 60)
	c.Brand = "Levi's"

	snap := Snapshot{
		Clothes: []*domain.Cloth{a, b, c},
		Categories: []*domain.Category{
			{ID: "cat-tops", Name: "Tops"},
			{ID: "cat-bottoms", Name: "Bottoms"},
		},
		Now: anchor,
	}

	report := Compute(snap)

	require.Len(t, report.Categories, 2)
	assert.Equal(t, GroupStat{Key: "Tops", Count: 2, Spend: 60}, report.Categories[0])
	assert.Equal(t, GroupStat{Key: "Bottoms", Count: 1, Spend: 60}, report.Categories[1])

	require.Len(t, report.Brands, 2)
	assert.Equal(t, "Uniqlo", report.Brands[0].Key)

	// Empty attribute values are not tallied.
	require.Len(t, report.Colors, 1)
	assert.Equal(t, "blue", report.Colors[0].Key)
}

func TestComputeOutfitRepeatsAndUniform(t *testing.T) {
	snap := Snapshot{
		Clothes: []*domain.Cloth{
			cloth("shirt", "Shirt", "cat-tops", 0),
			cloth("jeans", "Jeans", "cat-bottoms", 0),
		},
		Categories: []*domain.Category{
			{ID: "cat-tops", Name: "Tops"},
			{ID: "cat-bottoms", Name: "Bottoms"},
		},
		Outfits: []*domain.Outfit{
			{ID: "o1", Name: "Office", ClothIDs: []string{"shirt", "jeans"}},
		},
		Activities: []*domain.ActivityLog{
			{ID: "a1", Date: "2026-05-01", Kind: domain.ActivityKindOutfit, OutfitID: "o1", Status: domain.ActivityStatusWorn},
			{ID: "a2", Date: "2026-05-08", Kind: domain.ActivityKindOutfit, OutfitID: "o1", Status: domain.ActivityStatusWorn},
			{ID: "a3", Date: "2026-05-09", Kind: domain.ActivityKindOutfit, OutfitID: "gone", Status: domain.ActivityStatusWorn},
		},
		Now: anchor,
	}

	report := Compute(snap)

	require.Len(t, report.OutfitRepeats, 2)
	assert.Equal(t, OutfitRepeat{OutfitID: "o1", Name: "Office", Wears: 2}, report.OutfitRepeats[0])
	assert.Equal(t, "(deleted)", report.OutfitRepeats[1].Name)

	assert.Equal(t, "Bottoms + Tops", report.Uniform)
	assert.Equal(t, 2, report.UniformWears)

	// Outfit wears flow through to the member clothes.
	assert.Equal(t, 4, report.TotalWears)
}

func TestComputeMonthlyHistogram(t *testing.T) {
	snap := Snapshot{
		Clothes: []*domain.Cloth{cloth("c1", "Tee", "cat", 0)},
		Activities: []*domain.ActivityLog{
			wornOn("2026-04-10", "c1"),
			wornOn("2026-05-01", "c1"),
			wornOn("2026-05-20", "c1"),
			{ID: "bad", Date: "garbage", Kind: domain.ActivityKindIndividual, ClothIDs: []string{"c1"}, Status: domain.ActivityStatusWorn},
			{ID: "planned", Date: "2026-05-21", Kind: domain.ActivityKindIndividual, ClothIDs: []string{"c1"}, Status: domain.ActivityStatusPlanned},
		},
		Now: anchor,
	}

	report := Compute(snap)

	// Malformed dates and planned entries never reach the histogram.
	require.Len(t, report.MonthlyWears, 2)
	assert.Equal(t, MonthCount{Month: "2026-04", Count: 1}, report.MonthlyWears[0])
	assert.Equal(t, MonthCount{Month: "2026-05", Count: 2}, report.MonthlyWears[1])
}

func TestComputeTopListsTruncate(t *testing.T) {
	clothes := make([]*domain.Cloth, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		clothes = append(clothes, cloth("id-"+name, name, "cat", 10))
	}

	report := Compute(Snapshot{Clothes: clothes, Now: anchor})
	assert.Len(t, report.BestValue, 5)
	assert.Len(t, report.WorstValue, 5)
}
