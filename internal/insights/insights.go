// Package insights derives wardrobe analytics from a snapshot of the
// store. Everything here is a pure computation: Compute takes the caller's
// snapshot and returns a report, touching no persistent state, so results
// are always recomputed from current data and never cached.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/closetkeep/wardrobe-api/internal/domain"
)

// GhostThreshold is how long an item can go unworn before it counts as a
// closet ghost.
const GhostThreshold = 183 * 24 * time.Hour

// topListSize caps the ranked lists in the report.
const topListSize = 5

// Workhorse thresholds: a proven item costs something, gets worn, and has
// earned a low cost-per-wear.
const (
	workhorseMinWears       = 3
	workhorseMaxCostPerWear = 5.0
)

// Snapshot is the input to Compute. The caller loads it from the store;
// the engine never reads the store itself.
type Snapshot struct {
	Clothes    []*domain.Cloth
	Outfits    []*domain.Outfit
	Activities []*domain.ActivityLog
	Categories []*domain.Category

	// Now anchors the ghost window. Zero means time.Now.
	Now time.Time
}

// ClothValue is one cloth's derived wear economics.
type ClothValue struct {
	ClothID     string     `json:"clothId"`
	Name        string     `json:"name"`
	Wears       int        `json:"wears"`
	LastWorn    *time.Time `json:"lastWorn,omitempty"`
	Cost        float64    `json:"cost"`
	CostPerWear float64    `json:"costPerWear"`
}

// GroupStat is a tally and spend aggregate for one grouping key (a
// category, brand, color, or fabric).
type GroupStat struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Spend float64 `json:"spend"`
}

// OutfitRepeat counts how often one outfit was worn.
type OutfitRepeat struct {
	OutfitID string `json:"outfitId"`
	Name     string `json:"name"`
	Wears    int    `json:"wears"`
}

// MonthCount is one bucket of the monthly wear histogram.
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// Report is the full derived analytics document.
type Report struct {
	ClothCount          int `json:"clothCount"`
	TotalWears          int `json:"totalWears"`
	SustainabilityScore int `json:"sustainabilityScore"`

	BestValue    []ClothValue `json:"bestValue"`
	WorstValue   []ClothValue `json:"worstValue"`
	ClosetGhosts []ClothValue `json:"closetGhosts"`
	Workhorses   []ClothValue `json:"workhorses"`

	Categories []GroupStat `json:"categories"`
	Brands     []GroupStat `json:"brands"`
	Colors     []GroupStat `json:"colors"`
	Fabrics    []GroupStat `json:"fabrics"`

	OutfitRepeats []OutfitRepeat `json:"outfitRepeats"`

	// Uniform is the most frequent category combination across worn
	// activities, as sorted unique category names joined by " + ".
	Uniform      string `json:"uniform,omitempty"`
	UniformWears int    `json:"uniformWears,omitempty"`

	MonthlyWears []MonthCount `json:"monthlyWears"`
}

// Compute derives the full report from the snapshot. An empty snapshot
// yields zero values and empty lists, never a panic.
func Compute(snap Snapshot) *Report {
	now := snap.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	clothByID := make(map[string]*domain.Cloth, len(snap.Clothes))
	for _, c := range snap.Clothes {
		clothByID[c.ID] = c
	}
	outfitByID := make(map[string]*domain.Outfit, len(snap.Outfits))
	for _, o := range snap.Outfits {
		outfitByID[o.ID] = o
	}
	categoryNames := make(map[string]string, len(snap.Categories))
	for _, cat := range snap.Categories {
		categoryNames[cat.ID] = cat.Name
	}

	// First pass: activities. Worn activities drive wear counts,
	// last-worn dates, outfit repeats, uniforms, and the monthly
	// histogram; planned ones count for nothing.
	wears := make(map[string]int)
	lastWorn := make(map[string]time.Time)
	outfitWears := make(map[string]int)
	comboWears := make(map[string]int)
	monthly := make(map[string]int)

	for _, act := range snap.Activities {
		if !act.IsWorn() {
			continue
		}

		day, err := time.Parse(domain.DateLayout, act.Date)
		if err != nil {
			// Tolerate a malformed historical record instead of failing
			// the whole report.
			continue
		}

		monthly[day.Format("2006-01")]++

		clothIDs := act.ClothIDs
		if act.Kind == domain.ActivityKindOutfit {
			outfitWears[act.OutfitID]++
			if outfit, ok := outfitByID[act.OutfitID]; ok {
				clothIDs = outfit.ClothIDs
			} else {
				clothIDs = nil
			}
		}

		comboCategories := make(map[string]struct{})
		for _, clothID := range clothIDs {
			cloth, ok := clothByID[clothID]
			if !ok {
				continue
			}
			wears[clothID]++
			if day.After(lastWorn[clothID]) {
				lastWorn[clothID] = day
			}
			if name, ok := categoryNames[cloth.CategoryID]; ok {
				comboCategories[name] = struct{}{}
			}
		}
		if key := comboKey(comboCategories); key != "" {
			comboWears[key]++
		}
	}

	// Second pass: clothes. Items with no activity history fall back to
	// their own lifetime counter and update timestamp.
	values := make([]ClothValue, 0, len(snap.Clothes))
	totalWears := 0
	tallies := newGroupTallies()

	for _, cloth := range snap.Clothes {
		n, hasActivity := wears[cloth.ID]
		value := ClothValue{
			ClothID: cloth.ID,
			Name:    cloth.Name,
			Wears:   n,
			Cost:    cloth.Cost,
		}
		if hasActivity {
			worn := lastWorn[cloth.ID]
			value.LastWorn = &worn
		} else if cloth.TotalWearCount > 0 {
			value.Wears = cloth.TotalWearCount
			updated := cloth.UpdatedAt
			value.LastWorn = &updated
		}
		value.CostPerWear = costPerWear(cloth.Cost, value.Wears)

		totalWears += value.Wears
		values = append(values, value)

		tallies.add(categoryLabel(categoryNames, cloth.CategoryID), cloth)
	}

	report := &Report{
		ClothCount:          len(snap.Clothes),
		TotalWears:          totalWears,
		SustainabilityScore: sustainabilityScore(totalWears, len(snap.Clothes)),
		BestValue:           bestValue(values),
		WorstValue:          worstValue(values),
		ClosetGhosts:        closetGhosts(values, now),
		Workhorses:          workhorses(values),
		Categories:          tallies.sorted(tallies.categories),
		Brands:              tallies.sorted(tallies.brands),
		Colors:              tallies.sorted(tallies.colors),
		Fabrics:             tallies.sorted(tallies.fabrics),
		OutfitRepeats:       outfitRepeats(outfitWears, outfitByID),
		MonthlyWears:        monthlyHistogram(monthly),
	}
	report.Uniform, report.UniformWears = uniform(comboWears)

	return report
}

// costPerWear returns cost/wears, or the raw cost for a never-worn item.
func costPerWear(cost float64, wearCount int) float64 {
	if wearCount == 0 {
		return cost
	}
	return cost / float64(wearCount)
}

// sustainabilityScore is min(100, round(totalWears / clothCount * 10)).
// An empty wardrobe scores 0.
func sustainabilityScore(totalWears, clothCount int) int {
	if clothCount == 0 {
		return 0
	}
	score := int(math.Round(float64(totalWears) / float64(clothCount) * 10))
	if score > 100 {
		return 100
	}
	return score
}

func bestValue(values []ClothValue) []ClothValue {
	priced := withCost(values)
	sort.SliceStable(priced, func(i, j int) bool {
		return priced[i].CostPerWear < priced[j].CostPerWear
	})
	return truncate(priced)
}

func worstValue(values []ClothValue) []ClothValue {
	priced := withCost(values)
	sort.SliceStable(priced, func(i, j int) bool {
		return priced[i].CostPerWear > priced[j].CostPerWear
	})
	return truncate(priced)
}

// closetGhosts lists items unworn for the ghost window or never worn at
// all, never-worn first, then oldest last-worn first.
func closetGhosts(values []ClothValue, now time.Time) []ClothValue {
	cutoff := now.Add(-GhostThreshold)

	ghosts := make([]ClothValue, 0)
	for _, v := range values {
		if v.LastWorn == nil || v.LastWorn.Before(cutoff) {
			ghosts = append(ghosts, v)
		}
	}

	sort.SliceStable(ghosts, func(i, j int) bool {
		a, b := ghosts[i].LastWorn, ghosts[j].LastWorn
		if a == nil && b == nil {
			return ghosts[i].Name < ghosts[j].Name
		}
		if a == nil {
			return true
		}
		if b == nil {
			return false
		}
		return a.Before(*b)
	})

	return ghosts
}

func workhorses(values []ClothValue) []ClothValue {
	horses := make([]ClothValue, 0)
	for _, v := range values {
		if v.Cost > 0 && v.Wears >= workhorseMinWears && v.CostPerWear <= workhorseMaxCostPerWear {
			horses = append(horses, v)
		}
	}

	sort.SliceStable(horses, func(i, j int) bool {
		if horses[i].CostPerWear != horses[j].CostPerWear {
			return horses[i].CostPerWear < horses[j].CostPerWear
		}
		return horses[i].Wears > horses[j].Wears
	})

	return horses
}

func outfitRepeats(outfitWears map[string]int, outfitByID map[string]*domain.Outfit) []OutfitRepeat {
	repeats := make([]OutfitRepeat, 0, len(outfitWears))
	for id, n := range outfitWears {
		name := "(deleted)"
		if outfit, ok := outfitByID[id]; ok {
			name = outfit.Name
		}
		repeats = append(repeats, OutfitRepeat{OutfitID: id, Name: name, Wears: n})
	}

	sort.SliceStable(repeats, func(i, j int) bool {
		if repeats[i].Wears != repeats[j].Wears {
			return repeats[i].Wears > repeats[j].Wears
		}
		return repeats[i].Name < repeats[j].Name
	})

	return repeats
}

// uniform returns the most frequently worn category combination. Ties
// break on the lexicographically smaller key so results are stable.
func uniform(comboWears map[string]int) (string, int) {
	best, bestCount := "", 0
	for key, n := range comboWears {
		if n > bestCount || (n == bestCount && key < best) {
			best, bestCount = key, n
		}
	}
	return best, bestCount
}

func monthlyHistogram(monthly map[string]int) []MonthCount {
	months := make([]MonthCount, 0, len(monthly))
	for month, n := range monthly {
		months = append(months, MonthCount{Month: month, Count: n})
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})
	return months
}

func comboKey(categories map[string]struct{}) string {
	if len(categories) == 0 {
		return ""
	}
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, " + ")
}

func categoryLabel(names map[string]string, categoryID string) string {
	if name, ok := names[categoryID]; ok {
		return name
	}
	return fmt.Sprintf("(unknown %s)", categoryID)
}

func withCost(values []ClothValue) []ClothValue {
	priced := make([]ClothValue, 0, len(values))
	for _, v := range values {
		if v.Cost > 0 {
			priced = append(priced, v)
		}
	}
	return priced
}

func truncate(values []ClothValue) []ClothValue {
	if len(values) > topListSize {
		return values[:topListSize]
	}
	return values
}

type groupTallies struct {
	categories map[string]*GroupStat
	brands     map[string]*GroupStat
	colors     map[string]*GroupStat
	fabrics    map[string]*GroupStat
}

func newGroupTallies() *groupTallies {
	return &groupTallies{
		categories: make(map[string]*GroupStat),
		brands:     make(map[string]*GroupStat),
		colors:     make(map[string]*GroupStat),
		fabrics:    make(map[string]*GroupStat),
	}
}

func (g *groupTallies) add(categoryName string, cloth *domain.Cloth) {
	bump(g.categories, categoryName, cloth.Cost)
	if cloth.Brand != "" {
		bump(g.brands, cloth.Brand, cloth.Cost)
	}
	if cloth.Color != "" {
		bump(g.colors, cloth.Color, cloth.Cost)
	}
	if cloth.Fabric != "" {
		bump(g.fabrics, cloth.Fabric, cloth.Cost)
	}
}

func bump(stats map[string]*GroupStat, key string, cost float64) {
	stat, ok := stats[key]
	if !ok {
		stat = &GroupStat{Key: key}
		stats[key] = stat
	}
	stat.Count++
	stat.Spend += cost
}

func (g *groupTallies) sorted(stats map[string]*GroupStat) []GroupStat {
	out := make([]GroupStat, 0, len(stats))
	for _, stat := range stats {
		out = append(out, *stat)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > topListSize {
		out = out[:topListSize]
	}
	return out
}
