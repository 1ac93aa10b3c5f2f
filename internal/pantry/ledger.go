// Package pantry implements the inventory ledger: pure functions over
// pantry snapshots. None of them mutate their input.
package pantry

import (
	"time"

	"studentfuel/internal/domain"

	"github.com/google/uuid"
)

// underusedAfter is how long an item can sit unused before it is flagged.
const underusedAfter = 7 * 24 * time.Hour

// findByName returns the index of the pantry item matching the
// case-insensitive name, or -1.
func findByName(items []domain.PantryItem, name string) int {
	key := domain.NormalizeName(name)
	for i := range items {
		if domain.NormalizeName(items[i].Name) == key {
			return i
		}
	}
	return -1
}

// DeductForCooking subtracts every recipe ingredient from the matching
// pantry record, flooring quantities at zero and stamping lastUsed.
// Ingredients without a pantry match are skipped: pantry tracking is
// best-effort, not authoritative.
func DeductForCooking(items []domain.PantryItem, rec domain.Recipe, now time.Time) []domain.PantryItem {
	next := make([]domain.PantryItem, len(items))
	copy(next, items)

	for _, ing := range rec.Ingredients {
		idx := findByName(next, ing.Name)
		if idx < 0 {
			continue
		}
		next[idx].QuantityRemaining = max(0, next[idx].QuantityRemaining-ing.Quantity)
		next[idx].LastUsed = now.UnixMilli()
	}
	return next
}

// ApplyPurchase restocks the matching pantry item additively and overwrites
// its packaging data with the new purchase, or creates a new item when the
// ingredient is unknown. It never produces a duplicate normalized name.
func ApplyPurchase(items []domain.PantryItem, name, unit string, packageSize, packagePrice float64, format domain.PackageFormat) []domain.PantryItem {
	next := make([]domain.PantryItem, len(items))
	copy(next, items)

	if idx := findByName(next, name); idx >= 0 {
		next[idx].QuantityRemaining += packageSize
		next[idx].PackageSize = packageSize
		next[idx].PackagePrice = packagePrice
		next[idx].PackageFormat = format
		return next
	}

	return append(next, domain.PantryItem{
		ID:                uuid.NewString(),
		Name:              name,
		QuantityRemaining: packageSize,
		Unit:              unit,
		PackageSize:       packageSize,
		PackagePrice:      packagePrice,
		PackageFormat:     format,
		Category:          "Purchased",
	})
}

// UnitCost returns price per unit for an item. ok is false when the
// package size is not positive.
func UnitCost(item domain.PantryItem) (cost float64, ok bool) {
	if item.PackageSize <= 0 {
		return 0, false
	}
	return item.PackagePrice / item.PackageSize, true
}

// LowStock returns items with less than 20% of a package remaining,
// preserving pantry order.
func LowStock(items []domain.PantryItem) []domain.PantryItem {
	var out []domain.PantryItem
	for _, it := range items {
		if it.QuantityRemaining < it.PackageSize*0.2 {
			out = append(out, it)
		}
	}
	return out
}

// Underused returns items last used more than seven days before now.
// Items never used are excluded.
func Underused(items []domain.PantryItem, now time.Time) []domain.PantryItem {
	cutoff := now.Add(-underusedAfter).UnixMilli()
	var out []domain.PantryItem
	for _, it := range items {
		if it.LastUsed != 0 && it.LastUsed < cutoff {
			out = append(out, it)
		}
	}
	return out
}

// RecipeCost sums unit cost times quantity over all ingredients. ok is
// false when any ingredient lacks a priced pantry match; partial totals
// are never reported.
func RecipeCost(rec domain.Recipe, items []domain.PantryItem) (total float64, ok bool) {
	for _, ing := range rec.Ingredients {
		idx := findByName(items, ing.Name)
		if idx < 0 || items[idx].PackagePrice <= 0 || items[idx].PackageSize <= 0 {
			return 0, false
		}
		total += items[idx].PackagePrice / items[idx].PackageSize * ing.Quantity
	}
	return total, true
}
