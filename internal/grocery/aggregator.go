// Package grocery derives the grocery list from the meal plan and nets it
// against on-hand pantry stock.
package grocery

import (
	"studentfuel/internal/domain"
	"studentfuel/internal/pantry"

	"github.com/google/uuid"
)

// requirement accumulates total demand for one normalized ingredient name.
// Units are not reconciled: the first-seen unit for a name wins. Known
// limitation, kept deliberately.
type requirement struct {
	quantity float64
	unit     string
}

// BuildList computes net grocery requirements for the whole plan. The
// result replaces any previous list in full; regeneration is not additive.
// Slots pointing at unknown recipe ids are treated as empty.
func BuildList(plan []domain.MealPlanDay, recipes []domain.Recipe, items []domain.PantryItem) []domain.GroceryItem {
	byID := make(map[string]domain.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	requirements := map[string]*requirement{}
	var order []string // first-seen order, keeps regeneration deterministic

	for _, day := range plan {
		for _, mt := range domain.MealTypes {
			recipeID, bound := day.Slots[mt]
			if !bound {
				continue
			}
			rec, known := byID[recipeID]
			if !known {
				continue
			}
			for _, ing := range rec.Ingredients {
				key := domain.NormalizeName(ing.Name)
				req, seen := requirements[key]
				if !seen {
					req = &requirement{unit: ing.Unit}
					requirements[key] = req
					order = append(order, key)
				}
				req.quantity += ing.Quantity
			}
		}
	}

	var list []domain.GroceryItem
	for _, name := range order {
		req := requirements[name]

		stock := 0.0
		size, price := 1.0, 0.0
		format := domain.FormatPackage
		if idx := findPantry(items, name); idx >= 0 {
			stock = items[idx].QuantityRemaining
			size = items[idx].PackageSize
			price = items[idx].PackagePrice
			format = items[idx].PackageFormat
		}

		needed := req.quantity - stock
		if needed <= 0 {
			continue
		}

		list = append(list, domain.GroceryItem{
			ID:               uuid.NewString(),
			Name:             name,
			QuantityRequired: needed,
			Unit:             req.unit,
			PackageSize:      size,
			PackageFormat:    format,
			PackagePrice:     price,
		})
	}
	return list
}

// FinalizePurchase applies one grocery item as a pantry purchase and
// removes it from the list. Unknown item ids are a no-op. Purchases are
// all-or-nothing per item.
func FinalizePurchase(list []domain.GroceryItem, items []domain.PantryItem, itemID string, packageSize, packagePrice float64, format domain.PackageFormat) ([]domain.GroceryItem, []domain.PantryItem) {
	var bought *domain.GroceryItem
	for i := range list {
		if list[i].ID == itemID {
			bought = &list[i]
			break
		}
	}
	if bought == nil {
		return list, items
	}

	nextPantry := pantry.ApplyPurchase(items, bought.Name, bought.Unit, packageSize, packagePrice, format)

	nextList := make([]domain.GroceryItem, 0, len(list)-1)
	for _, g := range list {
		if g.ID != itemID {
			nextList = append(nextList, g)
		}
	}
	return nextList, nextPantry
}

func findPantry(items []domain.PantryItem, normalizedName string) int {
	for i := range items {
		if domain.NormalizeName(items[i].Name) == normalizedName {
			return i
		}
	}
	return -1
}
