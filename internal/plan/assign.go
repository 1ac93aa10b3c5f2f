// Package plan implements the weekly plan assigner and cook-event handling.
// All functions take the current plan snapshot and return a new one.
package plan

import (
	"time"

	"studentfuel/internal/domain"
	"studentfuel/internal/pantry"
)

func clone(plan []domain.MealPlanDay) []domain.MealPlanDay {
	next := make([]domain.MealPlanDay, len(plan))
	for i, day := range plan {
		next[i] = domain.MealPlanDay{
			Day:      day.Day,
			Slots:    make(map[domain.MealType]string, len(day.Slots)),
			Cooked:   make(map[domain.MealType]bool, len(day.Cooked)),
			Feedback: make(map[domain.MealType]domain.Feedback, len(day.Feedback)),
		}
		for k, v := range day.Slots {
			next[i].Slots[k] = v
		}
		for k, v := range day.Cooked {
			next[i].Cooked[k] = v
		}
		for k, v := range day.Feedback {
			next[i].Feedback[k] = v
		}
	}
	return next
}

// Assign binds a recipe to every (day, slot) pair in days × slots. Each
// written slot gets its cooked flag reset and any stale feedback cleared.
// Day labels not present in the plan are skipped; empty day or slot sets
// make the call a no-op.
func Assign(plan []domain.MealPlanDay, days []string, slots []domain.MealType, recipeID string) []domain.MealPlanDay {
	next := clone(plan)
	for _, dayName := range days {
		for i := range next {
			if next[i].Day != dayName {
				continue
			}
			for _, slot := range slots {
				next[i].Slots[slot] = recipeID
				next[i].Cooked[slot] = false
				delete(next[i].Feedback, slot)
			}
		}
	}
	return next
}

// ClearSlot removes the recipe binding for one slot.
func ClearSlot(plan []domain.MealPlanDay, dayIdx int, slot domain.MealType) []domain.MealPlanDay {
	next := clone(plan)
	if dayIdx < 0 || dayIdx >= len(next) {
		return next
	}
	delete(next[dayIdx].Slots, slot)
	return next
}

// MarkCooked records a cook event for one slot and, unless the meal was
// skipped, deducts the bound recipe's ingredients from the pantry.
// Callers must ensure a recipe is assigned to the slot; an unresolvable
// binding sets the flags but leaves the pantry untouched.
func MarkCooked(plan []domain.MealPlanDay, items []domain.PantryItem, recipes []domain.Recipe, dayIdx int, slot domain.MealType, fb domain.Feedback, now time.Time) ([]domain.MealPlanDay, []domain.PantryItem) {
	next := clone(plan)
	if dayIdx < 0 || dayIdx >= len(next) {
		return next, items
	}

	next[dayIdx].Cooked[slot] = true
	next[dayIdx].Feedback[slot] = fb

	if fb == domain.FeedbackSkipped {
		return next, items
	}

	recipeID := next[dayIdx].Slots[slot]
	for _, rec := range recipes {
		if rec.ID == recipeID {
			return next, pantry.DeductForCooking(items, rec, now)
		}
	}
	return next, items
}
