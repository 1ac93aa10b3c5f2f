package plan

import (
	"reflect"
	"testing"
	"time"

	"studentfuel/internal/domain"
)

func testRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID:   "chicken-bowl",
			Name: "Chicken Bowl",
			Ingredients: []domain.Ingredient{
				{Name: "Chicken breast", Quantity: 200, Unit: "g"},
			},
		},
	}
}

func TestAssign(t *testing.T) {
	t.Run("SingleDaySingleSlot", func(t *testing.T) {
		next := Assign(domain.NewWeekPlan(), []string{"Monday"}, []domain.MealType{domain.Breakfast}, "chicken-bowl")

		if next[0].Slots[domain.Breakfast] != "chicken-bowl" {
			t.Errorf("Expected Monday breakfast bound, got %q", next[0].Slots[domain.Breakfast])
		}
		if cooked, ok := next[0].Cooked[domain.Breakfast]; !ok || cooked {
			t.Error("Expected cooked flag reset to false")
		}
		for i := 1; i < len(next); i++ {
			if len(next[i].Slots) != 0 {
				t.Errorf("Expected %s untouched, got %v", next[i].Day, next[i].Slots)
			}
		}
	})

	t.Run("CartesianProductWrite", func(t *testing.T) {
		days := []string{"Tuesday", "Friday"}
		slots := []domain.MealType{domain.Lunch, domain.Dinner}
		next := Assign(domain.NewWeekPlan(), days, slots, "chicken-bowl")

		bound := 0
		for _, day := range next {
			for _, id := range day.Slots {
				if id == "chicken-bowl" {
					bound++
				}
			}
		}
		if bound != 4 {
			t.Errorf("Expected 4 bindings from 2 days x 2 slots, got %d", bound)
		}
	})

	t.Run("ClearsStaleCookStateOnOverwrite", func(t *testing.T) {
		prior := domain.NewWeekPlan()
		prior[0].Slots[domain.Dinner] = "old-recipe"
		prior[0].Cooked[domain.Dinner] = true
		prior[0].Feedback[domain.Dinner] = domain.FeedbackMade

		next := Assign(prior, []string{"Monday"}, []domain.MealType{domain.Dinner}, "chicken-bowl")

		if next[0].Cooked[domain.Dinner] {
			t.Error("Expected cooked flag reset on reassignment")
		}
		if _, stale := next[0].Feedback[domain.Dinner]; stale {
			t.Error("Expected stale feedback cleared on reassignment")
		}
	})

	t.Run("EmptySetsAreNoop", func(t *testing.T) {
		base := domain.NewWeekPlan()
		if next := Assign(base, nil, []domain.MealType{domain.Lunch}, "x"); !reflect.DeepEqual(next, base) {
			t.Error("Expected no-op for empty day set")
		}
		if next := Assign(base, []string{"Monday"}, nil, "x"); !reflect.DeepEqual(next, base) {
			t.Error("Expected no-op for empty slot set")
		}
	})

	t.Run("UnknownDayLabelSkipped", func(t *testing.T) {
		next := Assign(domain.NewWeekPlan(), []string{"Funday"}, []domain.MealType{domain.Lunch}, "x")
		for _, day := range next {
			if len(day.Slots) != 0 {
				t.Errorf("Expected no bindings for unknown day label, got %v", day.Slots)
			}
		}
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		base := domain.NewWeekPlan()
		_ = Assign(base, []string{"Monday"}, []domain.MealType{domain.Breakfast}, "chicken-bowl")

		if len(base[0].Slots) != 0 || len(base[0].Cooked) != 0 {
			t.Error("Expected input plan unmodified")
		}
	})
}

func TestMarkCooked(t *testing.T) {
	now := time.Date(2026, 8, 21, 19, 0, 0, 0, time.UTC)

	boundPlan := func() []domain.MealPlanDay {
		p := domain.NewWeekPlan()
		p[2].Slots[domain.Dinner] = "chicken-bowl"
		return p
	}

	pantryItems := []domain.PantryItem{
		{ID: "p1", Name: "Chicken breast", QuantityRemaining: 200, Unit: "g", PackageSize: 500},
	}

	t.Run("MadeDeductsPantry", func(t *testing.T) {
		nextPlan, nextPantry := MarkCooked(boundPlan(), pantryItems, testRecipes(), 2, domain.Dinner, domain.FeedbackMade, now)

		if !nextPlan[2].Cooked[domain.Dinner] {
			t.Error("Expected cooked flag set")
		}
		if nextPlan[2].Feedback[domain.Dinner] != domain.FeedbackMade {
			t.Errorf("Expected feedback Made, got %q", nextPlan[2].Feedback[domain.Dinner])
		}
		if nextPantry[0].QuantityRemaining != 0 {
			t.Errorf("Expected exact depletion to 0, got %v", nextPantry[0].QuantityRemaining)
		}
		if nextPantry[0].LastUsed != now.UnixMilli() {
			t.Error("Expected lastUsed stamped at cook time")
		}
	})

	t.Run("SkippedLeavesPantryUntouched", func(t *testing.T) {
		nextPlan, nextPantry := MarkCooked(boundPlan(), pantryItems, testRecipes(), 2, domain.Dinner, domain.FeedbackSkipped, now)

		if !reflect.DeepEqual(nextPantry, pantryItems) {
			t.Errorf("Expected pantry byte-for-byte unchanged, got %v", nextPantry)
		}
		if nextPlan[2].Feedback[domain.Dinner] != domain.FeedbackSkipped {
			t.Error("Expected Skipped feedback recorded")
		}
	})

	t.Run("DanglingRecipeSetsFlagsOnly", func(t *testing.T) {
		p := domain.NewWeekPlan()
		p[0].Slots[domain.Lunch] = "deleted-recipe"

		nextPlan, nextPantry := MarkCooked(p, pantryItems, testRecipes(), 0, domain.Lunch, domain.FeedbackMade, now)

		if !nextPlan[0].Cooked[domain.Lunch] {
			t.Error("Expected cooked flag set even for dangling reference")
		}
		if !reflect.DeepEqual(nextPantry, pantryItems) {
			t.Error("Expected pantry unchanged for dangling reference")
		}
	})
}

func TestClearSlot(t *testing.T) {
	p := domain.NewWeekPlan()
	p[1].Slots[domain.Breakfast] = "chicken-bowl"

	next := ClearSlot(p, 1, domain.Breakfast)

	if _, bound := next[1].Slots[domain.Breakfast]; bound {
		t.Error("Expected slot cleared")
	}
	if _, bound := p[1].Slots[domain.Breakfast]; !bound {
		t.Error("Expected input plan unmodified")
	}
}
