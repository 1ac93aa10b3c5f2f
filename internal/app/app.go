// Package app wires the pure cores to storage and the external adapters.
// Every mutation goes through a core function, replaces the in-memory
// state snapshot and is persisted before returning. There is exactly one
// logical writer; adapter failures leave prior state untouched.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"studentfuel/internal/domain"
	"studentfuel/internal/grocery"
	"studentfuel/internal/llm"
	"studentfuel/internal/metrics"
	"studentfuel/internal/pantry"
	"studentfuel/internal/plan"
	"studentfuel/internal/planner"
	"studentfuel/internal/recipe"
	"studentfuel/internal/shared"
	"studentfuel/internal/storage"
)

// defaultUserID tags plan history rows; the tool is single-user.
const defaultUserID = "default_user"

// App holds the application's dependencies and the current state snapshot.
type App struct {
	store        *storage.Store
	state        *storage.State
	mealPlanner  *planner.Planner
	clipper      *recipe.Clipper
	textGen      llm.TextGenerator
	metricsStore *metrics.Store
	planRepo     *planner.PlanRepository
}

// New loads persisted state and returns a ready App.
func New(
	store *storage.Store,
	mealPlanner *planner.Planner,
	clipper *recipe.Clipper,
	textGen llm.TextGenerator,
	metricsStore *metrics.Store,
	planRepo *planner.PlanRepository,
) (*App, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return &App{
		store:        store,
		state:        state,
		mealPlanner:  mealPlanner,
		clipper:      clipper,
		textGen:      textGen,
		metricsStore: metricsStore,
		planRepo:     planRepo,
	}, nil
}

// State exposes the current snapshot for rendering.
func (a *App) State() *storage.State {
	return a.state
}

func (a *App) persist() error {
	if err := a.store.Save(a.state); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

func (a *App) recordMeta(meta shared.AgentMeta) {
	if a.metricsStore == nil {
		return
	}
	if err := a.metricsStore.RecordMeta(meta); err != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", meta.AgentName, err)
	}
}

// GeneratePlan asks the external planner for a full week and replaces the
// current plan only when a complete replacement arrives.
func (a *App) GeneratePlan(ctx context.Context) error {
	newPlan, meta, err := a.mealPlanner.GeneratePlan(ctx, a.state.Recipes, a.state.Settings, a.state.Pantry)
	a.recordMeta(meta)
	if err != nil {
		return err
	}

	if a.planRepo != nil {
		planJSON, err := json.Marshal(newPlan)
		if err != nil {
			log.Printf("Warning: failed to marshal plan for history: %v", err)
		} else if err := a.planRepo.Save(ctx, defaultUserID, planner.WeekStart(time.Now()), planJSON); err != nil {
			log.Printf("Warning: failed to save plan history: %v", err)
		}
	}

	a.state.MealPlan = newPlan
	return a.persist()
}

// AddRecipeFromText normalizes raw free text into a recipe and merges it
// into the library.
func (a *App) AddRecipeFromText(ctx context.Context, raw string) (*domain.Recipe, error) {
	rec, meta, err := recipe.Normalize(ctx, a.textGen, raw)
	a.recordMeta(meta)
	if err != nil {
		return nil, err
	}

	a.state.Recipes = append(a.state.Recipes, *rec)
	return rec, a.persist()
}

// ClipRecipe imports a recipe from a web page URL.
func (a *App) ClipRecipe(ctx context.Context, url string) (*domain.Recipe, error) {
	rec, meta, err := a.clipper.ClipURL(ctx, url)
	a.recordMeta(meta)
	if err != nil {
		return nil, err
	}

	a.state.Recipes = append(a.state.Recipes, *rec)
	return rec, a.persist()
}

// RegenerateGroceries recomputes the grocery list from the current plan
// and pantry, replacing the previous list in full.
func (a *App) RegenerateGroceries() ([]domain.GroceryItem, error) {
	a.state.Groceries = grocery.BuildList(a.state.MealPlan, a.state.Recipes, a.state.Pantry)
	return a.state.Groceries, a.persist()
}

// Purchase completes one grocery item: the pantry is restocked and the
// item leaves the list.
func (a *App) Purchase(itemID string, packageSize, packagePrice float64, format domain.PackageFormat) error {
	a.state.Groceries, a.state.Pantry = grocery.FinalizePurchase(
		a.state.Groceries, a.state.Pantry, itemID, packageSize, packagePrice, format)
	return a.persist()
}

// AssignRecipe binds a recipe to every selected (day, slot) pair.
func (a *App) AssignRecipe(days []string, slots []domain.MealType, recipeID string) error {
	if a.findRecipe(recipeID) == nil {
		return fmt.Errorf("unknown recipe id %q", recipeID)
	}
	a.state.MealPlan = plan.Assign(a.state.MealPlan, days, slots, recipeID)
	return a.persist()
}

// ClearSlot removes one recipe binding.
func (a *App) ClearSlot(dayIdx int, slot domain.MealType) error {
	a.state.MealPlan = plan.ClearSlot(a.state.MealPlan, dayIdx, slot)
	return a.persist()
}

// CookMeal records a cook event. The slot must have a recipe assigned.
func (a *App) CookMeal(dayIdx int, slot domain.MealType, fb domain.Feedback) error {
	if dayIdx < 0 || dayIdx >= len(a.state.MealPlan) {
		return fmt.Errorf("day index %d out of range", dayIdx)
	}
	if _, bound := a.state.MealPlan[dayIdx].Slots[slot]; !bound {
		return fmt.Errorf("no recipe assigned to %s %s", a.state.MealPlan[dayIdx].Day, slot)
	}

	a.state.MealPlan, a.state.Pantry = plan.MarkCooked(
		a.state.MealPlan, a.state.Pantry, a.state.Recipes, dayIdx, slot, fb, time.Now())
	return a.persist()
}

// Insights returns the pantry items worth surfacing: low on stock, or
// unused for over a week.
func (a *App) Insights() (lowStock, underused []domain.PantryItem) {
	return pantry.LowStock(a.state.Pantry), pantry.Underused(a.state.Pantry, time.Now())
}

// RecipeCost estimates a recipe's cost from pantry pricing. ok is false
// when any ingredient lacks price data.
func (a *App) RecipeCost(rec domain.Recipe) (float64, bool) {
	return pantry.RecipeCost(rec, a.state.Pantry)
}

// RemovePantryItem deletes a pantry record; pantry items are only ever
// removed by the user.
func (a *App) RemovePantryItem(itemID string) error {
	next := make([]domain.PantryItem, 0, len(a.state.Pantry))
	for _, it := range a.state.Pantry {
		if it.ID != itemID {
			next = append(next, it)
		}
	}
	a.state.Pantry = next
	return a.persist()
}

// CompleteOnboarding stores the initial meal-type selection.
func (a *App) CompleteOnboarding(mealTypes []domain.MealType) error {
	if len(mealTypes) > 0 {
		a.state.Settings.SelectedMealTypes = mealTypes
	}
	a.state.Settings.HasOnboarded = true
	return a.persist()
}

func (a *App) findRecipe(id string) *domain.Recipe {
	for i := range a.state.Recipes {
		if a.state.Recipes[i].ID == id {
			return &a.state.Recipes[i]
		}
	}
	return nil
}

// FindRecipe resolves a recipe id, returning nil when the id is unknown.
// Callers treat an unresolved reference as an empty slot.
func (a *App) FindRecipe(id string) *domain.Recipe {
	return a.findRecipe(id)
}
