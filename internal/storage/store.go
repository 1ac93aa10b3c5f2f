// Package storage persists application state as five independently
// serialized JSON values, mirroring the browser-storage layout the data
// model originated with.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studentfuel/internal/domain"
)

// File names, one per state value.
const (
	recipesFile   = "sf_v5_recipes.json"
	pantryFile    = "sf_v5_pantry.json"
	groceriesFile = "sf_v5_groceries.json"
	settingsFile  = "sf_v5_settings.json"
	mealPlanFile  = "sf_v5_mealplan.json"
)

// State is the single root owning every entity collection.
type State struct {
	Recipes   []domain.Recipe
	Pantry    []domain.PantryItem
	Groceries []domain.GroceryItem
	Settings  domain.UserSettings
	MealPlan  []domain.MealPlanDay
}

// Store reads and writes state files under a base directory.
type Store struct {
	basePath string
}

// NewStore creates a new Store and ensures the base directory exists.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath}, nil
}

// Load reads all five values, initializing any absent one with its
// documented default: seed recipes, empty pantry and groceries, default
// settings and an empty 7-day plan.
func (s *Store) Load() (*State, error) {
	st := &State{
		Recipes:   domain.SeedRecipes(),
		Pantry:    []domain.PantryItem{},
		Groceries: []domain.GroceryItem{},
		Settings:  domain.DefaultSettings(),
		MealPlan:  domain.NewWeekPlan(),
	}

	if err := s.loadValue(recipesFile, &st.Recipes); err != nil {
		return nil, err
	}
	if err := s.loadValue(pantryFile, &st.Pantry); err != nil {
		return nil, err
	}
	if err := s.loadValue(groceriesFile, &st.Groceries); err != nil {
		return nil, err
	}
	if err := s.loadValue(settingsFile, &st.Settings); err != nil {
		return nil, err
	}
	if err := s.loadValue(mealPlanFile, &st.MealPlan); err != nil {
		return nil, err
	}
	return st, nil
}

// Save re-serializes all five values. Called after every state change.
func (s *Store) Save(st *State) error {
	if err := s.saveValue(recipesFile, st.Recipes); err != nil {
		return err
	}
	if err := s.saveValue(pantryFile, st.Pantry); err != nil {
		return err
	}
	if err := s.saveValue(groceriesFile, st.Groceries); err != nil {
		return err
	}
	if err := s.saveValue(settingsFile, st.Settings); err != nil {
		return err
	}
	return s.saveValue(mealPlanFile, st.MealPlan)
}

func (s *Store) loadValue(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.basePath, name))
	if os.IsNotExist(err) {
		return nil // keep the default
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

func (s *Store) saveValue(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.basePath, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
