package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"studentfuel/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(st.Recipes, domain.SeedRecipes()) {
		t.Error("Expected the seed recipe library on first load")
	}
	if len(st.Pantry) != 0 || len(st.Groceries) != 0 {
		t.Error("Expected empty pantry and grocery list on first load")
	}
	if !reflect.DeepEqual(st.Settings, domain.DefaultSettings()) {
		t.Errorf("Expected default settings, got %+v", st.Settings)
	}
	if len(st.MealPlan) != 7 {
		t.Fatalf("Expected a 7-day plan, got %d days", len(st.MealPlan))
	}
	for _, day := range st.MealPlan {
		if len(day.Slots) != 0 {
			t.Errorf("Expected %s to start empty, got %v", day.Day, day.Slots)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	st.Pantry = append(st.Pantry, domain.PantryItem{
		ID: "p1", Name: "Rice", QuantityRemaining: 4, Unit: "cups",
		PackageSize: 10, PackagePrice: 8, PackageFormat: domain.FormatBag,
		Category: "Grains", LastUsed: 1755712800000,
	})
	st.MealPlan[0].Slots[domain.Dinner] = "7"
	st.MealPlan[0].Cooked[domain.Dinner] = true
	st.MealPlan[0].Feedback[domain.Dinner] = domain.FeedbackMade
	st.Settings.ExamMode = true

	if err := store.Save(st); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	loaded, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(loaded.Pantry, st.Pantry) {
		t.Errorf("Pantry did not survive the round trip: %+v", loaded.Pantry)
	}
	if loaded.MealPlan[0].Slots[domain.Dinner] != "7" {
		t.Error("Expected the dinner binding to survive")
	}
	if !loaded.MealPlan[0].Cooked[domain.Dinner] {
		t.Error("Expected the cooked flag to survive")
	}
	if loaded.MealPlan[0].Feedback[domain.Dinner] != domain.FeedbackMade {
		t.Error("Expected the feedback record to survive")
	}
	if !loaded.Settings.ExamMode {
		t.Error("Expected settings changes to survive")
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, recipesFile), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Fatal("Expected an error for a corrupt state file")
	}
}
