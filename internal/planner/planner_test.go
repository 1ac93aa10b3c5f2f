package planner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"studentfuel/internal/domain"
	"studentfuel/internal/llm"
	"studentfuel/internal/shared"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("Failed to parse time %q: %v", value, err)
	}
	return parsed
}

type mockTextGenerator struct {
	response   string
	usage      shared.TokenUsage
	err        error
	lastPrompt string
	lastSchema *llm.Schema
}

func (m *mockTextGenerator) GenerateJSON(ctx context.Context, prompt string, schema *llm.Schema) (llm.ContentResponse, error) {
	m.lastPrompt = prompt
	m.lastSchema = schema
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{Content: m.response, Usage: m.usage}, nil
}

func testSettings() domain.UserSettings {
	s := domain.DefaultSettings()
	s.SelectedMealTypes = []domain.MealType{domain.Breakfast, domain.Dinner}
	return s
}

func testRecipes() []domain.Recipe {
	return []domain.Recipe{
		{ID: "1", Name: "Overnight Oats"},
		{ID: "7", Name: "Chicken Rice Bowl"},
	}
}

func TestGeneratePlan(t *testing.T) {
	t.Run("FillsBoundSlots", func(t *testing.T) {
		mock := &mockTextGenerator{
			response: `[
				{"day": "Monday", "breakfastRecipeId": "1", "dinnerRecipeId": "7"},
				{"day": "Friday", "dinnerRecipeId": "7"}
			]`,
			usage: shared.TokenUsage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
		}
		p := NewPlanner(mock)

		plan, meta, err := p.GeneratePlan(context.Background(), testRecipes(), testSettings(), nil)
		if err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}

		if len(plan) != 7 {
			t.Fatalf("Expected a 7-day plan, got %d days", len(plan))
		}
		if plan[0].Slots[domain.Breakfast] != "1" || plan[0].Slots[domain.Dinner] != "7" {
			t.Errorf("Expected Monday fully bound, got %v", plan[0].Slots)
		}
		if plan[4].Slots[domain.Dinner] != "7" {
			t.Errorf("Expected Friday dinner bound, got %v", plan[4].Slots)
		}
		if meta.AgentName != "Planner" || meta.Usage.TotalTokens != 150 {
			t.Errorf("Expected usage metadata attributed to the planner, got %+v", meta)
		}
	})

	t.Run("OmittedDaysStayEmpty", func(t *testing.T) {
		mock := &mockTextGenerator{
			response: `[{"day": "Wednesday", "breakfastRecipeId": "1"}]`,
		}
		p := NewPlanner(mock)

		plan, _, err := p.GeneratePlan(context.Background(), testRecipes(), testSettings(), nil)
		if err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}

		for i, day := range plan {
			if i == 2 {
				continue
			}
			if len(day.Slots) != 0 {
				t.Errorf("Expected %s empty, got %v", day.Day, day.Slots)
			}
		}
	})

	t.Run("EmptySlotValuesSkipped", func(t *testing.T) {
		mock := &mockTextGenerator{
			response: `[{"day": "Monday", "breakfastRecipeId": "", "dinnerRecipeId": "7"}]`,
		}
		p := NewPlanner(mock)

		plan, _, err := p.GeneratePlan(context.Background(), testRecipes(), testSettings(), nil)
		if err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}

		if _, bound := plan[0].Slots[domain.Breakfast]; bound {
			t.Error("Expected empty recipe id to leave the slot unbound")
		}
		if plan[0].Slots[domain.Dinner] != "7" {
			t.Error("Expected dinner bound")
		}
	})

	t.Run("PropagatesGenerationError", func(t *testing.T) {
		mock := &mockTextGenerator{err: errors.New("quota exceeded")}
		p := NewPlanner(mock)

		if _, _, err := p.GeneratePlan(context.Background(), testRecipes(), testSettings(), nil); err == nil {
			t.Fatal("Expected error to propagate")
		}
	})

	t.Run("RejectsMalformedJSON", func(t *testing.T) {
		mock := &mockTextGenerator{response: "not json"}
		p := NewPlanner(mock)

		if _, _, err := p.GeneratePlan(context.Background(), testRecipes(), testSettings(), nil); err == nil {
			t.Fatal("Expected parse error")
		}
	})

	t.Run("PromptCarriesLibraryAndPantry", func(t *testing.T) {
		mock := &mockTextGenerator{response: `[]`}
		p := NewPlanner(mock)
		pantryItems := []domain.PantryItem{{Name: "Rice", QuantityRemaining: 4, Unit: "cups"}}

		if _, _, err := p.GeneratePlan(context.Background(), testRecipes(), testSettings(), pantryItems); err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}

		if !strings.Contains(mock.lastPrompt, "Overnight Oats") {
			t.Error("Expected recipe library in the prompt")
		}
		if !strings.Contains(mock.lastPrompt, "Rice") {
			t.Error("Expected pantry contents in the prompt")
		}
	})

	t.Run("SchemaMatchesSelectedMealTypes", func(t *testing.T) {
		mock := &mockTextGenerator{response: `[]`}
		p := NewPlanner(mock)

		if _, _, err := p.GeneratePlan(context.Background(), testRecipes(), testSettings(), nil); err != nil {
			t.Fatalf("GeneratePlan failed: %v", err)
		}

		props := mock.lastSchema.Items.Properties
		if _, ok := props["breakfastRecipeId"]; !ok {
			t.Error("Expected breakfastRecipeId in the response schema")
		}
		if _, ok := props["dinnerRecipeId"]; !ok {
			t.Error("Expected dinnerRecipeId in the response schema")
		}
		if _, ok := props["lunchRecipeId"]; ok {
			t.Error("Expected no slot key for unselected meal types")
		}
	})
}

func TestWeekStart(t *testing.T) {
	// A Thursday maps back to the preceding Monday at midnight UTC.
	got := WeekStart(mustParse(t, "2026-08-27T15:30:00Z"))
	want := mustParse(t, "2026-08-24T00:00:00Z")
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// A Monday maps to itself.
	got = WeekStart(mustParse(t, "2026-08-24T09:00:00Z"))
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// A Sunday still belongs to the week that started six days earlier.
	got = WeekStart(mustParse(t, "2026-08-30T23:59:00Z"))
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
