package recipe

import (
	"context"
	"errors"
	"testing"

	"studentfuel/internal/domain"
	"studentfuel/internal/llm"
	"studentfuel/internal/shared"
)

type mockTextGenerator struct {
	response   string
	usage      shared.TokenUsage
	err        error
	lastPrompt string
}

func (m *mockTextGenerator) GenerateJSON(ctx context.Context, prompt string, schema *llm.Schema) (llm.ContentResponse, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{Content: m.response, Usage: m.usage}, nil
}

func TestNormalize(t *testing.T) {
	t.Run("ParsesAndAssignsFreshID", func(t *testing.T) {
		mock := &mockTextGenerator{
			response: `{
				"id": "model-invented-id",
				"name": "Peanut Butter Toast",
				"purpose": "Quick energy before class",
				"equipment": ["toaster"],
				"prepTime": 2, "cookTime": 3, "totalTime": 5, "servings": 1,
				"ingredients": [{"name": "Bread", "quantity": 2, "unit": "slices"}],
				"instructions": ["Toast the bread.", "Spread peanut butter."],
				"tags": ["quick"],
				"mealType": "breakfast"
			}`,
			usage: shared.TokenUsage{TotalTokens: 80},
		}

		rec, meta, err := Normalize(context.Background(), mock, "pb toast: 2 slices bread, peanut butter")
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}

		if rec.Name != "Peanut Butter Toast" {
			t.Errorf("Expected parsed name, got %q", rec.Name)
		}
		if rec.ID == "" || rec.ID == "model-invented-id" {
			t.Errorf("Expected a locally generated id, got %q", rec.ID)
		}
		if rec.MealType != domain.Breakfast {
			t.Errorf("Expected breakfast meal type, got %q", rec.MealType)
		}
		if len(rec.Ingredients) != 1 || rec.Ingredients[0].Quantity != 2 {
			t.Errorf("Expected numeric ingredient quantities, got %+v", rec.Ingredients)
		}
		if meta.AgentName != "Normalizer" || meta.Usage.TotalTokens != 80 {
			t.Errorf("Expected usage metadata, got %+v", meta)
		}
	})

	t.Run("RejectsNamelessRecipe", func(t *testing.T) {
		mock := &mockTextGenerator{response: `{"name": "", "servings": 2}`}

		if _, _, err := Normalize(context.Background(), mock, "???"); err == nil {
			t.Fatal("Expected error for recipe without a name")
		}
	})

	t.Run("PropagatesGenerationError", func(t *testing.T) {
		mock := &mockTextGenerator{err: errors.New("backend unavailable")}

		if _, _, err := Normalize(context.Background(), mock, "anything"); err == nil {
			t.Fatal("Expected error to propagate")
		}
	})

	t.Run("RejectsMalformedJSON", func(t *testing.T) {
		mock := &mockTextGenerator{response: "Sure! Here is the recipe:"}

		if _, _, err := Normalize(context.Background(), mock, "anything"); err == nil {
			t.Fatal("Expected parse error")
		}
	})
}
