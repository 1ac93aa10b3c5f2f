// Package recipe is the adapter to the external recipe-normalization
// service: free text in, a structured Recipe candidate out.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studentfuel/internal/domain"
	"studentfuel/internal/llm"
	"studentfuel/internal/shared"

	"github.com/google/uuid"
)

// Normalize sends raw free text to the external endpoint with the recipe
// response schema, validates the result carries at least a name and
// assigns it a fresh identifier. The caller merges it into the library.
func Normalize(ctx context.Context, textGen llm.TextGenerator, raw string) (*domain.Recipe, shared.AgentMeta, error) {
	start := time.Now()

	prompt := fmt.Sprintf(`Normalize this recipe text into the StudentFuel schema.
Ensure it is beginner-proof and follows the energy/focus philosophy.
Convert ingredient quantities to numbers.
Recipe: %s`, raw)

	resp, err := textGen.GenerateJSON(ctx, prompt, recipeSchema())
	meta := shared.NewAgentMeta("Normalizer", resp.Usage, start)
	if err != nil {
		return nil, meta, fmt.Errorf("failed to normalize recipe: %w", err)
	}

	var rec domain.Recipe
	if err := json.Unmarshal([]byte(resp.Content), &rec); err != nil {
		return nil, meta, fmt.Errorf("failed to parse normalized recipe: %w. Response: %s", err, resp.Content)
	}

	if rec.Name == "" {
		return nil, meta, fmt.Errorf("normalized recipe has no name. Response: %s", resp.Content)
	}

	rec.ID = uuid.NewString()
	return &rec, meta, nil
}

func recipeSchema() *llm.Schema {
	equipment := make([]string, 0, 10)
	for _, e := range []domain.Equipment{
		domain.Microwave, domain.Stove, domain.Oven, domain.AirFryer,
		domain.Blender, domain.FoodProcessor, domain.RiceCooker,
		domain.SlowCooker, domain.Toaster, domain.Kettle,
	} {
		equipment = append(equipment, string(e))
	}

	mealTypes := make([]string, 0, len(domain.MealTypes))
	for _, mt := range domain.MealTypes {
		mealTypes = append(mealTypes, string(mt))
	}

	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"name":    {Type: llm.TypeString},
			"purpose": {Type: llm.TypeString},
			"equipment": {
				Type:  llm.TypeArray,
				Items: &llm.Schema{Type: llm.TypeString, Enum: equipment},
			},
			"prepTime":  {Type: llm.TypeInteger},
			"cookTime":  {Type: llm.TypeInteger},
			"totalTime": {Type: llm.TypeInteger},
			"servings":  {Type: llm.TypeInteger},
			"ingredients": {
				Type: llm.TypeArray,
				Items: &llm.Schema{
					Type: llm.TypeObject,
					Properties: map[string]*llm.Schema{
						"name":     {Type: llm.TypeString},
						"quantity": {Type: llm.TypeNumber},
						"unit":     {Type: llm.TypeString},
					},
					Required: []string{"name", "quantity", "unit"},
				},
			},
			"instructions": {
				Type:  llm.TypeArray,
				Items: &llm.Schema{Type: llm.TypeString},
			},
			"tags": {
				Type:  llm.TypeArray,
				Items: &llm.Schema{Type: llm.TypeString},
			},
			"mealType": {Type: llm.TypeString, Enum: mealTypes},
		},
		Required: []string{
			"name", "purpose", "equipment", "prepTime", "cookTime", "totalTime",
			"servings", "ingredients", "instructions", "tags", "mealType",
		},
	}
}
