// Package planner is the adapter to the external AI planning service: it
// describes the user's constraints, requests a structured 7-day response
// and reshapes it into the weekly plan entity.
package planner

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"studentfuel/internal/domain"
	"studentfuel/internal/llm"
	"studentfuel/internal/shared"
)

//go:embed plan_prompt.md
var planPrompt string

// Planner handles the generation of meal plans.
type Planner struct {
	textGen llm.TextGenerator
}

// NewPlanner creates a new Planner instance.
func NewPlanner(textGen llm.TextGenerator) *Planner {
	return &Planner{textGen: textGen}
}

type recipeLine struct {
	ID   string
	Name string
}

type promptData struct {
	Equipment    string
	MealTypes    string
	MaxMinutes   int
	NoCookOnly   bool
	MealPrepMode bool
	ExamMode     bool
	Budget       string
	Pantry       string
	Recipes      []recipeLine
}

// GeneratePlan requests a full week of recipe bindings from the external
// planner. Any day or slot the response omits defaults to an empty
// binding. Failures propagate; the caller keeps its prior plan until a
// complete replacement is ready.
func (p *Planner) GeneratePlan(ctx context.Context, recipes []domain.Recipe, settings domain.UserSettings, pantryItems []domain.PantryItem) ([]domain.MealPlanDay, shared.AgentMeta, error) {
	start := time.Now()

	prompt, err := buildPlanPrompt(recipes, settings, pantryItems)
	if err != nil {
		return nil, shared.AgentMeta{}, err
	}

	resp, err := p.textGen.GenerateJSON(ctx, prompt, planSchema(settings.SelectedMealTypes))
	meta := shared.NewAgentMeta("Planner", resp.Usage, start)
	if err != nil {
		return nil, meta, fmt.Errorf("failed to generate meal plan: %w", err)
	}

	var entries []map[string]string
	if err := json.Unmarshal([]byte(resp.Content), &entries); err != nil {
		return nil, meta, fmt.Errorf("failed to parse meal plan JSON: %w. Response: %s", err, resp.Content)
	}

	return reshape(entries, settings.SelectedMealTypes), meta, nil
}

func buildPlanPrompt(recipes []domain.Recipe, settings domain.UserSettings, pantryItems []domain.PantryItem) (string, error) {
	tmpl, err := template.New("Planner").Parse(planPrompt)
	if err != nil {
		return "", err
	}

	equipment := make([]string, 0, len(settings.Equipment))
	for _, e := range settings.Equipment {
		equipment = append(equipment, string(e))
	}
	mealTypes := make([]string, 0, len(settings.SelectedMealTypes))
	for _, mt := range settings.SelectedMealTypes {
		mealTypes = append(mealTypes, string(mt))
	}
	pantryNames := make([]string, 0, len(pantryItems))
	for _, it := range pantryItems {
		pantryNames = append(pantryNames, it.Name)
	}
	lines := make([]recipeLine, 0, len(recipes))
	for _, r := range recipes {
		lines = append(lines, recipeLine{ID: r.ID, Name: r.Name})
	}

	data := promptData{
		Equipment:    strings.Join(equipment, ", "),
		MealTypes:    strings.Join(mealTypes, ", "),
		MaxMinutes:   settings.MaxMinutesPerMeal,
		NoCookOnly:   settings.NoCookOnly,
		MealPrepMode: settings.MealPrepMode,
		ExamMode:     settings.ExamMode,
		Budget:       settings.BudgetRange,
		Pantry:       strings.Join(pantryNames, ", "),
		Recipes:      lines,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// slotKey is the response key holding the recipe id for a meal type,
// e.g. "breakfastRecipeId".
func slotKey(mt domain.MealType) string {
	return string(mt) + "RecipeId"
}

func planSchema(mealTypes []domain.MealType) *llm.Schema {
	props := map[string]*llm.Schema{
		"day": {Type: llm.TypeString},
	}
	for _, mt := range mealTypes {
		props[slotKey(mt)] = &llm.Schema{Type: llm.TypeString}
	}
	return &llm.Schema{
		Type: llm.TypeArray,
		Items: &llm.Schema{
			Type:       llm.TypeObject,
			Properties: props,
			Required:   []string{"day"},
		},
	}
}

// reshape turns the structured response into the 7-day plan entity. Days
// the response omits and empty slot values become empty bindings.
func reshape(entries []map[string]string, mealTypes []domain.MealType) []domain.MealPlanDay {
	byDay := make(map[string]map[string]string, len(entries))
	for _, e := range entries {
		byDay[e["day"]] = e
	}

	plan := domain.NewWeekPlan()
	for i := range plan {
		entry, ok := byDay[plan[i].Day]
		if !ok {
			continue
		}
		for _, mt := range mealTypes {
			if id := entry[slotKey(mt)]; id != "" {
				plan[i].Slots[mt] = id
			}
		}
	}
	return plan
}
