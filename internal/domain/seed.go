package domain

// SeedRecipes returns the starter recipe library used when no saved
// state exists yet.
func SeedRecipes() []Recipe {
	return []Recipe{
		{
			ID:         "1",
			Name:       "Creamy Overnight Oats",
			Purpose:    "Zero-effort focus fuel that stabilizes blood sugar for hours.",
			Equipment:  []Equipment{},
			Difficulty: BeginnerSafe,
			PrepTime:   5,
			CookTime:   0,
			TotalTime:  5,
			Servings:   1,
			Ingredients: []Ingredient{
				{Name: "Rolled oats", Quantity: 0.5, Unit: "cup"},
				{Name: "Milk", Quantity: 0.5, Unit: "cup"},
				{Name: "Plain yogurt", Quantity: 0.25, Unit: "cup"},
				{Name: "Honey", Quantity: 1, Unit: "tsp"},
			},
			Instructions: []string{
				"Add oats to a jar.",
				"Pour in milk and yogurt.",
				"Add honey and stir well.",
				"Refrigerate overnight.",
			},
			CondensedInstructions: []string{
				"Mix oats, milk, yogurt, honey in jar. Chill overnight.",
			},
			Tags: []string{"no-cook", "breakfast", "focus"},
			IngredientBenefits: map[string]string{
				"Oats":   "Complex carbs for steady mental energy.",
				"Yogurt": "Protein and probiotics for gut-brain health.",
			},
			MealType: Breakfast,
		},
		{
			ID:         "7",
			Name:       "Simple Chicken Rice Bowl",
			Purpose:    "Balanced protein/carb combo for heavy study days.",
			Equipment:  []Equipment{Stove},
			Difficulty: Moderate,
			PrepTime:   10,
			CookTime:   15,
			TotalTime:  25,
			Servings:   2,
			Ingredients: []Ingredient{
				{Name: "Chicken breast", Quantity: 250, Unit: "g"},
				{Name: "Cooked rice", Quantity: 2, Unit: "cups"},
				{Name: "Frozen vegetables", Quantity: 1, Unit: "cup"},
				{Name: "Olive oil", Quantity: 1, Unit: "tbsp"},
			},
			Instructions: []string{
				"Heat oil in pan.",
				"Cut chicken into bite-sized pieces.",
				"Sauté chicken until cooked through.",
				"Add frozen veg and cook 4 mins.",
				"Serve over warmed rice.",
			},
			CondensedInstructions: []string{
				"Sauté chicken in oil. Add veg. Serve over rice.",
			},
			Tags: []string{"meal-prep", "dinner", "energy"},
			IngredientBenefits: map[string]string{
				"Chicken": "Lean protein for focus.",
				"Rice":    "Quick energy supply.",
			},
			MealType: Dinner,
		},
	}
}
