package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"studentfuel/internal/app"
	"studentfuel/internal/config"
	"studentfuel/internal/database"
	"studentfuel/internal/domain"
	"studentfuel/internal/llm"
	"studentfuel/internal/metrics"
	"studentfuel/internal/pantry"
	"studentfuel/internal/planner"
	"studentfuel/internal/recipe"
	"studentfuel/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	textGen, err := newTextGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize text generator: %v", err)
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	metricsStore := metrics.NewStore(db.SQL)
	planRepo := planner.NewPlanRepository(db.SQL)

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize state store: %v", err)
	}

	application, err := app.New(
		store,
		planner.NewPlanner(textGen),
		recipe.NewClipper(textGen),
		textGen,
		metricsStore,
		planRepo,
	)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	switch os.Args[1] {
	case "plan":
		if err := application.GeneratePlan(ctx); err != nil {
			log.Fatalf("Plan generation failed: %v", err)
		}
		printPlan(application)
	case "groceries":
		list, err := application.RegenerateGroceries()
		if err != nil {
			log.Fatalf("Grocery generation failed: %v", err)
		}
		printGroceries(application, list)
	case "buy":
		buyCmd := flag.NewFlagSet("buy", flag.ExitOnError)
		id := buyCmd.String("id", "", "Grocery item id")
		size := buyCmd.Float64("size", 1, "Package size purchased")
		price := buyCmd.Float64("price", 0, "Package price paid")
		format := buyCmd.String("format", "package", "Package format (jar, bag, box, ...)")
		buyCmd.Parse(os.Args[2:])

		if err := application.Purchase(*id, *size, *price, domain.PackageFormat(*format)); err != nil {
			log.Fatalf("Purchase failed: %v", err)
		}
		fmt.Println("Purchase applied to pantry.")
	case "cook":
		cookCmd := flag.NewFlagSet("cook", flag.ExitOnError)
		day := cookCmd.String("day", "", "Day name (Monday..Sunday)")
		slot := cookCmd.String("slot", "", "Meal type slot")
		feedback := cookCmd.String("feedback", "Made", "Made, Skipped or Modified")
		cookCmd.Parse(os.Args[2:])

		dayIdx := dayIndex(*day)
		if dayIdx < 0 {
			log.Fatalf("Unknown day %q", *day)
		}
		if err := application.CookMeal(dayIdx, domain.MealType(*slot), domain.Feedback(*feedback)); err != nil {
			log.Fatalf("Cook failed: %v", err)
		}
		fmt.Printf("Marked %s %s as %s.\n", *day, *slot, *feedback)
	case "assign":
		assignCmd := flag.NewFlagSet("assign", flag.ExitOnError)
		recipeID := assignCmd.String("recipe", "", "Recipe id to assign")
		days := assignCmd.String("days", "", "Comma-separated day names")
		slots := assignCmd.String("slots", "", "Comma-separated meal types")
		assignCmd.Parse(os.Args[2:])

		var slotList []domain.MealType
		for _, s := range splitList(*slots) {
			slotList = append(slotList, domain.MealType(s))
		}
		if err := application.AssignRecipe(splitList(*days), slotList, *recipeID); err != nil {
			log.Fatalf("Assign failed: %v", err)
		}
		fmt.Println("Assignment applied.")
	case "add-recipe":
		raw, err := readRawRecipe(os.Args[2:])
		if err != nil {
			log.Fatalf("Failed to read recipe text: %v", err)
		}
		rec, err := application.AddRecipeFromText(ctx, raw)
		if err != nil {
			log.Fatalf("Recipe normalization failed: %v", err)
		}
		fmt.Printf("Saved recipe %q (%s, %d mins).\n", rec.Name, rec.MealType.Label(), rec.TotalTime)
	case "clip":
		if len(os.Args) < 3 {
			log.Fatal("Usage: studentfuel clip <url>")
		}
		rec, err := application.ClipRecipe(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Clip failed: %v", err)
		}
		fmt.Printf("Clipped recipe %q (%s).\n", rec.Name, rec.MealType.Label())
	case "pantry":
		printPantry(application)
	case "insights":
		printInsights(application)
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func newTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, error) {
	if cfg.TextProvider == "groq" {
		return llm.NewGroqClient(cfg), nil
	}
	return llm.NewGeminiClient(ctx, cfg)
}

func dayIndex(day string) int {
	for i, d := range domain.Days {
		if strings.EqualFold(d, day) {
			return i
		}
	}
	return -1
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readRawRecipe takes the recipe text from the remaining args, or stdin
// when none are given.
func readRawRecipe(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printPlan(application *app.App) {
	state := application.State()
	fmt.Println("\n=== WEEKLY MEAL PLAN ===")
	for _, day := range state.MealPlan {
		fmt.Printf("%s\n", day.Day)
		for _, mt := range state.Settings.SelectedMealTypes {
			id, bound := day.Slots[mt]
			if !bound {
				continue
			}
			if rec := application.FindRecipe(id); rec != nil {
				fmt.Printf("  %-18s %s (%d mins)\n", mt.Label()+":", rec.Name, rec.TotalTime)
			}
		}
	}
}

func printGroceries(application *app.App, list []domain.GroceryItem) {
	symbol := domain.CurrencySymbol(application.State().Settings.Currency)
	fmt.Println("\n=== GROCERY LIST ===")
	if len(list) == 0 {
		fmt.Println("Nothing needed; the pantry covers the plan.")
		return
	}
	for _, g := range list {
		fmt.Printf("- %s: %.2f %s (%s, %s%.2f)\n",
			g.Name, g.QuantityRequired, g.Unit, g.PackageFormat, symbol, g.PackagePrice)
	}
}

func printPantry(application *app.App) {
	state := application.State()
	symbol := domain.CurrencySymbol(state.Settings.Currency)
	fmt.Println("\n=== PANTRY ===")
	for _, it := range state.Pantry {
		line := fmt.Sprintf("- %s: %.2f %s remaining", it.Name, it.QuantityRemaining, it.Unit)
		if cost, ok := pantry.UnitCost(it); ok {
			line += fmt.Sprintf(" (%s%.2f per %s)", symbol, cost, it.Unit)
		}
		fmt.Println(line)
	}
}

func printInsights(application *app.App) {
	lowStock, underused := application.Insights()
	symbol := domain.CurrencySymbol(application.State().Settings.Currency)

	fmt.Println("\n=== KITCHEN INSIGHTS ===")
	if len(lowStock) > 0 {
		fmt.Println("Low stock:")
		for _, it := range lowStock {
			fmt.Printf("  - %s (%.2f %s left)\n", it.Name, it.QuantityRemaining, it.Unit)
		}
	}
	if len(underused) > 0 {
		fmt.Println("Underused:")
		for _, it := range underused {
			fmt.Printf("  - %s\n", it.Name)
		}
	}

	fmt.Println("Recipe costs:")
	for _, rec := range application.State().Recipes {
		if cost, ok := application.RecipeCost(rec); ok {
			fmt.Printf("  - %s: %s%.2f\n", rec.Name, symbol, cost)
		} else {
			fmt.Printf("  - %s: unknown (missing pantry pricing)\n", rec.Name)
		}
	}
}

func printUsage() {
	fmt.Println("Usage: studentfuel <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Generate a weekly meal plan with the AI planner")
	fmt.Println("  groceries          Regenerate the grocery list from the current plan")
	fmt.Println("  buy                Complete a grocery purchase into the pantry")
	fmt.Println("  cook               Record a cook event for a plan slot")
	fmt.Println("  assign             Assign a recipe to days and meal slots")
	fmt.Println("  add-recipe         Normalize raw recipe text into the library")
	fmt.Println("  clip               Import a recipe from a web page URL")
	fmt.Println("  pantry             Show pantry stock and unit costs")
	fmt.Println("  insights           Show low-stock, underused and cost rollups")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
