package domain

import "strings"

// MealType identifies one of the fixed meal slots a day can hold.
type MealType string

const (
	Breakfast   MealType = "breakfast"
	Lunch       MealType = "lunch"
	Dinner      MealType = "dinner"
	Snack       MealType = "snack"
	LateNight   MealType = "late-night"
	PreWorkout  MealType = "pre-workout"
	PostWorkout MealType = "post-workout"
	Dessert     MealType = "dessert"
)

// MealTypes lists every meal type in canonical rendering order.
var MealTypes = []MealType{
	Breakfast, Lunch, Dinner, Snack, LateNight, PreWorkout, PostWorkout, Dessert,
}

// Label returns the human-readable name for a meal type.
func (m MealType) Label() string {
	switch m {
	case Breakfast:
		return "Breakfast"
	case Lunch:
		return "Lunch"
	case Dinner:
		return "Dinner"
	case Snack:
		return "Snack"
	case LateNight:
		return "Late-Night Snack"
	case PreWorkout:
		return "Pre-Workout"
	case PostWorkout:
		return "Post-Workout"
	case Dessert:
		return "Dessert"
	}
	return string(m)
}

// Equipment is a kitchen appliance a recipe may require.
type Equipment string

const (
	Microwave     Equipment = "Microwave"
	Stove         Equipment = "Stove"
	Oven          Equipment = "Oven"
	AirFryer      Equipment = "Air fryer"
	Blender       Equipment = "Blender"
	FoodProcessor Equipment = "Food processor"
	RiceCooker    Equipment = "Rice cooker"
	SlowCooker    Equipment = "Slow cooker / Instant Pot"
	Toaster       Equipment = "Toaster"
	Kettle        Equipment = "Kettle"
)

// Difficulty grades how much attention a recipe demands.
type Difficulty string

const (
	BeginnerSafe Difficulty = "Beginner-safe"
	Moderate     Difficulty = "Moderate attention"
	HighFocus    Difficulty = "High focus"
)

// PackageFormat is the purchasable form of an ingredient.
type PackageFormat string

const (
	FormatJar     PackageFormat = "jar"
	FormatBag     PackageFormat = "bag"
	FormatBox     PackageFormat = "box"
	FormatBottle  PackageFormat = "bottle"
	FormatCarton  PackageFormat = "carton"
	FormatPackage PackageFormat = "package"
	FormatPieces  PackageFormat = "pieces"
)

// PackageFormats lists every known package format.
var PackageFormats = []PackageFormat{
	FormatJar, FormatBag, FormatBox, FormatBottle, FormatCarton, FormatPackage, FormatPieces,
}

// Feedback records how a cooked slot actually went.
type Feedback string

const (
	FeedbackMade     Feedback = "Made"
	FeedbackSkipped  Feedback = "Skipped"
	FeedbackModified Feedback = "Modified"
)

// Days lists the fixed 7-day planning cycle.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Recipe is immutable once created; edits replace the record.
type Recipe struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	Purpose               string            `json:"purpose"`
	Equipment             []Equipment       `json:"equipment"`
	Difficulty            Difficulty        `json:"difficulty"`
	PrepTime              int               `json:"prepTime"`
	CookTime              int               `json:"cookTime"`
	TotalTime             int               `json:"totalTime"`
	Servings              int               `json:"servings"`
	Ingredients           []Ingredient      `json:"ingredients"`
	Instructions          []string          `json:"instructions"`
	CondensedInstructions []string          `json:"condensedInstructions,omitempty"`
	Tags                  []string          `json:"tags"`
	IngredientBenefits    map[string]string `json:"ingredientBenefits"`
	MealType              MealType          `json:"mealType"`
}

// PantryItem is the on-hand stock of one ingredient. At most one item exists
// per normalized name; lookups must go through NormalizeName.
type PantryItem struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	QuantityRemaining float64       `json:"quantityRemaining"`
	Unit              string        `json:"unit"`
	PackageSize       float64       `json:"packageSize"`
	PackagePrice      float64       `json:"packagePrice"`
	PackageFormat     PackageFormat `json:"packageFormat"`
	// LastUsed is a millisecond Unix timestamp; zero means never used.
	LastUsed int64  `json:"lastUsed,omitempty"`
	Category string `json:"category"`
}

// GroceryItem is a fully recomputable projection of outstanding demand.
type GroceryItem struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	QuantityRequired float64       `json:"quantityRequired"`
	Unit             string        `json:"unit"`
	PackageSize      float64       `json:"packageSize"`
	PackageFormat    PackageFormat `json:"packageFormat"`
	PackagePrice     float64       `json:"packagePrice"`
	Checked          bool          `json:"checked"`
}

// MealPlanDay holds the recipe bindings for one day of the weekly cycle.
// Cooked and Feedback entries are only meaningful after a cook event.
type MealPlanDay struct {
	Day      string                `json:"day"`
	Slots    map[MealType]string   `json:"slots"`
	Cooked   map[MealType]bool     `json:"cooked"`
	Feedback map[MealType]Feedback `json:"feedback"`
}

// UserSettings is process-wide configuration, always passed explicitly.
type UserSettings struct {
	HasOnboarded      bool        `json:"hasOnboarded"`
	Equipment         []Equipment `json:"equipment"`
	SelectedMealTypes []MealType  `json:"selectedMealTypes"`
	Currency          string      `json:"currency"`
	MaxMinutesPerMeal int         `json:"maxMinutesPerMeal"`
	NoCookOnly        bool        `json:"noCookOnly"`
	MealPrepMode      bool        `json:"mealPrepMode"`
	ExamMode          bool        `json:"examMode"`
	BudgetRange       string      `json:"budgetRange"`
	PantryEnabled     bool        `json:"pantryEnabled"`
}

// NormalizeName folds an ingredient name to the case-insensitive canonical
// form used as the join key across pantry, recipe and grocery entities.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}

// NewWeekPlan returns a 7-day plan with all slots, cooked flags and
// feedback empty.
func NewWeekPlan() []MealPlanDay {
	plan := make([]MealPlanDay, 0, len(Days))
	for _, d := range Days {
		plan = append(plan, MealPlanDay{
			Day:      d,
			Slots:    map[MealType]string{},
			Cooked:   map[MealType]bool{},
			Feedback: map[MealType]Feedback{},
		})
	}
	return plan
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() UserSettings {
	return UserSettings{
		HasOnboarded:      false,
		Equipment:         []Equipment{},
		SelectedMealTypes: []MealType{Breakfast, Lunch, Dinner},
		Currency:          "USD",
		MaxMinutesPerMeal: 30,
		BudgetRange:       "$30 - $50",
		PantryEnabled:     true,
	}
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
}

// CurrencySymbol returns the display symbol for a currency code,
// falling back to "$" for unknown codes.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return "$"
}
