package quick

// MealPreset is one tap-to-log meal from the fixed catalog.
type MealPreset struct {
	ID       string
	Label    string
	Name     string
	Calories int
	Protein  int
}

// WorkoutPreset is one tap-to-select workout type.
type WorkoutPreset struct {
	ID    string
	Label string
	Type  string
}

var MealPresets = []MealPreset{
	{ID: "breakfast", Label: "☕ Breakfast - 350 kcal", Name: "Breakfast", Calories: 350, Protein: 15},
	{ID: "chicken_salad", Label: "🥗 Chicken salad - 450 kcal", Name: "Chicken salad", Calories: 450, Protein: 40},
	{ID: "protein_shake", Label: "🥤 Protein shake - 250 kcal", Name: "Protein shake", Calories: 250, Protein: 30},
	{ID: "sandwich", Label: "🥪 Sandwich - 400 kcal", Name: "Sandwich", Calories: 400, Protein: 20},
	{ID: "lunch", Label: "🍝 Lunch - 600 kcal", Name: "Lunch", Calories: 600, Protein: 35},
	{ID: "dinner", Label: "🍽️ Dinner - 500 kcal", Name: "Dinner", Calories: 500, Protein: 30},
}

var WorkoutPresets = []WorkoutPreset{
	{ID: "running", Label: "🏃 Running", Type: "Running"},
	{ID: "walking", Label: "🚶 Walking", Type: "Walking"},
	{ID: "gym", Label: "🏋️ Gym", Type: "Gym"},
	{ID: "cycling", Label: "🚴 Cycling", Type: "Cycling"},
	{ID: "basketball", Label: "🏀 Basketball", Type: "Basketball"},
	{ID: "football", Label: "⚽ Football", Type: "Football"},
	{ID: "swimming", Label: "🏊 Swimming", Type: "Swimming"},
	{ID: "yoga", Label: "🧘 Yoga", Type: "Yoga"},
}

var (
	mealsByID    = make(map[string]MealPreset, len(MealPresets))
	workoutsByID = make(map[string]WorkoutPreset, len(WorkoutPresets))
)

func init() {
	for _, p := range MealPresets {
		mealsByID[p.ID] = p
	}
	for _, p := range WorkoutPresets {
		workoutsByID[p.ID] = p
	}
}

func MealPresetByID(id string) (MealPreset, bool) {
	p, ok := mealsByID[id]
	return p, ok
}

func WorkoutPresetByID(id string) (WorkoutPreset, bool) {
	p, ok := workoutsByID[id]
	return p, ok
}
