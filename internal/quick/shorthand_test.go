package quick

import (
	"testing"
	"time"
)

func TestParseShorthandMeal(t *testing.T) {
	now := time.Now()

	e, matched, err := ParseShorthand("meal: omelet, 300, 20", now)
	if !matched || err != nil {
		t.Fatalf("matched=%v err=%v", matched, err)
	}
	if e.Meal == nil || e.Meal.Name != "omelet" || e.Meal.Calories != 300 || e.Meal.Protein != 20 {
		t.Fatalf("unexpected entry: %+v", e.Meal)
	}

	// Omitted fields default to zero.
	e, matched, err = ParseShorthand("meal: toast", now)
	if !matched || err != nil {
		t.Fatalf("matched=%v err=%v", matched, err)
	}
	if e.Meal.Calories != 0 || e.Meal.Protein != 0 {
		t.Fatalf("defaults not applied: %+v", e.Meal)
	}
}

func TestParseShorthandMealRejectsBadFields(t *testing.T) {
	now := time.Now()
	for _, line := range []string{
		"meal:",
		"meal: omelet, many",
		"meal: omelet, 300, lots",
		"meal: omelet, -50",
		"meal: a, 1, 2, 3",
	} {
		_, matched, err := ParseShorthand(line, now)
		if !matched {
			t.Fatalf("%q should match the meal prefix", line)
		}
		fe, ok := AsFormatError(err)
		if !ok {
			t.Fatalf("%q: want FormatError, got %v", line, err)
		}
		if fe.Usage != UsageMeal {
			t.Fatalf("%q: wrong usage text %q", line, fe.Usage)
		}
	}
}

func TestParseShorthandWorkout(t *testing.T) {
	now := time.Now()

	e, matched, err := ParseShorthand("workout: running, 45", now)
	if !matched || err != nil {
		t.Fatalf("matched=%v err=%v", matched, err)
	}
	if e.Workout == nil || e.Workout.Type != "running" || e.Workout.DurationMin != 45 {
		t.Fatalf("unexpected entry: %+v", e.Workout)
	}

	// Duration defaults to 30 minutes.
	e, _, err = ParseShorthand("workout: yoga", now)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if e.Workout.DurationMin != 30 {
		t.Fatalf("default duration not applied: %+v", e.Workout)
	}

	if _, _, err := ParseShorthand("workout: gym, forever", now); err == nil {
		t.Fatal("unparsable duration accepted")
	}
}

func TestParseShorthandWeight(t *testing.T) {
	now := time.Now()
	for _, line := range []string{"weight: 75.5", "weight: 75,5"} {
		e, matched, err := ParseShorthand(line, now)
		if !matched || err != nil {
			t.Fatalf("%q: matched=%v err=%v", line, matched, err)
		}
		if e.Weight == nil || e.Weight.Value != 75.5 {
			t.Fatalf("%q: unexpected entry: %+v", line, e.Weight)
		}
	}
	if _, _, err := ParseShorthand("weight: light", now); err == nil {
		t.Fatal("unparsable weight accepted")
	}
}

func TestParseShorthandNoMatch(t *testing.T) {
	for _, line := range []string{"hello", "", "mealtime soon", "/today"} {
		_, matched, err := ParseShorthand(line, time.Now())
		if matched || err != nil {
			t.Fatalf("%q: matched=%v err=%v", line, matched, err)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for _, tok := range []Token{
		{Kind: TokenMealPreset, ID: "breakfast"},
		{Kind: TokenWorkoutPreset, ID: "running"},
		{Kind: TokenAction, ID: ActionManualMeal},
	} {
		got, err := DecodeToken(tok.Encode())
		if err != nil {
			t.Fatalf("decode %q: %v", tok.Encode(), err)
		}
		if got != tok {
			t.Fatalf("round trip: want %+v, got %+v", tok, got)
		}
	}
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "v1:meal", "v9:meal:breakfast", "v1:mystery:x", "quick_meal_breakfast_350_15"} {
		if _, err := DecodeToken(s); err == nil {
			t.Fatalf("token %q accepted", s)
		}
	}
}

func TestPresetLookup(t *testing.T) {
	p, ok := MealPresetByID("breakfast")
	if !ok || p.Calories != 350 || p.Protein != 15 {
		t.Fatalf("breakfast preset: %+v ok=%v", p, ok)
	}
	w, ok := WorkoutPresetByID("running")
	if !ok || w.Type != "Running" {
		t.Fatalf("running preset: %+v ok=%v", w, ok)
	}
	if _, ok := MealPresetByID("nope"); ok {
		t.Fatal("unknown preset resolved")
	}
}
