// Package dialog implements the multi-step entry state machines. Step is a
// pure transition: it inspects the session, consumes one user input and
// returns what to say and what (if anything) to commit. It never touches
// the store or the transport.
package dialog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fittrack/internal/ledger"
	"fittrack/internal/session"
)

// Result describes the outcome of feeding one input to an open dialog.
// When Done is true the session should be destroyed; at most one of Meal,
// Workout or Weight is set and must be committed by the caller.
type Result struct {
	Reply   string
	Done    bool
	Meal    *ledger.Meal
	Workout *ledger.Workout
	Weight  *ledger.WeightEntry
}

const (
	PromptMealName        = "✏️ What did you eat?"
	PromptMealCalories    = "🔥 How many calories?"
	PromptMealProtein     = "💪 How many grams of protein? (or 0)"
	PromptWorkoutType     = "✏️ What kind of workout?"
	PromptWeightValue     = "Enter your weight:"
	replyNumbersOnly      = "❌ Numbers only"
	replyWeightFormat     = "❌ Numbers only (for example: 75.5)"
	replyNameRequired     = "❌ Please enter a name"
	replyDurationPositive = "❌ Minutes must be a positive number"
)

func PromptWorkoutDuration(workoutType string) string {
	return fmt.Sprintf("⏱️ How many minutes of %s?", workoutType)
}

// Step advances the session with one line of user input. On validation
// failure the session state is left unchanged so the user can retry.
func Step(s *session.Session, input string, now time.Time) Result {
	input = strings.TrimSpace(input)
	switch s.State {
	case session.AwaitingMealName:
		if input == "" {
			return Result{Reply: replyNameRequired}
		}
		s.Draft.MealName = input
		s.State = session.AwaitingMealCalories
		return Result{Reply: PromptMealCalories}

	case session.AwaitingMealCalories:
		v, err := strconv.Atoi(input)
		if err != nil || v < 0 {
			return Result{Reply: replyNumbersOnly}
		}
		s.Draft.MealCalories = v
		s.State = session.AwaitingMealProtein
		return Result{Reply: PromptMealProtein}

	case session.AwaitingMealProtein:
		// Unparsable protein falls back to 0 instead of re-prompting,
		// matching the calories/protein asymmetry of the original flow.
		protein, err := strconv.Atoi(input)
		if err != nil || protein < 0 {
			protein = 0
		}
		m, err := ledger.NewMeal(s.Draft.MealName, s.Draft.MealCalories, protein, now)
		if err != nil {
			return Result{Reply: replyNumbersOnly}
		}
		return Result{Done: true, Meal: &m}

	case session.AwaitingWorkoutType:
		if input == "" {
			return Result{Reply: replyNameRequired}
		}
		s.Draft.WorkoutType = input
		s.State = session.AwaitingWorkoutDuration
		return Result{Reply: PromptWorkoutDuration(input)}

	case session.AwaitingWorkoutDuration:
		v, err := strconv.Atoi(input)
		if err != nil {
			return Result{Reply: replyNumbersOnly}
		}
		w, err := ledger.NewWorkout(s.Draft.WorkoutType, v, now)
		if err != nil {
			return Result{Reply: replyDurationPositive}
		}
		return Result{Done: true, Workout: &w}

	case session.AwaitingWeightValue:
		v, err := strconv.ParseFloat(strings.ReplaceAll(input, ",", "."), 64)
		if err != nil {
			return Result{Reply: replyWeightFormat}
		}
		we, err := ledger.NewWeightEntry(v, now)
		if err != nil {
			return Result{Reply: replyWeightFormat}
		}
		return Result{Done: true, Weight: &we}
	}
	return Result{Reply: replyNameRequired}
}
