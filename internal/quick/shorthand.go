package quick

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"fittrack/internal/ledger"
)

const defaultWorkoutMinutes = 30

const (
	UsageMeal    = "Format: meal: name, calories, protein"
	UsageWorkout = "Format: workout: type, minutes"
	UsageWeight  = "Format: weight: 75.5"
)

// FormatError is returned when a shorthand line matched a category prefix
// but its fields are malformed. The line is rejected as a whole; nothing
// is ever partially written.
type FormatError struct{ Usage string }

func (e *FormatError) Error() string { return e.Usage }

// Entry is one fully resolved ledger entry produced without a dialog.
// Exactly one field is set.
type Entry struct {
	Meal    *ledger.Meal
	Workout *ledger.Workout
	Weight  *ledger.WeightEntry
}

// ParseShorthand resolves a single-line quick entry such as
// "meal: omelet, 300, 20". The second return is false when the line does
// not start with a recognized category prefix at all.
func ParseShorthand(text string, now time.Time) (Entry, bool, error) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "meal:"):
		e, err := parseMeal(text[len("meal:"):], now)
		return e, true, err
	case strings.HasPrefix(lower, "workout:"):
		e, err := parseWorkout(text[len("workout:"):], now)
		return e, true, err
	case strings.HasPrefix(lower, "weight:"):
		e, err := parseWeight(text[len("weight:"):], now)
		return e, true, err
	}
	return Entry{}, false, nil
}

func parseMeal(rest string, now time.Time) (Entry, error) {
	parts := splitFields(rest)
	if len(parts) == 0 || parts[0] == "" || len(parts) > 3 {
		return Entry{}, &FormatError{Usage: UsageMeal}
	}
	calories, protein := 0, 0
	var err error
	if len(parts) > 1 {
		if calories, err = strconv.Atoi(parts[1]); err != nil {
			return Entry{}, &FormatError{Usage: UsageMeal}
		}
	}
	if len(parts) > 2 {
		if protein, err = strconv.Atoi(parts[2]); err != nil {
			return Entry{}, &FormatError{Usage: UsageMeal}
		}
	}
	m, err := ledger.NewMeal(parts[0], calories, protein, now)
	if err != nil {
		return Entry{}, &FormatError{Usage: UsageMeal}
	}
	return Entry{Meal: &m}, nil
}

func parseWorkout(rest string, now time.Time) (Entry, error) {
	parts := splitFields(rest)
	if len(parts) == 0 || parts[0] == "" || len(parts) > 2 {
		return Entry{}, &FormatError{Usage: UsageWorkout}
	}
	minutes := defaultWorkoutMinutes
	if len(parts) > 1 {
		var err error
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return Entry{}, &FormatError{Usage: UsageWorkout}
		}
	}
	w, err := ledger.NewWorkout(parts[0], minutes, now)
	if err != nil {
		return Entry{}, &FormatError{Usage: UsageWorkout}
	}
	return Entry{Workout: &w}, nil
}

func parseWeight(rest string, now time.Time) (Entry, error) {
	raw := strings.TrimSpace(rest)
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return Entry{}, &FormatError{Usage: UsageWeight}
	}
	we, err := ledger.NewWeightEntry(v, now)
	if err != nil {
		return Entry{}, &FormatError{Usage: UsageWeight}
	}
	return Entry{Weight: &we}, nil
}

func splitFields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// AsFormatError reports whether err is a shorthand format rejection.
func AsFormatError(err error) (*FormatError, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
