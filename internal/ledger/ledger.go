package ledger

import (
	"errors"
	"strings"
	"time"
)

// CurrentSchema is the version tag written into every persisted ledger.
// Ledgers loaded with an older (or missing) tag are upgraded in memory
// and rewritten on the next save.
const CurrentSchema = 1

const (
	DefaultTargetCalories = 2000
	DefaultTargetProtein  = 150
)

var (
	ErrEmptyName        = errors.New("ledger: entry name must not be empty")
	ErrNegativeCalories = errors.New("ledger: calories must be >= 0")
	ErrNegativeProtein  = errors.New("ledger: protein must be >= 0")
	ErrBadDuration      = errors.New("ledger: duration must be > 0")
	ErrBadWeight        = errors.New("ledger: weight must be > 0")
	ErrBadTarget        = errors.New("ledger: target must be > 0")
)

// Meal is a single logged meal. Entries are immutable once appended.
type Meal struct {
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	Protein  int       `json:"protein"`
	LoggedAt time.Time `json:"logged_at"`
}

// Workout is a single logged workout.
type Workout struct {
	Type        string    `json:"type"`
	DurationMin int       `json:"duration_min"`
	LoggedAt    time.Time `json:"logged_at"`
}

// WeightEntry is a single weight reading in kilograms.
type WeightEntry struct {
	Value    float64   `json:"value"`
	LoggedAt time.Time `json:"logged_at"`
}

// Settings holds the per-user nutrition targets.
type Settings struct {
	TargetCalories int `json:"target_calories"`
	TargetProtein  int `json:"target_protein"`
}

// Ledger is the durable per-user record of everything the user has logged.
// Sequences are insertion-ordered; appended entries are never edited or
// removed.
type Ledger struct {
	Schema   int           `json:"schema"`
	Meals    []Meal        `json:"meals"`
	Workouts []Workout     `json:"workouts"`
	Weights  []WeightEntry `json:"weights"`
	Settings Settings      `json:"settings"`
}

func NewMeal(name string, calories, protein int, at time.Time) (Meal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Meal{}, ErrEmptyName
	}
	if calories < 0 {
		return Meal{}, ErrNegativeCalories
	}
	if protein < 0 {
		return Meal{}, ErrNegativeProtein
	}
	return Meal{Name: name, Calories: calories, Protein: protein, LoggedAt: at}, nil
}

func NewWorkout(typ string, durationMin int, at time.Time) (Workout, error) {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return Workout{}, ErrEmptyName
	}
	if durationMin <= 0 {
		return Workout{}, ErrBadDuration
	}
	return Workout{Type: typ, DurationMin: durationMin, LoggedAt: at}, nil
}

func NewWeightEntry(value float64, at time.Time) (WeightEntry, error) {
	if value <= 0 {
		return WeightEntry{}, ErrBadWeight
	}
	return WeightEntry{Value: value, LoggedAt: at}, nil
}

// NewLedger returns an empty ledger with the given targets.
func NewLedger(targetCalories, targetProtein int) Ledger {
	if targetCalories <= 0 {
		targetCalories = DefaultTargetCalories
	}
	if targetProtein <= 0 {
		targetProtein = DefaultTargetProtein
	}
	return Ledger{
		Schema:   CurrentSchema,
		Settings: Settings{TargetCalories: targetCalories, TargetProtein: targetProtein},
	}
}

func (l *Ledger) AddMeal(m Meal) { l.Meals = append(l.Meals, m) }

func (l *Ledger) AddWorkout(w Workout) { l.Workouts = append(l.Workouts, w) }

func (l *Ledger) AddWeight(w WeightEntry) { l.Weights = append(l.Weights, w) }

func (l *Ledger) SetTargetCalories(target int) error {
	if target <= 0 {
		return ErrBadTarget
	}
	l.Settings.TargetCalories = target
	return nil
}

func (l *Ledger) SetTargetProtein(target int) error {
	if target <= 0 {
		return ErrBadTarget
	}
	l.Settings.TargetProtein = target
	return nil
}

// LastWeight returns the most recently appended weight reading.
func (l *Ledger) LastWeight() (WeightEntry, bool) {
	if len(l.Weights) == 0 {
		return WeightEntry{}, false
	}
	return l.Weights[len(l.Weights)-1], true
}

// upgrade migrates a ledger loaded from an older schema to the current one.
func (l *Ledger) upgrade() {
	if l.Schema >= CurrentSchema {
		return
	}
	if l.Settings.TargetCalories <= 0 {
		l.Settings.TargetCalories = DefaultTargetCalories
	}
	if l.Settings.TargetProtein <= 0 {
		l.Settings.TargetProtein = DefaultTargetProtein
	}
	l.Schema = CurrentSchema
}
