package report

import (
	"strings"
	"testing"
	"time"

	"fittrack/internal/ledger"
)

var utc = time.UTC

func TestPercent(t *testing.T) {
	cases := []struct {
		total, target, want int
	}{
		{1000, 2000, 50},
		{0, 2000, 0},
		{2500, 2000, 125},
		{999, 1000, 99}, // floor, never round up
		{1000, 0, 0},    // zero target defined as zero, no division fault
	}
	for _, c := range cases {
		if got := Percent(c.total, c.target); got != c.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", c.total, c.target, got, c.want)
		}
	}
}

func TestBar(t *testing.T) {
	cases := []struct {
		percent int
		want    string
	}{
		{0, "░░░░░░░░░░"},
		{50, "█████░░░░░"},
		{59, "█████░░░░░"},
		{100, "██████████"},
		{250, "██████████"}, // capped
	}
	for _, c := range cases {
		if got := Bar(c.percent); got != c.want {
			t.Errorf("Bar(%d) = %q, want %q", c.percent, got, c.want)
		}
	}
}

func TestDailyFiltersByCalendarDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, utc)
	l := ledger.NewLedger(2000, 150)
	l.AddMeal(ledger.Meal{Name: "breakfast", Calories: 400, Protein: 20, LoggedAt: now.Add(-6 * time.Hour)})
	l.AddMeal(ledger.Meal{Name: "lunch", Calories: 600, Protein: 40, LoggedAt: now.Add(-1 * time.Hour)})
	l.AddMeal(ledger.Meal{Name: "yesterday", Calories: 900, Protein: 50, LoggedAt: now.Add(-24 * time.Hour)})
	l.AddWorkout(ledger.Workout{Type: "Running", DurationMin: 30, LoggedAt: now.Add(-2 * time.Hour)})
	l.AddWorkout(ledger.Workout{Type: "Gym", DurationMin: 60, LoggedAt: now.Add(-30 * time.Hour)})

	s := Daily(l, now, utc)
	if s.Calories != 1000 || s.Protein != 60 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.WorkoutMinutes != 30 {
		t.Fatalf("unexpected workout minutes: %d", s.WorkoutMinutes)
	}
	if s.CaloriesPercent != 50 {
		t.Fatalf("want 50%%, got %d", s.CaloriesPercent)
	}
	if got := Bar(s.CaloriesPercent); got != "█████░░░░░" {
		t.Fatalf("bar: %q", got)
	}
	if len(s.Meals) != 2 || len(s.Workouts) != 1 {
		t.Fatalf("itemized lists wrong: %d meals, %d workouts", len(s.Meals), len(s.Workouts))
	}
}

func TestDailyZeroTargets(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, utc)
	var l ledger.Ledger // settings left zeroed
	l.AddMeal(ledger.Meal{Name: "x", Calories: 500, LoggedAt: now})

	s := Daily(l, now, utc)
	if s.CaloriesPercent != 0 || s.ProteinPercent != 0 {
		t.Fatalf("zero target should give zero percent: %+v", s)
	}
}

func TestDailyRespectsTimezone(t *testing.T) {
	// 01:00 UTC on March 11 is still March 10 in New York.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	now := time.Date(2026, 3, 11, 1, 0, 0, 0, utc)
	l := ledger.NewLedger(2000, 150)
	l.AddMeal(ledger.Meal{Name: "late", Calories: 300, LoggedAt: time.Date(2026, 3, 10, 23, 0, 0, 0, utc)})

	if s := Daily(l, now, utc); s.Calories != 0 {
		t.Fatalf("UTC view should exclude yesterday's meal: %+v", s)
	}
	if s := Daily(l, now, ny); s.Calories != 300 {
		t.Fatalf("New York view should include the meal: %+v", s)
	}
}

func TestWeeklyFixedDivisor(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, utc)
	l := ledger.NewLedger(2000, 150)
	// All 7000 kcal on a single day in the window: average still divides by 7.
	for i := 0; i < 7; i++ {
		l.AddMeal(ledger.Meal{Name: "m", Calories: 1000, LoggedAt: now.Add(-20 * time.Hour)})
	}

	s := Weekly(l, now, utc)
	if s.TotalCalories != 7000 {
		t.Fatalf("total: %d", s.TotalCalories)
	}
	if s.AvgCalories != 1000 {
		t.Fatalf("avg must use divisor 7, got %d", s.AvgCalories)
	}
}

func TestWeeklyRollingWindowIsStrict(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, utc)
	l := ledger.NewLedger(2000, 150)
	l.AddMeal(ledger.Meal{Name: "edge", Calories: 100, LoggedAt: now.Add(-7 * 24 * time.Hour)})       // exactly on the boundary: excluded
	l.AddMeal(ledger.Meal{Name: "inside", Calories: 200, LoggedAt: now.Add(-7*24*time.Hour + time.Second)})

	s := Weekly(l, now, utc)
	if s.TotalCalories != 200 {
		t.Fatalf("boundary handling wrong: %d", s.TotalCalories)
	}
}

func TestWeeklyWorkoutsAndActiveDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, utc)
	l := ledger.NewLedger(2000, 150)
	l.AddWorkout(ledger.Workout{Type: "Running", DurationMin: 30, LoggedAt: now.Add(-2 * time.Hour)})
	l.AddWorkout(ledger.Workout{Type: "Gym", DurationMin: 60, LoggedAt: now.Add(-3 * time.Hour)})
	l.AddWorkout(ledger.Workout{Type: "Yoga", DurationMin: 40, LoggedAt: now.Add(-50 * time.Hour)})
	l.AddWorkout(ledger.Workout{Type: "Old", DurationMin: 90, LoggedAt: now.Add(-8 * 24 * time.Hour)})

	s := Weekly(l, now, utc)
	if s.WorkoutCount != 3 || s.WorkoutMinutes != 130 {
		t.Fatalf("workouts: count=%d minutes=%d", s.WorkoutCount, s.WorkoutMinutes)
	}
	if s.ActiveDays != 2 {
		t.Fatalf("active days: %d", s.ActiveDays)
	}
}

func TestWeeklyWeightTrend(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, utc)
	l := ledger.NewLedger(2000, 150)
	l.AddWeight(ledger.WeightEntry{Value: 70.0, LoggedAt: now.Add(-5 * 24 * time.Hour)})
	l.AddWeight(ledger.WeightEntry{Value: 71.5, LoggedAt: now.Add(-1 * 24 * time.Hour)})

	s := Weekly(l, now, utc)
	if !s.HasWeightTrend {
		t.Fatal("trend missing with two in-window readings")
	}
	if s.WeightDelta != 1.5 || s.WeightTrend != TrendUp {
		t.Fatalf("delta=%v trend=%v", s.WeightDelta, s.WeightTrend)
	}
}

func TestWeeklyWeightTrendNeedsTwoReadings(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, utc)
	l := ledger.NewLedger(2000, 150)
	l.AddWeight(ledger.WeightEntry{Value: 70.0, LoggedAt: now.Add(-24 * time.Hour)})
	l.AddWeight(ledger.WeightEntry{Value: 80.0, LoggedAt: now.Add(-30 * 24 * time.Hour)}) // out of window

	s := Weekly(l, now, utc)
	if s.HasWeightTrend {
		t.Fatalf("trend reported with one in-window reading: %+v", s)
	}
}

func TestWeeklyWeightTrendFlatAndDown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, utc)

	l := ledger.NewLedger(2000, 150)
	l.AddWeight(ledger.WeightEntry{Value: 70.0, LoggedAt: now.Add(-48 * time.Hour)})
	l.AddWeight(ledger.WeightEntry{Value: 70.0, LoggedAt: now.Add(-24 * time.Hour)})
	if s := Weekly(l, now, utc); s.WeightTrend != TrendFlat || s.WeightDelta != 0 {
		t.Fatalf("flat: %+v", s)
	}

	l2 := ledger.NewLedger(2000, 150)
	l2.AddWeight(ledger.WeightEntry{Value: 71.0, LoggedAt: now.Add(-48 * time.Hour)})
	l2.AddWeight(ledger.WeightEntry{Value: 70.5, LoggedAt: now.Add(-24 * time.Hour)})
	if s := Weekly(l2, now, utc); s.WeightTrend != TrendDown || s.WeightDelta != -0.5 {
		t.Fatalf("down: %+v", s)
	}
}

func TestBarWidthInvariant(t *testing.T) {
	for p := -10; p <= 200; p += 7 {
		if n := len([]rune(Bar(p))); n != 10 {
			t.Fatalf("Bar(%d) has %d segments", p, n)
		}
	}
}

func TestBarComposition(t *testing.T) {
	b := Bar(73)
	if !strings.HasPrefix(b, "███████░") {
		t.Fatalf("Bar(73) = %q", b)
	}
}
