// Package report computes daily and rolling-weekly summaries over a
// ledger. Everything here is a pure function of the ledger, an explicit
// reference instant and an explicit timezone; nothing is mutated.
package report

import (
	"strings"
	"time"

	"fittrack/internal/ledger"
)

const barSegments = 10

// DailySummary covers all entries logged on the same calendar date as the
// reference instant, in the configured timezone.
type DailySummary struct {
	Date            time.Time
	Calories        int
	Protein         int
	WorkoutMinutes  int
	TargetCalories  int
	TargetProtein   int
	CaloriesPercent int
	ProteinPercent  int
	Meals           []ledger.Meal
	Workouts        []ledger.Workout
}

// Trend is the direction of the weekly weight change.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

// WeeklySummary covers the rolling 7x24h window ending at the reference
// instant. AvgCalories always divides by 7, however many distinct days had
// entries; that is a deliberate carry-over, not an oversight.
type WeeklySummary struct {
	TotalCalories  int
	AvgCalories    int
	TotalProtein   int
	WorkoutCount   int
	WorkoutMinutes int
	ActiveDays     int
	HasWeightTrend bool
	WeightDelta    float64
	WeightTrend    Trend
}

// Percent returns floor(total/target*100), with a zero target defined as 0.
func Percent(total, target int) int {
	if target == 0 {
		return 0
	}
	return total * 100 / target
}

// Bar renders a 10-segment progress bar for a percentage.
func Bar(percent int) string {
	filled := percent
	if filled > 100 {
		filled = 100
	}
	if filled < 0 {
		filled = 0
	}
	filled /= barSegments
	return strings.Repeat("█", filled) + strings.Repeat("░", barSegments-filled)
}

func sameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Daily filters entries whose timestamp falls on now's calendar date in loc.
func Daily(l ledger.Ledger, now time.Time, loc *time.Location) DailySummary {
	s := DailySummary{
		Date:           now.In(loc),
		TargetCalories: l.Settings.TargetCalories,
		TargetProtein:  l.Settings.TargetProtein,
	}
	for _, m := range l.Meals {
		if sameDate(m.LoggedAt, now, loc) {
			s.Meals = append(s.Meals, m)
			s.Calories += m.Calories
			s.Protein += m.Protein
		}
	}
	for _, w := range l.Workouts {
		if sameDate(w.LoggedAt, now, loc) {
			s.Workouts = append(s.Workouts, w)
			s.WorkoutMinutes += w.DurationMin
		}
	}
	s.CaloriesPercent = Percent(s.Calories, s.TargetCalories)
	s.ProteinPercent = Percent(s.Protein, s.TargetProtein)
	return s
}

// Weekly aggregates entries with timestamps strictly after now-7d.
func Weekly(l ledger.Ledger, now time.Time, loc *time.Location) WeeklySummary {
	weekAgo := now.Add(-7 * 24 * time.Hour)
	var s WeeklySummary

	for _, m := range l.Meals {
		if m.LoggedAt.After(weekAgo) {
			s.TotalCalories += m.Calories
			s.TotalProtein += m.Protein
		}
	}
	s.AvgCalories = s.TotalCalories / 7

	days := make(map[string]struct{})
	for _, w := range l.Workouts {
		if w.LoggedAt.After(weekAgo) {
			s.WorkoutCount++
			s.WorkoutMinutes += w.DurationMin
			days[w.LoggedAt.In(loc).Format("2006-01-02")] = struct{}{}
		}
	}
	s.ActiveDays = len(days)

	// First and last in-window readings in insertion order.
	var inWindow []ledger.WeightEntry
	for _, w := range l.Weights {
		if w.LoggedAt.After(weekAgo) {
			inWindow = append(inWindow, w)
		}
	}
	if len(inWindow) >= 2 {
		s.HasWeightTrend = true
		s.WeightDelta = inWindow[len(inWindow)-1].Value - inWindow[0].Value
		switch {
		case s.WeightDelta > 0:
			s.WeightTrend = TrendUp
		case s.WeightDelta < 0:
			s.WeightTrend = TrendDown
		default:
			s.WeightTrend = TrendFlat
		}
	}
	return s
}
