package telegram

import (
	"fmt"
	"strings"
	"time"

	"fittrack/internal/ledger"
	"fittrack/internal/report"
)

func trendEmoji(t report.Trend) string {
	switch t {
	case report.TrendUp:
		return "📈"
	case report.TrendDown:
		return "📉"
	}
	return "➡️"
}

func formatMealLogged(m ledger.Meal, led ledger.Ledger, now time.Time, loc *time.Location) string {
	day := report.Daily(led, now, loc)
	return fmt.Sprintf(
		"✅ *Logged: %s*\n🔥 %d kcal | 💪 %dg\n\n📊 Today: %d/%d kcal (%d%%)",
		m.Name, m.Calories, m.Protein,
		day.Calories, day.TargetCalories, day.CaloriesPercent)
}

func formatWorkoutLogged(w ledger.Workout, led ledger.Ledger, now time.Time, loc *time.Location) string {
	week := report.Weekly(led, now, loc)
	return fmt.Sprintf(
		"✅ *Logged: %s*\n⏱️ %d minutes\n\n📊 This week: %d minutes",
		w.Type, w.DurationMin, week.WorkoutMinutes)
}

func formatWeightLogged(w ledger.WeightEntry, prev ledger.WeightEntry, hasPrev bool) string {
	out := fmt.Sprintf("✅ *Weight: %.1f kg*", w.Value)
	if hasPrev {
		diff := w.Value - prev.Value
		emoji := "➡️"
		if diff > 0 {
			emoji = "📈"
		} else if diff < 0 {
			emoji = "📉"
		}
		out += fmt.Sprintf("\n%s Change: %+.1f kg", emoji, diff)
	}
	return out
}

func formatDaily(led ledger.Ledger, now time.Time, loc *time.Location) string {
	s := report.Daily(led, now, loc)

	var meals strings.Builder
	for _, m := range s.Meals {
		meals.WriteString(fmt.Sprintf("  • %s - %d kcal\n", m.Name, m.Calories))
	}
	if meals.Len() == 0 {
		meals.WriteString("  none\n")
	}

	var workouts strings.Builder
	for _, w := range s.Workouts {
		workouts.WriteString(fmt.Sprintf("  • %s - %d min\n", w.Type, w.DurationMin))
	}
	if workouts.Len() == 0 {
		workouts.WriteString("  none\n")
	}

	return fmt.Sprintf(
		"📊 *Daily summary - %s*\n\n"+
			"🔥 *Calories:* %d/%d\n[%s] %d%%\n\n"+
			"💪 *Protein:* %dg/%dg\n[%s] %d%%\n\n"+
			"🏃 *Workout:* %d minutes\n\n"+
			"🍽️ *Meals:*\n%s\n"+
			"💪 *Workouts:*\n%s",
		s.Date.Format("02/01"),
		s.Calories, s.TargetCalories, report.Bar(s.CaloriesPercent), s.CaloriesPercent,
		s.Protein, s.TargetProtein, report.Bar(s.ProteinPercent), s.ProteinPercent,
		s.WorkoutMinutes,
		strings.TrimRight(meals.String(), "\n"),
		strings.TrimRight(workouts.String(), "\n"))
}

func formatWeekly(led ledger.Ledger, now time.Time, loc *time.Location) string {
	s := report.Weekly(led, now, loc)

	out := fmt.Sprintf(
		"📈 *Weekly summary*\n\n"+
			"🔥 *Calories:* %d (avg: %d/day)\n"+
			"💪 *Protein:* %dg\n\n"+
			"🏃 *Workouts:* %d (%d min)\n"+
			"📅 *Active days:* %d/7",
		s.TotalCalories, s.AvgCalories,
		s.TotalProtein,
		s.WorkoutCount, s.WorkoutMinutes,
		s.ActiveDays)
	if s.HasWeightTrend {
		out += fmt.Sprintf("\n\n⚖️ *Weight change:* %s %+.1f kg", trendEmoji(s.WeightTrend), s.WeightDelta)
	}
	return out
}
