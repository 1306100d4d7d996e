package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fittrack/internal/dialog"
	"fittrack/internal/ledger"
	"fittrack/internal/quick"
	"fittrack/internal/session"
)

// Reply-keyboard menu labels. Messages matching one of these route like the
// corresponding command.
const (
	menuMeal     = "🍽️ Add meal"
	menuWorkout  = "💪 Add workout"
	menuWeight   = "⚖️ Update weight"
	menuToday    = "📊 Daily summary"
	menuWeek     = "📈 Weekly summary"
	menuSettings = "⚙️ Settings"
)

const replyStorageFailed = "⚠️ Could not save your entry, please try again"

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	// An open dialog consumes all free text for its user.
	if sess, ok := b.sessions.Get(userID); ok {
		b.advanceDialog(ctx, userID, chatID, sess, text)
		return
	}

	if entry, matched, err := quick.ParseShorthand(text, b.now()); matched {
		if err != nil {
			if fe, ok := quick.AsFormatError(err); ok {
				b.sendMessage(chatID, fe.Usage)
				return
			}
			log.Printf("shorthand from %d rejected: %v", userID, err)
			return
		}
		b.commitQuickEntry(ctx, userID, chatID, 0, entry)
		return
	}

	switch text {
	case menuMeal:
		b.startMealDialog(userID, chatID)
	case menuWorkout:
		b.startWorkoutDialog(userID, chatID)
	case menuWeight:
		b.startWeightDialog(ctx, userID, chatID)
	case menuToday:
		b.sendDailySummary(ctx, userID, chatID)
	case menuWeek:
		b.sendWeeklySummary(ctx, userID, chatID)
	case menuSettings:
		b.sendSettings(ctx, userID, chatID)
	default:
		// Deliberately silent for the user, but logged.
		log.Printf("unrecognized input from %d: %q", userID, text)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.sendWelcome(chatID)
	case "help":
		b.sendMessage(chatID, helpText)
	case "meal":
		b.startMealDialog(userID, chatID)
	case "workout":
		b.startWorkoutDialog(userID, chatID)
	case "weight":
		b.startWeightDialog(ctx, userID, chatID)
	case "today":
		b.sendDailySummary(ctx, userID, chatID)
	case "week":
		b.sendWeeklySummary(ctx, userID, chatID)
	case "settings":
		b.sendSettings(ctx, userID, chatID)
	case "setcalories":
		b.setTarget(ctx, userID, chatID, msg.CommandArguments(), true)
	case "setprotein":
		b.setTarget(ctx, userID, chatID, msg.CommandArguments(), false)
	case "cancel":
		b.sessions.End(userID)
		b.sendMessage(chatID, "❌ Cancelled")
	default:
		log.Printf("unknown command from %d: %q", userID, msg.Command())
	}
}

func (b *Bot) sendWelcome(chatID int64) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuMeal),
			tgbotapi.NewKeyboardButton(menuWorkout),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuWeight),
			tgbotapi.NewKeyboardButton(menuToday),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuWeek),
			tgbotapi.NewKeyboardButton(menuSettings),
		),
	)
	kb.ResizeKeyboard = true
	b.sendWithMarkup(chatID,
		"🏋️ *Welcome to your nutrition and fitness tracker!*\n\n"+
			"I can help you track:\n"+
			"• 🍽️ Meals and calories\n"+
			"• 💪 Workouts\n"+
			"• ⚖️ Weight\n\n"+
			"Pick an option from the menu!",
		kb)
}

const helpText = "📖 *Commands:*\n\n" +
	"/meal - add a meal\n" +
	"/workout - add a workout\n" +
	"/weight - update weight\n" +
	"/today - daily summary\n" +
	"/week - weekly summary\n" +
	"/cancel - cancel the current dialog\n\n" +
	"*Shortcuts:*\n" +
	"`meal: name, calories, protein`\n" +
	"`workout: type, minutes`\n" +
	"`weight: 75.5`"

func (b *Bot) startMealDialog(userID, chatID int64) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(quick.MealPresets)+1)
	for _, p := range quick.MealPresets {
		tok := quick.Token{Kind: quick.TokenMealPreset, ID: p.ID}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Label, tok.Encode()),
		))
	}
	manual := quick.Token{Kind: quick.TokenAction, ID: quick.ActionManualMeal}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✏️ Manual entry", manual.Encode()),
	))

	b.sessions.Begin(userID, chatID, session.KindMeal, session.AwaitingMealName)
	b.sendWithMarkup(chatID, "🍽️ *Add meal*\n\nPick one or enter manually:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) startWorkoutDialog(userID, chatID int64) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(quick.WorkoutPresets); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{}
		for j := i; j < i+2 && j < len(quick.WorkoutPresets); j++ {
			p := quick.WorkoutPresets[j]
			tok := quick.Token{Kind: quick.TokenWorkoutPreset, ID: p.ID}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(p.Label, tok.Encode()))
		}
		rows = append(rows, row)
	}
	custom := quick.Token{Kind: quick.TokenAction, ID: quick.ActionCustomWorkout}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✏️ Other", custom.Encode()),
	))

	b.sessions.Begin(userID, chatID, session.KindWorkout, session.AwaitingWorkoutType)
	b.sendWithMarkup(chatID, "💪 *Add workout*\n\nPick a type:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) startWeightDialog(ctx context.Context, userID, chatID int64) {
	led, err := b.store.Load(ctx, userID)
	if err != nil {
		log.Printf("load ledger for %d: %v", userID, err)
		b.sendMessage(chatID, replyStorageFailed)
		return
	}
	hint := ""
	if last, ok := led.LastWeight(); ok {
		hint = fmt.Sprintf("\n📌 Last: %.1f kg", last.Value)
	}
	b.sessions.Begin(userID, chatID, session.KindWeight, session.AwaitingWeightValue)
	b.sendMessage(chatID, fmt.Sprintf("⚖️ *Update weight*%s\n\n%s", hint, dialog.PromptWeightValue))
}

// advanceDialog feeds one line of input to the open dialog and commits the
// finished entry, if any.
func (b *Bot) advanceDialog(ctx context.Context, userID, chatID int64, sess *session.Session, text string) {
	res := dialog.Step(sess, text, b.now())
	if !res.Done {
		b.sessions.Touch(userID)
		b.sendMessage(chatID, res.Reply)
		return
	}
	b.sessions.End(userID)

	switch {
	case res.Meal != nil:
		b.commitMeal(ctx, userID, chatID, 0, *res.Meal)
	case res.Workout != nil:
		b.commitWorkout(ctx, userID, chatID, 0, *res.Workout)
	case res.Weight != nil:
		b.commitWeight(ctx, userID, chatID, *res.Weight)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil {
		return
	}
	if b.api != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			log.Printf("failed to ack callback: %v", err)
		}
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	tok, err := quick.DecodeToken(cb.Data)
	if err != nil {
		log.Printf("bad callback token from %d: %v", userID, err)
		return
	}

	switch tok.Kind {
	case quick.TokenMealPreset:
		p, ok := quick.MealPresetByID(tok.ID)
		if !ok {
			log.Printf("unknown meal preset %q", tok.ID)
			return
		}
		m, err := ledger.NewMeal(p.Name, p.Calories, p.Protein, b.now())
		if err != nil {
			log.Printf("preset %q invalid: %v", tok.ID, err)
			return
		}
		b.sessions.End(userID)
		b.commitMeal(ctx, userID, chatID, messageID, m)

	case quick.TokenWorkoutPreset:
		p, ok := quick.WorkoutPresetByID(tok.ID)
		if !ok {
			log.Printf("unknown workout preset %q", tok.ID)
			return
		}
		sess, ok := b.sessions.Get(userID)
		if !ok || sess.Kind != session.KindWorkout {
			sess = b.sessions.Begin(userID, chatID, session.KindWorkout, session.AwaitingWorkoutType)
		}
		sess.Draft.WorkoutType = p.Type
		sess.State = session.AwaitingWorkoutDuration
		b.sessions.Touch(userID)
		b.editMessage(chatID, messageID, dialog.PromptWorkoutDuration(p.Type))

	case quick.TokenAction:
		switch tok.ID {
		case quick.ActionManualMeal:
			b.editMessage(chatID, messageID, dialog.PromptMealName)
		case quick.ActionCustomWorkout:
			b.editMessage(chatID, messageID, dialog.PromptWorkoutType)
		default:
			log.Printf("unknown action token %q", tok.ID)
		}
	}
}

// commitQuickEntry appends a shorthand-resolved entry.
func (b *Bot) commitQuickEntry(ctx context.Context, userID, chatID int64, messageID int, e quick.Entry) {
	switch {
	case e.Meal != nil:
		b.commitMeal(ctx, userID, chatID, messageID, *e.Meal)
	case e.Workout != nil:
		b.commitWorkout(ctx, userID, chatID, messageID, *e.Workout)
	case e.Weight != nil:
		b.commitWeight(ctx, userID, chatID, *e.Weight)
	}
}

func (b *Bot) commitMeal(ctx context.Context, userID, chatID int64, messageID int, m ledger.Meal) {
	var led ledger.Ledger
	err := b.store.Update(ctx, userID, func(l *ledger.Ledger) error {
		l.AddMeal(m)
		led = *l
		return nil
	})
	if err != nil {
		log.Printf("commit meal for %d: %v", userID, err)
		b.sendMessage(chatID, replyStorageFailed)
		return
	}
	text := formatMealLogged(m, led, b.now(), b.loc)
	if messageID != 0 {
		b.editMessage(chatID, messageID, text)
	} else {
		b.sendMessage(chatID, text)
	}
}

func (b *Bot) commitWorkout(ctx context.Context, userID, chatID int64, messageID int, w ledger.Workout) {
	var led ledger.Ledger
	err := b.store.Update(ctx, userID, func(l *ledger.Ledger) error {
		l.AddWorkout(w)
		led = *l
		return nil
	})
	if err != nil {
		log.Printf("commit workout for %d: %v", userID, err)
		b.sendMessage(chatID, replyStorageFailed)
		return
	}
	text := formatWorkoutLogged(w, led, b.now(), b.loc)
	if messageID != 0 {
		b.editMessage(chatID, messageID, text)
	} else {
		b.sendMessage(chatID, text)
	}
}

func (b *Bot) commitWeight(ctx context.Context, userID, chatID int64, w ledger.WeightEntry) {
	var prev ledger.WeightEntry
	var hasPrev bool
	err := b.store.Update(ctx, userID, func(l *ledger.Ledger) error {
		prev, hasPrev = l.LastWeight()
		l.AddWeight(w)
		return nil
	})
	if err != nil {
		log.Printf("commit weight for %d: %v", userID, err)
		b.sendMessage(chatID, replyStorageFailed)
		return
	}
	b.sendMessage(chatID, formatWeightLogged(w, prev, hasPrev))
}

func (b *Bot) sendDailySummary(ctx context.Context, userID, chatID int64) {
	led, err := b.store.Load(ctx, userID)
	if err != nil {
		log.Printf("load ledger for %d: %v", userID, err)
		b.sendMessage(chatID, replyStorageFailed)
		return
	}
	b.sendMessage(chatID, formatDaily(led, b.now(), b.loc))
}

func (b *Bot) sendWeeklySummary(ctx context.Context, userID, chatID int64) {
	led, err := b.store.Load(ctx, userID)
	if err != nil {
		log.Printf("load ledger for %d: %v", userID, err)
		b.sendMessage(chatID, replyStorageFailed)
		return
	}
	b.sendMessage(chatID, formatWeekly(led, b.now(), b.loc))
}

func (b *Bot) sendSettings(ctx context.Context, userID, chatID int64) {
	led, err := b.store.Load(ctx, userID)
	if err != nil {
		log.Printf("load ledger for %d: %v", userID, err)
		b.sendMessage(chatID, replyStorageFailed)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf(
		"⚙️ *Settings*\n\n"+
			"🎯 Calorie target: %d\n"+
			"💪 Protein target: %dg\n\n"+
			"To change:\n/setcalories 2000\n/setprotein 150",
		led.Settings.TargetCalories, led.Settings.TargetProtein))
}

func (b *Bot) setTarget(ctx context.Context, userID, chatID int64, args string, calories bool) {
	usage := "Usage: /setcalories 2000"
	if !calories {
		usage = "Usage: /setprotein 150"
	}
	fields := strings.Fields(args)
	if len(fields) != 1 {
		b.sendMessage(chatID, usage)
		return
	}
	target, err := strconv.Atoi(fields[0])
	if err != nil || target <= 0 {
		b.sendMessage(chatID, usage)
		return
	}
	err = b.store.Update(ctx, userID, func(l *ledger.Ledger) error {
		if calories {
			return l.SetTargetCalories(target)
		}
		return l.SetTargetProtein(target)
	})
	if err != nil {
		log.Printf("set target for %d: %v", userID, err)
		b.sendMessage(chatID, replyStorageFailed)
		return
	}
	if calories {
		b.sendMessage(chatID, fmt.Sprintf("✅ Calorie target: %d", target))
	} else {
		b.sendMessage(chatID, fmt.Sprintf("✅ Protein target: %dg", target))
	}
}
