// Package telegram exposes the planner, grocery list and recipe import
// over a Telegram webhook bot.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"studentfuel/internal/app"
	"studentfuel/internal/config"
	"studentfuel/internal/domain"
	"studentfuel/internal/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the application service.
type Bot struct {
	api          *tgbotapi.BotAPI
	app          *app.App
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App, metricsStore *metrics.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          api,
		app:          application,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/metrics":
		b.handleMetricsRequest(msg)
	case text == "/grocery":
		b.handleGroceryRequest(msg)
	case text == "/plan" || strings.EqualFold(text, "plan"):
		b.handlePlanRequest(msg)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClipRequest(msg)
	default:
		// Anything else is treated as a recipe to normalize.
		b.handleNormalizeRequest(msg)
	}
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message) {
	sentMsg := b.reply(msg.Chat.ID, "🧑‍🍳 *Thinking...* \n(Generating your weekly plan)")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := b.app.GeneratePlan(ctx); err != nil {
		log.Printf("Error generating plan: %v", err)
		b.edit(msg.Chat.ID, sentMsg, fmt.Sprintf("❌ *Error generating plan:*\n```\n%v\n```", sanitize(err)))
		return
	}

	b.edit(msg.Chat.ID, sentMsg, b.formatPlan())
}

func (b *Bot) handleGroceryRequest(msg *tgbotapi.Message) {
	list, err := b.app.RegenerateGroceries()
	if err != nil {
		b.reply(msg.Chat.ID, fmt.Sprintf("❌ *Error building grocery list:*\n```\n%v\n```", sanitize(err)))
		return
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Grocery List*\n\n")
	if len(list) == 0 {
		sb.WriteString("_Nothing needed — the pantry covers the plan._\n")
	}
	symbol := domain.CurrencySymbol(b.app.State().Settings.Currency)
	for _, g := range list {
		sb.WriteString(fmt.Sprintf("• %s — %.2g %s (%s %s%.2f)\n",
			g.Name, g.QuantityRequired, g.Unit, g.PackageFormat, symbol, g.PackagePrice))
	}
	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) handleClipRequest(msg *tgbotapi.Message) {
	sentMsg := b.reply(msg.Chat.ID, "✂️ *Clipping recipe...* \n(Extracting and adding to your library)")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rec, err := b.app.ClipRecipe(ctx, msg.Text)
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		b.edit(msg.Chat.ID, sentMsg, fmt.Sprintf("❌ *Error clipping recipe:*\n```\n%v\n```", sanitize(err)))
		return
	}

	b.edit(msg.Chat.ID, sentMsg, fmt.Sprintf("✅ *Recipe Saved!*\n\n*Name:* %s\n*Meal:* %s", rec.Name, rec.MealType.Label()))
}

func (b *Bot) handleNormalizeRequest(msg *tgbotapi.Message) {
	sentMsg := b.reply(msg.Chat.ID, "📝 *Parsing recipe...*")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rec, err := b.app.AddRecipeFromText(ctx, msg.Text)
	if err != nil {
		log.Printf("Error normalizing recipe: %v", err)
		b.edit(msg.Chat.ID, sentMsg, fmt.Sprintf("❌ *Error parsing recipe:*\n```\n%v\n```", sanitize(err)))
		return
	}

	b.edit(msg.Chat.ID, sentMsg, fmt.Sprintf("✅ *Recipe Saved!*\n\n*Name:* %s\n*Meal:* %s\n*Total Time:* %d mins",
		rec.Name, rec.MealType.Label(), rec.TotalTime))
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.reply(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.reply(msg.Chat.ID, "❌ Error fetching metrics.")
		return
	}

	health := metrics.GetSysHealth(b.cfg.DataDir)

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) formatPlan() string {
	state := b.app.State()

	var sb strings.Builder
	sb.WriteString("📅 *Weekly Meal Plan*\n\n")
	for _, day := range state.MealPlan {
		sb.WriteString(fmt.Sprintf("*%s*\n", day.Day))
		for _, mt := range state.Settings.SelectedMealTypes {
			id, bound := day.Slots[mt]
			if !bound {
				continue
			}
			if rec := b.app.FindRecipe(id); rec != nil {
				sb.WriteString(fmt.Sprintf("  %s: %s (%d mins)\n", mt.Label(), rec.Name, rec.TotalTime))
			}
		}
	}
	return sb.String()
}

func (b *Bot) reply(chatID int64, text string) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send reply: %v", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	if messageID == 0 {
		b.reply(chatID, text)
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func sanitize(err error) string {
	return strings.ReplaceAll(err.Error(), "`", "'")
}
