package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/appointment_service/internal/controller/formatting"
	"github.com/Freeeeeet/appointment_service/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := "гость"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Здесь можно посмотреть свободное время для записи.\n\n"+
			"Доступные команды:\n"+
			"/slots - Слоты на сегодня\n"+
			"/slots 2024-01-31 - Слоты на дату\n"+
			"/help - Справка",
		name,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	cfg := h.appointmentService.SlotConfig()
	helpText := fmt.Sprintf(
		"📚 Справка по командам:\n\n"+
			"/slots [ГГГГ-ММ-ДД] - Свободные и занятые слоты на дату\n"+
			"/help - Показать эту справку\n\n"+
			"Для администраторов:\n"+
			"/upcoming - Предстоящие записи\n"+
			"/stats - Статистика\n\n"+
			"Рабочее время: %02d:00-%02d:00, слот %d мин",
		cfg.StartHour, cfg.EndHour, int(cfg.SlotLength.Minutes()),
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleSlots обрабатывает команду /slots [YYYY-MM-DD]
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	date, err := ParseSlotsDate(update.Message.Text, h.now(), h.location)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверная дата. Формат: /slots 2024-01-31")
		return
	}

	slots, err := h.appointmentService.Slots(ctx, date)
	if err != nil {
		h.logger.Error("Failed to get slots", zap.Time("date", date), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	h.sendMessageWithKeyboard(ctx, b, chatID, formatting.FormatSlots(date, slots), keyboard.SlotsKeyboard(date))
}

// HandleUpcoming обрабатывает команду /upcoming (только админы)
func (h *Handlers) HandleUpcoming(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	appointments, err := h.appointmentService.Upcoming(ctx, h.now())
	if err != nil {
		h.logger.Error("Failed to get upcoming appointments", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.FormatUpcoming(appointments, h.location, upcomingLimit))
}

// HandleStats обрабатывает команду /stats (только админы)
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	stats, err := h.appointmentService.Stats(ctx)
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.FormatStats(stats))
}
