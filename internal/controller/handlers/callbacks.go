package handlers

import (
	"bytes"
	"context"
	"strings"

	"github.com/Freeeeeet/appointment_service/internal/controller/formatting"
	"github.com/Freeeeeet/appointment_service/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCallbackQuery распределяет нажатия inline кнопок
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	h.logger.Debug("Routing callback",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case callback.Data == keyboard.Noop:
		h.answerCallback(ctx, b, callback.ID, "", false)
	case strings.HasPrefix(callback.Data, keyboard.SlotsDay):
		h.handleSlotsDay(ctx, b, callback)
	case strings.HasPrefix(callback.Data, keyboard.SlotsImage):
		h.handleSlotsImage(ctx, b, callback)
	default:
		h.logger.Warn("Unknown callback", zap.String("data", callback.Data))
		h.answerCallback(ctx, b, callback.ID, "❌ Неизвестная команда", true)
	}
}

// handleSlotsDay перерисовывает сообщение со слотами на другой день
func (h *Handlers) handleSlotsDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := callback.Message.Message
	if msg == nil {
		h.answerCallback(ctx, b, callback.ID, "❌ Сообщение недоступно", true)
		return
	}

	date, err := keyboard.ParseDate(callback.Data, keyboard.SlotsDay, h.location)
	if err != nil {
		h.logger.Error("Failed to parse slots callback", zap.String("data", callback.Data), zap.Error(err))
		h.answerCallback(ctx, b, callback.ID, "❌ Неверный формат", true)
		return
	}

	slots, err := h.appointmentService.Slots(ctx, date)
	if err != nil {
		h.logger.Error("Failed to get slots", zap.Time("date", date), zap.Error(err))
		h.answerCallback(ctx, b, callback.ID, "❌ Произошла ошибка", true)
		return
	}

	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        formatting.FormatSlots(date, slots),
		ReplyMarkup: keyboard.SlotsKeyboard(date),
	})
	if err != nil && !isMessageNotModified(err) {
		h.logger.Error("Failed to edit slots message", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}

	h.answerCallback(ctx, b, callback.ID, "", false)
}

// handleSlotsImage отправляет слоты дня картинкой
func (h *Handlers) handleSlotsImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := callback.Message.Message
	if msg == nil {
		h.answerCallback(ctx, b, callback.ID, "❌ Сообщение недоступно", true)
		return
	}

	date, err := keyboard.ParseDate(callback.Data, keyboard.SlotsImage, h.location)
	if err != nil {
		h.answerCallback(ctx, b, callback.ID, "❌ Неверный формат", true)
		return
	}

	slots, err := h.appointmentService.Slots(ctx, date)
	if err != nil {
		h.logger.Error("Failed to get slots", zap.Time("date", date), zap.Error(err))
		h.answerCallback(ctx, b, callback.ID, "❌ Произошла ошибка", true)
		return
	}

	imageData, err := formatting.RenderSlotsImage(date, slots, h.location)
	if err != nil {
		h.logger.Error("Failed to render slots image", zap.Time("date", date), zap.Error(err))
		h.answerCallback(ctx, b, callback.ID, "❌ Не удалось построить картинку", true)
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  msg.Chat.ID,
		Photo:   &models.InputFileUpload{Filename: "slots.png", Data: bytes.NewReader(imageData)},
		Caption: "🗓 " + formatting.FormatDateWithWeekday(date),
	})
	if err != nil {
		h.logger.Error("Failed to send slots image", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}

	h.answerCallback(ctx, b, callback.ID, "", false)
}

func (h *Handlers) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		h.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

// Telegram отвечает ошибкой, если текст и клавиатура не изменились
func isMessageNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
