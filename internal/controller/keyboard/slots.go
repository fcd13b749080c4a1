package keyboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
)

const dateLayout = "2006-01-02"

// Callback data для навигации по слотам
const (
	SlotsDay   = "slots_day:"   // slots_day:2024-01-31
	SlotsImage = "slots_image:" // slots_image:2024-01-31
)

// SlotsDayData кодирует дату в callback перехода на день
func SlotsDayData(date time.Time) string {
	return SlotsDay + date.Format(dateLayout)
}

// SlotsImageData кодирует дату в callback картинки дня
func SlotsImageData(date time.Time) string {
	return SlotsImage + date.Format(dateLayout)
}

// ParseDate достаёт дату из callback data вида "prefix:YYYY-MM-DD"
func ParseDate(data, prefix string, loc *time.Location) (time.Time, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return time.Time{}, fmt.Errorf("callback %q has no prefix %q", data, prefix)
	}

	date, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse callback date %q: %w", raw, err)
	}
	return date, nil
}

// DayPagination - ряд ◀️ дата ▶️ для перехода между днями
func DayPagination(date time.Time) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️", SlotsDayData(date.AddDate(0, 0, -1))),
		Button("📅 "+date.Format("02.01"), Noop),
		Button("▶️", SlotsDayData(date.AddDate(0, 0, 1))),
	}
}

// SlotsKeyboard - клавиатура под сообщением со слотами
func SlotsKeyboard(date time.Time) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(DayPagination(date)...).
		Row(Button("🖼 Картинкой", SlotsImageData(date))).
		Build()
}
