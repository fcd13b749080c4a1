package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/service"
)

// FormatSlots строит сообщение со слотами дня
func FormatSlots(date time.Time, slots []model.TimeSlot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 Слоты на %s\n\n", FormatDateWithWeekday(date))

	if len(slots) == 0 {
		sb.WriteString("Нет слотов в рабочем окне")
		return sb.String()
	}

	free := 0
	for _, slot := range slots {
		display := GetSlotDisplay(slot)
		fmt.Fprintf(&sb, "%s %s %s\n", display.Emoji, FormatTimeRange(slot.StartTime, slot.EndTime), display.Text)
		if slot.Available {
			free++
		}
	}

	fmt.Fprintf(&sb, "\nСвободно: %d из %d", free, len(slots))
	return sb.String()
}

// FormatUpcoming строит список предстоящих записей во времени loc
func FormatUpcoming(appointments []*model.Appointment, loc *time.Location, limit int) string {
	if len(appointments) == 0 {
		return "📭 Предстоящих записей нет"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Предстоящие записи (%d):\n\n", len(appointments))

	for i, a := range appointments {
		if limit > 0 && i == limit {
			fmt.Fprintf(&sb, "… и ещё %d", len(appointments)-limit)
			break
		}
		start, end := a.StartTime.In(loc), a.EndTime.In(loc)
		fmt.Fprintf(&sb, "#%d %s %s\n%s\n\n", a.ID, FormatDate(start), FormatTimeRange(start, end), a.Title)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatStats строит сводку по записям
func FormatStats(stats *service.AppointmentStats) string {
	scheduled := GetAppointmentStatusDisplay(model.AppointmentStatusScheduled)
	cancelled := GetAppointmentStatusDisplay(model.AppointmentStatusCancelled)

	return fmt.Sprintf(
		"📊 Статистика записей\n\n"+
			"Всего: %d\n"+
			"%s %s: %d\n"+
			"%s %s: %d\n"+
			"⏭ Предстоящие: %d",
		stats.Total,
		scheduled.Emoji, scheduled.Text, stats.Scheduled,
		cancelled.Emoji, cancelled.Text, stats.Cancelled,
		stats.Upcoming,
	)
}
