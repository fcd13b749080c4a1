package formatting

import "github.com/Freeeeeet/appointment_service/internal/model"

// StatusDisplay - emoji и текст статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetAppointmentStatusDisplay возвращает emoji и текст для статуса записи
func GetAppointmentStatusDisplay(status model.AppointmentStatus) StatusDisplay {
	displays := map[model.AppointmentStatus]StatusDisplay{
		model.AppointmentStatusScheduled: {"✅", "Запланирована"},
		model.AppointmentStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetSlotDisplay возвращает emoji и текст для слота
func GetSlotDisplay(slot model.TimeSlot) StatusDisplay {
	if slot.Available {
		return StatusDisplay{"🟢", "Свободен"}
	}
	return StatusDisplay{"🔴", slot.Title}
}
