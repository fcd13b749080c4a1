package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestFormatSlots(t *testing.T) {
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	slots := []model.TimeSlot{
		{StartTime: day.Add(8 * time.Hour), EndTime: day.Add(9 * time.Hour), Available: true, Title: model.SlotTitleAvailable},
		{StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour), Title: "Dentist", Status: "SCHEDULED"},
	}

	got := FormatSlots(day, slots)

	assert.Contains(t, got, "01.01.2024 (Понедельник)")
	assert.Contains(t, got, "🟢 08:00-09:00 Свободен")
	assert.Contains(t, got, "🔴 09:00-10:00 Dentist")
	assert.Contains(t, got, "Свободно: 1 из 2")
}

func TestFormatUpcoming(t *testing.T) {
	assert.Equal(t, "📭 Предстоящих записей нет", FormatUpcoming(nil, time.UTC, 10))

	start := time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)
	list := []*model.Appointment{
		{ID: 1, Title: "One", StartTime: start, EndTime: start.Add(time.Hour)},
		{ID: 2, Title: "Two", StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour)},
		{ID: 3, Title: "Three", StartTime: start.Add(4 * time.Hour), EndTime: start.Add(5 * time.Hour)},
	}

	got := FormatUpcoming(list, time.FixedZone("MSK", 3*3600), 2)
	assert.Contains(t, got, "Предстоящие записи (3)")
	assert.Contains(t, got, "#1 05.03.2024 17:00-18:00")
	assert.NotContains(t, got, "Three")
	assert.Contains(t, got, "и ещё 1")
}

func TestFormatStats(t *testing.T) {
	got := FormatStats(&service.AppointmentStats{Total: 5, Scheduled: 3, Cancelled: 2, Upcoming: 1})
	assert.Contains(t, got, "Всего: 5")
	assert.Contains(t, got, "✅ Запланирована: 3")
	assert.Contains(t, got, "❌ Отменена: 2")
	assert.Contains(t, got, "Предстоящие: 1")
}

func TestGetAppointmentStatusDisplay(t *testing.T) {
	assert.Equal(t, "✅", GetAppointmentStatusDisplay(model.AppointmentStatusScheduled).Emoji)
	assert.Equal(t, "❓", GetAppointmentStatusDisplay("DONE").Emoji)
}
