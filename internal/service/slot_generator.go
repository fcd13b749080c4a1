package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/repository"
)

// SlotConfig задаёт рабочее окно дня и длину слота
type SlotConfig struct {
	Location   *time.Location
	StartHour  int
	EndHour    int
	SlotLength time.Duration
}

// DefaultSlotConfig - часовые слоты с 08:00 до 18:00
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		Location:   time.Local,
		StartHour:  8,
		EndHour:    18,
		SlotLength: time.Hour,
	}
}

func (c SlotConfig) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// DayBounds возвращает полночь календарной даты date в c.Location и следующую полночь.
// Учитывается только год, месяц и день date.
func (c SlotConfig) DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, c.location())
	return start, start.AddDate(0, 0, 1)
}

// GenerateSlots строит слоты рабочего окна для даты day. Слот недоступен, если его
// пересекает неотменённая запись из booked; тогда он несёт её название и статус.
func GenerateSlots(day time.Time, booked []*model.Appointment, cfg SlotConfig) []model.TimeSlot {
	slots := make([]model.TimeSlot, 0)
	if cfg.SlotLength <= 0 || cfg.EndHour <= cfg.StartHour {
		return slots
	}

	y, m, d := day.Date()
	loc := cfg.location()
	windowEnd := time.Date(y, m, d, cfg.EndHour, 0, 0, 0, loc)

	for start := time.Date(y, m, d, cfg.StartHour, 0, 0, 0, loc); ; start = start.Add(cfg.SlotLength) {
		end := start.Add(cfg.SlotLength)
		if end.After(windowEnd) {
			break
		}

		slot := model.TimeSlot{
			StartTime: start,
			EndTime:   end,
			Available: true,
			Title:     model.SlotTitleAvailable,
			Status:    model.SlotStatusAvailable,
		}

		for _, a := range booked {
			if a.IsActive() && a.Overlaps(start, end) {
				slot.Available = false
				slot.Title = a.Title
				slot.Status = string(a.Status)
				break
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

type SlotGenerator struct {
	appointments repository.AppointmentStore
	cfg          SlotConfig
}

func NewSlotGenerator(appointments repository.AppointmentStore, cfg SlotConfig) *SlotGenerator {
	return &SlotGenerator{
		appointments: appointments,
		cfg:          cfg,
	}
}

// Config возвращает настройки генератора
func (g *SlotGenerator) Config() SlotConfig {
	return g.cfg
}

// SlotsForDate загружает записи дня и строит по ним слоты
func (g *SlotGenerator) SlotsForDate(ctx context.Context, date time.Time) ([]model.TimeSlot, error) {
	dayStart, dayEnd := g.cfg.DayBounds(date)

	booked, err := g.appointments.FindByDay(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("find appointments by day: %w", err)
	}

	return GenerateSlots(dayStart, booked, g.cfg), nil
}
