package model

import "time"

const (
	SlotTitleAvailable  = "Available"
	SlotStatusAvailable = "AVAILABLE"
)

// TimeSlot - вычисляемое окно доступности на день, в БД не хранится
type TimeSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
}
