package handlers

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// upcomingLimit - сколько записей показывать в /upcoming
const upcomingLimit = 20

// ParseSlotsDate разбирает аргумент /slots [YYYY-MM-DD]. Без аргумента - сегодня в loc.
func ParseSlotsDate(text string, now time.Time, loc *time.Location) (time.Time, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}

	date, err := time.ParseInLocation(dateLayout, fields[1], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", fields[1], err)
	}
	return date, nil
}
