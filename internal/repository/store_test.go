package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockDays(t *testing.T) {
	at := func(day, hour int) time.Time {
		return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       []int64
	}{
		{"same day", at(10, 9), at(10, 10), []int64{20240310}},
		{"ends at midnight", at(10, 23), at(11, 0), []int64{20240310}},
		{"crosses midnight", at(10, 23), at(11, 1), []int64{20240310, 20240311}},
		{"three days", at(10, 12), at(12, 12), []int64{20240310, 20240311, 20240312}},
		{"empty interval still locks its day", at(10, 9), at(10, 9), []int64{20240310}},
		{
			"non-utc input is normalized",
			time.Date(2024, time.March, 11, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			time.Date(2024, time.March, 11, 2, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			[]int64{20240310},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LockDays(tt.start, tt.end))
		})
	}
}
