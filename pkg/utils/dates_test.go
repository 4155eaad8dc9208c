package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"mid month", d(2026, time.March, 15), 3, d(2026, time.June, 15)},
		{"year rollover", d(2026, time.November, 10), 3, d(2027, time.February, 10)},
		{"jan 31 clamps to feb 28", d(2026, time.January, 31), 1, d(2026, time.February, 28)},
		{"jan 31 clamps to feb 29 leap", d(2028, time.January, 31), 1, d(2028, time.February, 29)},
		{"mar 31 clamps to apr 30", d(2026, time.March, 31), 1, d(2026, time.April, 30)},
		{"clamp does not stick", d(2026, time.January, 31), 2, d(2026, time.March, 31)},
		{"twelve months", d(2026, time.May, 1), 12, d(2027, time.May, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.months))
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{
			"disjoint",
			d(2026, time.March, 1), d(2026, time.April, 1),
			d(2026, time.May, 1), d(2026, time.June, 1),
			false,
		},
		{
			"contained",
			d(2026, time.March, 1), d(2026, time.June, 1),
			d(2026, time.April, 1), d(2026, time.May, 1),
			true,
		},
		{
			"partial",
			d(2026, time.March, 1), d(2026, time.May, 1),
			d(2026, time.April, 1), d(2026, time.June, 1),
			true,
		},
		{
			"touching boundary counts",
			d(2026, time.March, 1), d(2026, time.April, 1),
			d(2026, time.April, 1), d(2026, time.May, 1),
			true,
		},
		{
			"adjacent days do not touch",
			d(2026, time.March, 1), d(2026, time.April, 1),
			d(2026, time.April, 2), d(2026, time.May, 1),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, time.March, 15, 18, 45, 12, 999, time.FixedZone("PKT", 5*3600))
	got := DateOnly(in)
	assert.Equal(t, d(2026, time.March, 15), got)
}
