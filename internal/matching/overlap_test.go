package matching

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 7, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"touching boundaries", at(9, 0), at(11, 0), at(11, 0), at(13, 0), false},
		{"partial overlap", at(9, 0), at(11, 0), at(10, 0), at(12, 0), true},
		{"containment", at(9, 0), at(17, 0), at(10, 0), at(11, 0), true},
		{"identical windows", at(9, 0), at(11, 0), at(9, 0), at(11, 0), true},
		{"one minute overlap", at(9, 0), at(10, 1), at(10, 0), at(11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}

			// Symmetry must hold for every pair
			mirrored := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd)
			if mirrored != got {
				t.Errorf("Overlaps() not symmetric: %v vs %v", got, mirrored)
			}
		})
	}
}

func TestTimeSlotOf(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "night"},
		{5, "night"},
		{6, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{17, "afternoon"},
		{18, "evening"},
		{23, "evening"},
	}

	for _, tt := range tests {
		if got := TimeSlotOf(tt.hour); got != tt.want {
			t.Errorf("TimeSlotOf(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestDurationBucket(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0.5, "short"},
		{2.99, "short"},
		{3, "medium"},
		{4.5, "medium"},
		{6, "medium"},
		{6.01, "long"},
		{12, "long"},
	}

	for _, tt := range tests {
		if got := DurationBucket(tt.hours); got != tt.want {
			t.Errorf("DurationBucket(%v) = %s, want %s", tt.hours, got, tt.want)
		}
	}
}
