package matching

import (
	"time"

	"festivol/pkg/model"
)

// Overlaps is the half-open interval intersection test used everywhere a time
// conflict matters. Touching windows (a ends exactly when b starts) do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// TimeSlotOf maps an hour of day to a slot label: [6,12) morning,
// [12,18) afternoon, [18,24) evening, [0,6) night.
func TimeSlotOf(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return model.SlotMorning
	case hour >= 12 && hour < 18:
		return model.SlotAfternoon
	case hour >= 18 && hour < 24:
		return model.SlotEvening
	default:
		return model.SlotNight
	}
}

// DurationBucket maps a mission length in hours to a duration label:
// under 3h short, 3h to 6h inclusive medium, over 6h long.
func DurationBucket(hours float64) string {
	switch {
	case hours < 3:
		return model.DurationShort
	case hours <= 6:
		return model.DurationMedium
	default:
		return model.DurationLong
	}
}
