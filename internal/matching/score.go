package matching

import (
	"slices"

	"festivol/pkg/model"
)

// Score weights per preference signal. Signals are independent and additive;
// each contributes only when both the mission attribute and the matching
// volunteer preference are present. Maximum total is 7.
const (
	scoreDay      = 3
	scoreCategory = 2
	scoreTimeSlot = 1
	scoreDuration = 1

	// MatchThreshold is the minimum score at which a mission is highlighted
	// as a preference match. Advisory only; never gates a registration.
	MatchThreshold = 2
)

// MatchScore rates how well a mission fits the volunteer's declared
// preferences. Read-only and deterministic.
func MatchScore(m *model.Mission, v *model.Volunteer) int {
	score := 0
	prefs := v.Preferences

	if m.StartTime != nil && len(prefs.AvailableDays) > 0 {
		day := m.StartTime.Format("2006-01-02")
		if slices.Contains(prefs.AvailableDays, day) {
			score += scoreDay
		}
	}

	if m.Category != "" && slices.Contains(prefs.Categories, m.Category) {
		score += scoreCategory
	}

	if m.StartTime != nil && len(prefs.TimeSlots) > 0 {
		if slices.Contains(prefs.TimeSlots, TimeSlotOf(m.StartTime.Hour())) {
			score += scoreTimeSlot
		}
	}

	if m.HasWindow() && len(prefs.Durations) > 0 {
		hours := m.Duration().Hours()
		if slices.Contains(prefs.Durations, DurationBucket(hours)) {
			score += scoreDuration
		}
	}

	return score
}

// IsPreferenceMatch reports whether the mission clears the advisory
// highlighting threshold for the volunteer.
func IsPreferenceMatch(m *model.Mission, v *model.Volunteer) bool {
	return MatchScore(m, v) >= MatchThreshold
}
