package matching

import (
	"testing"
	"time"

	"festivol/pkg/model"
)

func missionAt(category string, start time.Time, hours int) *model.Mission {
	end := start.Add(time.Duration(hours) * time.Hour)
	return &model.Mission{
		ID:            "m",
		Category:      category,
		Type:          model.MissionTypeScheduled,
		StartTime:     &start,
		EndTime:       &end,
		MaxVolunteers: 5,
		Status:        model.StatusPublished,
	}
}

func TestMatchScore_AllSignals(t *testing.T) {
	// 09:00 start, 4h long: morning slot, medium duration.
	m := missionAt("bar", time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC), 4)
	v := &model.Volunteer{
		Preferences: model.Preferences{
			AvailableDays: []string{"2026-07-10"},
			Categories:    []string{"bar", "stage"},
			TimeSlots:     []string{"morning"},
			Durations:     []string{"medium"},
		},
	}

	if got := MatchScore(m, v); got != 7 {
		t.Errorf("MatchScore() = %d, want 7", got)
	}
	if !IsPreferenceMatch(m, v) {
		t.Error("expected preference match at full score")
	}
}

func TestMatchScore_NoPreferences(t *testing.T) {
	m := missionAt("bar", time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC), 4)
	v := &model.Volunteer{}

	if got := MatchScore(m, v); got != 0 {
		t.Errorf("MatchScore() = %d, want 0 for empty preferences", got)
	}
	if IsPreferenceMatch(m, v) {
		t.Error("empty preferences must not match")
	}
}

func TestMatchScore_Monotonic(t *testing.T) {
	// Adding preference dimensions must never lower the score.
	m := missionAt("bar", time.Date(2026, 7, 10, 19, 30, 0, 0, time.UTC), 2)

	v := &model.Volunteer{}
	prev := MatchScore(m, v)

	v.Preferences.Categories = []string{"bar"}
	if got := MatchScore(m, v); got < prev {
		t.Fatalf("score decreased after adding category: %d < %d", got, prev)
	} else {
		prev = got
	}

	v.Preferences.TimeSlots = []string{"evening"}
	if got := MatchScore(m, v); got < prev {
		t.Fatalf("score decreased after adding time slot: %d < %d", got, prev)
	} else {
		prev = got
	}

	v.Preferences.Durations = []string{"short"}
	if got := MatchScore(m, v); got < prev {
		t.Fatalf("score decreased after adding duration: %d < %d", got, prev)
	} else {
		prev = got
	}

	v.Preferences.AvailableDays = []string{"2026-07-10"}
	if got := MatchScore(m, v); got < prev {
		t.Fatalf("score decreased after adding day: %d < %d", got, prev)
	}
}

func TestMatchScore_Deterministic(t *testing.T) {
	m := missionAt("stage", time.Date(2026, 7, 11, 14, 0, 0, 0, time.UTC), 7)
	v := &model.Volunteer{
		Preferences: model.Preferences{
			Categories: []string{"stage"},
			TimeSlots:  []string{"afternoon"},
			Durations:  []string{"long"},
		},
	}

	first := MatchScore(m, v)
	for i := 0; i < 10; i++ {
		if got := MatchScore(m, v); got != first {
			t.Fatalf("score changed between calls: %d vs %d", got, first)
		}
	}
	if first != 4 {
		t.Errorf("MatchScore() = %d, want 4 (category + slot + duration)", first)
	}
}

func TestMatchScore_OngoingMissionOnlyCategory(t *testing.T) {
	m := &model.Mission{
		ID:            "o",
		Category:      "logistics",
		Type:          model.MissionTypeOngoing,
		MaxVolunteers: 3,
		Status:        model.StatusPublished,
	}
	v := &model.Volunteer{
		Preferences: model.Preferences{
			AvailableDays: []string{"2026-07-10"},
			Categories:    []string{"logistics"},
			TimeSlots:     []string{"morning"},
			Durations:     []string{"short"},
		},
	}

	// Without a window only the category signal can fire.
	if got := MatchScore(m, v); got != 2 {
		t.Errorf("MatchScore() = %d, want 2", got)
	}
}
