package validator

import (
	"testing"

	"festivol/pkg/model"
)

func validVolunteer() *model.Volunteer {
	return &model.Volunteer{
		FirstName: "Ana",
		LastName:  "Marin",
		Email:     "ana@example.org",
		Preferences: model.Preferences{
			AvailableDays: []string{"2026-07-10", "2026-07-11"},
			TimeSlots:     []string{model.SlotMorning, model.SlotEvening},
			Durations:     []string{model.DurationShort},
			Categories:    []string{"bar"},
		},
	}
}

func TestValidateVolunteer(t *testing.T) {
	v := NewVolunteerValidator(testLogger())

	if err := v.Validate(validVolunteer()); err != nil {
		t.Errorf("valid volunteer should pass: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(vol *model.Volunteer)
	}{
		{"missing email", func(vol *model.Volunteer) { vol.Email = "" }},
		{"malformed email", func(vol *model.Volunteer) { vol.Email = "not-an-email" }},
		{"bad day format", func(vol *model.Volunteer) { vol.Preferences.AvailableDays = []string{"10/07/2026"} }},
		{"unknown time slot", func(vol *model.Volunteer) { vol.Preferences.TimeSlots = []string{"noon"} }},
		{"unknown duration", func(vol *model.Volunteer) { vol.Preferences.Durations = []string{"forever"} }},
		{"bad phone", func(vol *model.Volunteer) { vol.Phone = "12345" }},
		{"bad slot day key", func(vol *model.Volunteer) {
			vol.Preferences.AvailableSlots = map[string][]string{"july 10": {model.SlotMorning}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vol := validVolunteer()
			tt.mutate(vol)
			if err := v.Validate(vol); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateVolunteerUpdate(t *testing.T) {
	v := NewVolunteerValidator(testLogger())

	if err := v.ValidateUpdate(&model.VolunteerUpdate{}); err != nil {
		t.Errorf("empty update should validate: %v", err)
	}

	if err := v.ValidateUpdate(&model.VolunteerUpdate{Email: "broken"}); err == nil {
		t.Error("malformed email should fail")
	}

	update := &model.VolunteerUpdate{
		Preferences: &model.Preferences{
			AvailableSlots: map[string][]string{"2026-07-10": {model.SlotNight}},
		},
	}
	if err := v.ValidateUpdate(update); err != nil {
		t.Errorf("well-formed slot map should pass: %v", err)
	}
}
