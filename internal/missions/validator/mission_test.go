package validator

import (
	"io"
	"testing"
	"time"

	"festivol/pkg/logger"
	"festivol/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
}

func scheduledMission(start, end *time.Time) *model.Mission {
	return &model.Mission{
		Title:         "Bar du Lac",
		Category:      "bar",
		Type:          model.MissionTypeScheduled,
		StartTime:     start,
		EndTime:       end,
		MaxVolunteers: 5,
		Status:        model.StatusDraft,
	}
}

func TestValidate_ScheduledMission(t *testing.T) {
	v := NewMissionValidator(testLogger())
	start := time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	tests := []struct {
		name    string
		mission *model.Mission
		wantErr bool
	}{
		{"complete window", scheduledMission(&start, &end), false},
		{"missing end", scheduledMission(&start, nil), true},
		{"missing both", scheduledMission(nil, nil), true},
		{"inverted window", scheduledMission(&end, &start), true},
		{"zero-length window", scheduledMission(&start, &start), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.mission)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_OngoingMissionRejectsWindow(t *testing.T) {
	v := NewMissionValidator(testLogger())
	start := time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC)

	m := scheduledMission(nil, nil)
	m.Type = model.MissionTypeOngoing
	if err := v.Validate(m); err != nil {
		t.Errorf("windowless ongoing mission should validate: %v", err)
	}

	m.StartTime = &start
	if err := v.Validate(m); err == nil {
		t.Error("ongoing mission with a start time should fail")
	}
}

func TestValidate_FieldRules(t *testing.T) {
	v := NewMissionValidator(testLogger())

	m := scheduledMission(nil, nil)
	m.Type = model.MissionTypeOngoing
	m.Title = "x"
	if err := v.Validate(m); err == nil {
		t.Error("one-character title should fail")
	}

	m.Title = "Accueil"
	m.Status = "archived"
	if err := v.Validate(m); err == nil {
		t.Error("unknown status should fail")
	}

	m.Status = model.StatusDraft
	m.MaxVolunteers = 0
	if err := v.Validate(m); err == nil {
		t.Error("zero capacity should fail")
	}
}

func TestValidateUpdate(t *testing.T) {
	v := NewMissionValidator(testLogger())

	if err := v.ValidateUpdate(&model.MissionUpdate{}); err != nil {
		t.Errorf("empty update should validate: %v", err)
	}

	bad := 600
	if err := v.ValidateUpdate(&model.MissionUpdate{MaxVolunteers: &bad}); err == nil {
		t.Error("capacity above the ceiling should fail")
	}

	if err := v.ValidateUpdate(&model.MissionUpdate{Type: "weekly"}); err == nil {
		t.Error("unknown type should fail")
	}
}

func TestValidationErrors_Details(t *testing.T) {
	v := NewMissionValidator(testLogger())

	m := scheduledMission(nil, nil)
	m.Type = model.MissionTypeOngoing
	m.Title = ""
	m.Category = ""
	err := v.Validate(m)
	if err == nil {
		t.Fatal("expected validation errors")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error type = %T, want ValidationErrors", err)
	}
	details := vErrs.Details()
	if len(details) < 2 {
		t.Errorf("details = %v, want entries for title and category", details)
	}
}
