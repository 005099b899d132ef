package model

import (
	"slices"
	"time"
)

const (
	MissionTypeScheduled = "scheduled"
	MissionTypeOngoing   = "ongoing"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusFull      = "full"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Mission is a bookable unit of volunteer work. Membership is the volunteers
// set on the mission itself, so register/unregister is a single-document
// mutation guarded by the version field (optimistic concurrency).
type Mission struct {
	ID                  string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title               string     `json:"title" bson:"title" validate:"required,min=2,max=120"`
	Description         string     `json:"description,omitempty" bson:"description" validate:"omitempty,max=2000"`
	Category            string     `json:"category" bson:"category" validate:"required,min=2,max=60"`
	Location            string     `json:"location,omitempty" bson:"location" validate:"omitempty,max=200"`
	Type                string     `json:"type" bson:"type" validate:"required,oneof=scheduled ongoing"`
	StartTime           *time.Time `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime             *time.Time `json:"end_time,omitempty" bson:"end_time,omitempty"`
	MaxVolunteers       int        `json:"max_volunteers" bson:"max_volunteers" validate:"required,min=1,max=500"`
	Volunteers          []string   `json:"volunteers" bson:"volunteers"`
	Responsibles        []string   `json:"responsibles,omitempty" bson:"responsibles"`
	PendingResponsibles []string   `json:"pending_responsibles,omitempty" bson:"pending_responsibles"`
	IsUrgent            bool       `json:"is_urgent" bson:"is_urgent"`
	IsRecurrent         bool       `json:"is_recurrent" bson:"is_recurrent"`
	Status              string     `json:"status" bson:"status" validate:"required,oneof=draft published full cancelled completed"`
	Version             int64      `json:"-" bson:"version"`
	CreatedBy           string     `json:"created_by,omitempty" bson:"created_by" validate:"omitempty,mongodb"`
	CreatedAt           time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt           time.Time  `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// MissionUpdate carries a partial administrative edit. Membership and status
// are not updatable here; they only move through the registration engine and
// the explicit status operations.
type MissionUpdate struct {
	Title         string     `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	Description   *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category      string     `json:"category,omitempty" validate:"omitempty,min=2,max=60"`
	Location      *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	Type          string     `json:"type,omitempty" validate:"omitempty,oneof=scheduled ongoing"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	MaxVolunteers *int       `json:"max_volunteers,omitempty" validate:"omitempty,min=1,max=500"`
	IsUrgent      *bool      `json:"is_urgent,omitempty"`
	IsRecurrent   *bool      `json:"is_recurrent,omitempty"`
}

// HasWindow reports whether the mission carries a complete time window.
// Ongoing missions never do and are excluded from every overlap check.
func (m *Mission) HasWindow() bool {
	return m.StartTime != nil && m.EndTime != nil
}

func (m *Mission) IsAssigned(volunteerID string) bool {
	return slices.Contains(m.Volunteers, volunteerID)
}

// IsTerminal reports whether the mission reached a state no automatic
// transition may leave.
func (m *Mission) IsTerminal() bool {
	return m.Status == StatusCancelled || m.Status == StatusCompleted
}

func (m *Mission) IsFull() bool {
	return len(m.Volunteers) >= m.MaxVolunteers
}

// Duration returns the mission length, or zero for windowless missions.
func (m *Mission) Duration() time.Duration {
	if !m.HasWindow() {
		return 0
	}
	return m.EndTime.Sub(*m.StartTime)
}
