package model

import "time"

const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
	SlotNight     = "night"
)

const (
	DurationShort  = "short"
	DurationMedium = "medium"
	DurationLong   = "long"
)

// Preferences are self-declared and strictly advisory: they feed the match
// score and nothing else. Days use the YYYY-MM-DD form.
type Preferences struct {
	AvailableDays  []string            `json:"available_days,omitempty" bson:"available_days" validate:"omitempty,dive,datetime=2006-01-02"`
	AvailableSlots map[string][]string `json:"available_slots,omitempty" bson:"available_slots" validate:"omitempty,dive,dive,oneof=morning afternoon evening night"`
	Categories     []string            `json:"categories,omitempty" bson:"categories" validate:"omitempty,dive,min=2,max=60"`
	TimeSlots      []string            `json:"time_slots,omitempty" bson:"time_slots" validate:"omitempty,dive,oneof=morning afternoon evening night"`
	Durations      []string            `json:"durations,omitempty" bson:"durations" validate:"omitempty,dive,oneof=short medium long"`
	HasCar         bool                `json:"has_car" bson:"has_car"`
	PreFestival    bool                `json:"pre_festival" bson:"pre_festival"`
	Skills         []string            `json:"skills,omitempty" bson:"skills" validate:"omitempty,dive,min=1,max=80"`
}

type Volunteer struct {
	ID          string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FirstName   string      `json:"first_name" bson:"first_name" validate:"required,min=1,max=80"`
	LastName    string      `json:"last_name" bson:"last_name" validate:"required,min=1,max=80"`
	Email       string      `json:"email" bson:"email" validate:"required,email"`
	Phone       string      `json:"phone,omitempty" bson:"phone" validate:"omitempty,e164"`
	Preferences Preferences `json:"preferences" bson:"preferences"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// VolunteerUpdate is a partial edit of contact details and preferences.
type VolunteerUpdate struct {
	FirstName   string       `json:"first_name,omitempty" validate:"omitempty,min=1,max=80"`
	LastName    string       `json:"last_name,omitempty" validate:"omitempty,min=1,max=80"`
	Email       string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string      `json:"phone,omitempty" validate:"omitempty,e164"`
	Preferences *Preferences `json:"preferences,omitempty"`
}
