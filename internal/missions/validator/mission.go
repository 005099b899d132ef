package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"festivol/pkg/logger"
	"festivol/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details flattens the errors into a field → message map for AppError details.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type MissionValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewMissionValidator(log *logger.Logger) *MissionValidator {
	v := validator.New()

	log.Info("Mission validator initialized successfully")

	return &MissionValidator{
		validate: v,
		logger:   log,
	}
}

func (v *MissionValidator) Validate(m *model.Mission) error {
	if err := v.validate.Struct(m); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	return validateWindowCoherence(m)
}

func (v *MissionValidator) ValidateUpdate(u *model.MissionUpdate) error {
	if err := v.validate.Struct(u); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// validateWindowCoherence enforces the type/window pairing: scheduled
// missions carry a complete, ordered window; ongoing missions carry none.
func validateWindowCoherence(m *model.Mission) error {
	var errs ValidationErrors

	switch m.Type {
	case model.MissionTypeScheduled:
		if m.StartTime == nil || m.EndTime == nil {
			errs = append(errs, ValidationError{
				Field:   "start_time",
				Message: "scheduled missions require both start_time and end_time",
			})
		} else if !m.EndTime.After(*m.StartTime) {
			errs = append(errs, ValidationError{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			})
		}
	case model.MissionTypeOngoing:
		if m.StartTime != nil || m.EndTime != nil {
			errs = append(errs, ValidationError{
				Field:   "type",
				Message: "ongoing missions cannot carry a time window",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be a valid E.164 phone number", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must use the %s format", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
