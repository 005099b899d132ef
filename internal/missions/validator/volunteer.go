package validator

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"festivol/pkg/logger"
	"festivol/pkg/model"
)

type VolunteerValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewVolunteerValidator(log *logger.Logger) *VolunteerValidator {
	v := validator.New()

	log.Info("Volunteer validator initialized successfully")

	return &VolunteerValidator{
		validate: v,
		logger:   log,
	}
}

func (v *VolunteerValidator) Validate(vol *model.Volunteer) error {
	if err := v.validate.Struct(vol); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	return validateSlotDays(&vol.Preferences)
}

func (v *VolunteerValidator) ValidateUpdate(u *model.VolunteerUpdate) error {
	if err := v.validate.Struct(u); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if u.Preferences != nil {
		return validateSlotDays(u.Preferences)
	}
	return nil
}

// validateSlotDays checks the map keys of AvailableSlots, which struct tags
// cannot reach.
func validateSlotDays(p *model.Preferences) error {
	var errs ValidationErrors

	for day := range p.AvailableSlots {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			errs = append(errs, ValidationError{
				Field:   "available_slots",
				Message: "day keys must use the 2006-01-02 format",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
