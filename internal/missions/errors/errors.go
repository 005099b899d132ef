// Package errors defines the mission domain error taxonomy. Services return
// these sentinels; handlers translate them into AppErrors with stable codes
// through ToAppError.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"festivol/internal/missions/validator"
	apperrors "festivol/pkg/errors"
)

var (
	ErrNotFound  = errors.New("mission not found")
	ErrInvalidID = errors.New("invalid mission ID format")

	// Status preconditions. None of these are retryable without an explicit
	// admin status change first.
	ErrMissionCancelled    = errors.New("mission is cancelled")
	ErrMissionCompleted    = errors.New("mission is completed")
	ErrMissionNotPublished = errors.New("mission is not published")

	// Membership preconditions. A double submit is reported, not absorbed.
	ErrAlreadyRegistered = errors.New("volunteer already registered on mission")
	ErrNotRegistered     = errors.New("volunteer not registered on mission")

	// ErrMissionFull is the normal way the capacity invariant surfaces under
	// contention: the commit-time check failed even if a pre-check passed.
	ErrMissionFull = errors.New("mission is at capacity")

	ErrTooLateToCancel = errors.New("too late to cancel registration")

	ErrScheduleConflict = errors.New("assignment overlaps an existing mission")

	// ErrContention means the optimistic-concurrency retry budget ran out.
	// Transient; the whole operation may be retried.
	ErrContention = errors.New("mission update contention")

	// ErrPartialMove means the second half of a relocation failed after the
	// first half committed and compensation did not restore the source. The
	// volunteer is attached to neither mission.
	ErrPartialMove = errors.New("move partially applied")

	ErrCapacityBelowMembers = errors.New("capacity below current volunteer count")

	ErrVolunteerNotFound = errors.New("volunteer not found")
	ErrNoPendingRequest  = errors.New("no pending coordinator request")
)

// Domain codes layered onto pkg/errors generic ones.
const (
	CodeMissionCancelled    = "MISSION_CANCELLED"
	CodeMissionCompleted    = "MISSION_COMPLETED"
	CodeMissionNotPublished = "MISSION_NOT_PUBLISHED"
	CodeAlreadyRegistered   = "ALREADY_REGISTERED"
	CodeNotRegistered       = "NOT_REGISTERED"
	CodeMissionFull         = "MISSION_FULL"
	CodeTooLateToCancel     = "TOO_LATE_TO_CANCEL"
	CodeScheduleConflict    = "SCHEDULE_CONFLICT"
	CodeContention          = "CONTENTION"
	CodePartialMove         = "PARTIAL_MOVE_FAILURE"
	CodeCapacityBelow       = "CAPACITY_BELOW_MEMBERS"
)

// ToAppError maps a domain error onto the boundary error shape. Unrecognized
// errors pass through AsAppError and end up as internal errors.
func ToAppError(err error) *apperrors.AppError {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return apperrors.Validation("Validation failed", vErrs.Details())
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return apperrors.NotFound("Mission")
	case errors.Is(err, ErrVolunteerNotFound):
		return apperrors.NotFound("Volunteer")
	case errors.Is(err, ErrInvalidID):
		return apperrors.InvalidInput("Invalid mission ID format")
	case errors.Is(err, ErrMissionCancelled):
		return apperrors.ConflictWithCode(CodeMissionCancelled, "Mission has been cancelled")
	case errors.Is(err, ErrMissionCompleted):
		return apperrors.ConflictWithCode(CodeMissionCompleted, "Mission has been completed")
	case errors.Is(err, ErrMissionNotPublished):
		return apperrors.ConflictWithCode(CodeMissionNotPublished, "Mission is not open for registration")
	case errors.Is(err, ErrAlreadyRegistered):
		return apperrors.ConflictWithCode(CodeAlreadyRegistered, "Volunteer is already registered on this mission")
	case errors.Is(err, ErrNotRegistered):
		return apperrors.ConflictWithCode(CodeNotRegistered, "Volunteer is not registered on this mission")
	case errors.Is(err, ErrMissionFull):
		return apperrors.ConflictWithCode(CodeMissionFull, "Mission is at capacity")
	case errors.Is(err, ErrTooLateToCancel):
		appErr := apperrors.ConflictWithCode(CodeTooLateToCancel, "Registration can no longer be cancelled this close to the start")
		var tooLate *TooLateError
		if errors.As(err, &tooLate) {
			appErr = appErr.WithDetails(map[string]any{
				"remaining_hours": fmt.Sprintf("%.1f", tooLate.Remaining.Hours()),
			})
		}
		return appErr
	case errors.Is(err, ErrScheduleConflict):
		return apperrors.ConflictWithCode(CodeScheduleConflict, "Assignment overlaps one of the volunteer's missions")
	case errors.Is(err, ErrContention):
		return apperrors.New(CodeContention, "Mission is being updated concurrently, please retry", http.StatusServiceUnavailable)
	case errors.Is(err, ErrPartialMove):
		appErr := apperrors.New(CodePartialMove, "Relocation partially applied, volunteer needs reassignment", http.StatusInternalServerError)
		var pm *PartialMoveError
		if errors.As(err, &pm) {
			appErr = appErr.WithDetails(map[string]any{
				"source_mission_id": pm.SourceID,
				"target_mission_id": pm.TargetID,
			})
		}
		return appErr
	case errors.Is(err, ErrCapacityBelowMembers):
		return apperrors.ConflictWithCode(CodeCapacityBelow, "Capacity cannot drop below the current volunteer count")
	case errors.Is(err, ErrNoPendingRequest):
		return apperrors.ConflictWithCode(apperrors.CodeConflict, "No pending coordinator request for this volunteer")
	default:
		return apperrors.AsAppError(err)
	}
}

// TooLateError carries how much time remains before the mission starts.
// errors.Is(err, ErrTooLateToCancel) holds for it.
type TooLateError struct {
	Remaining time.Duration
}

func (e *TooLateError) Error() string {
	return fmt.Sprintf("too late to cancel registration: mission starts in %s", e.Remaining)
}

func (e *TooLateError) Is(target error) bool {
	return target == ErrTooLateToCancel
}

// PartialMoveError records both halves of a failed relocation so the caller
// can reconcile. errors.Is(err, ErrPartialMove) holds for it.
type PartialMoveError struct {
	SourceID      string
	TargetID      string
	RegisterErr   error
	CompensateErr error
}

func (e *PartialMoveError) Error() string {
	return fmt.Sprintf("move partially applied: register on %s failed (%v), re-register on %s failed (%v)",
		e.TargetID, e.RegisterErr, e.SourceID, e.CompensateErr)
}

func (e *PartialMoveError) Is(target error) bool {
	return target == ErrPartialMove
}
