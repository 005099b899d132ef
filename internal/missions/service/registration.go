package service

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	missionerrors "festivol/internal/missions/errors"
	"festivol/pkg/model"
)

// Register signs a volunteer up for a mission. Every precondition is
// re-checked against the snapshot inside each CAS attempt, so the capacity
// invariant holds no matter how many writers race.
func (s *MissionService) Register(ctx context.Context, missionID, volunteerID string) (*model.Mission, error) {
	mission, err := s.casMutate(ctx, missionID, registerMutation(volunteerID))
	if err != nil {
		return nil, err
	}

	s.log.Info("Volunteer registered",
		"mission_id", missionID,
		"volunteer_id", volunteerID,
		"members", len(mission.Volunteers),
		"status", mission.Status,
	)
	s.notifier.RegistrationConfirmed(missionID, volunteerID, mission)
	return mission, nil
}

// Unregister removes a volunteer from a mission. force bypasses the cutoff
// window; only the admin grid passes it.
func (s *MissionService) Unregister(ctx context.Context, missionID, volunteerID string, force bool) (*model.Mission, error) {
	mission, err := s.casMutate(ctx, missionID, unregisterMutation(volunteerID, force, s.cfg.CancelCutoff))
	if err != nil {
		return nil, err
	}

	s.log.Info("Volunteer unregistered",
		"mission_id", missionID,
		"volunteer_id", volunteerID,
		"members", len(mission.Volunteers),
		"status", mission.Status,
		"forced", force,
	)
	s.notifier.RegistrationCancelled(missionID, volunteerID)
	return mission, nil
}

// registerMutation checks the registration preconditions in their reporting
// order and appends the volunteer. The status coupling rides along in the
// same write.
func registerMutation(volunteerID string) func(m *model.Mission) (bson.M, error) {
	return func(m *model.Mission) (bson.M, error) {
		switch m.Status {
		case model.StatusCancelled:
			return nil, missionerrors.ErrMissionCancelled
		case model.StatusCompleted:
			return nil, missionerrors.ErrMissionCompleted
		case model.StatusDraft:
			return nil, missionerrors.ErrMissionNotPublished
		}
		if m.IsAssigned(volunteerID) {
			return nil, missionerrors.ErrAlreadyRegistered
		}
		if m.IsFull() {
			return nil, missionerrors.ErrMissionFull
		}

		m.Volunteers = append(slices.Clone(m.Volunteers), volunteerID)
		m.Status = deriveStatus(m.Status, len(m.Volunteers), m.MaxVolunteers)
		return bson.M{"volunteers": m.Volunteers, "status": m.Status}, nil
	}
}

func unregisterMutation(volunteerID string, force bool, cutoff time.Duration) func(m *model.Mission) (bson.M, error) {
	return func(m *model.Mission) (bson.M, error) {
		idx := slices.Index(m.Volunteers, volunteerID)
		if idx < 0 {
			return nil, missionerrors.ErrNotRegistered
		}

		// The cutoff only bites inside the window before start: a mission
		// already underway can still be left, and windowless missions have
		// no cutoff at all.
		if !force && m.StartTime != nil {
			if remaining := time.Until(*m.StartTime); remaining > 0 && remaining < cutoff {
				return nil, &missionerrors.TooLateError{Remaining: remaining}
			}
		}

		m.Volunteers = slices.Delete(slices.Clone(m.Volunteers), idx, idx+1)
		m.Status = deriveStatus(m.Status, len(m.Volunteers), m.MaxVolunteers)
		return bson.M{"volunteers": m.Volunteers, "status": m.Status}, nil
	}
}

// casMutateOnce is the single-attempt variant used inside transactions, where
// the outer transaction machinery owns retries and sleeping with the session
// held would only widen the conflict window.
func (s *MissionService) casMutateOnce(ctx context.Context, missionID string, mutate func(m *model.Mission) (bson.M, error)) (*model.Mission, error) {
	mission, err := s.repo.FindByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	fields, err := mutate(mission)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return mission, nil
	}

	ok, err := s.repo.UpdateVersioned(ctx, missionID, mission.Version, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, missionerrors.ErrContention
	}

	mission.Version++
	return mission, nil
}
