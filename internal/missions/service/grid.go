package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"festivol/internal/matching"
	missionerrors "festivol/internal/missions/errors"
	"festivol/internal/saga"
	"festivol/pkg/model"
)

// ToggleResult reports which way a toggle landed.
type ToggleResult struct {
	Mission    *model.Mission `json:"mission"`
	Registered bool           `json:"registered"`
}

// Toggle flips a volunteer's assignment on a mission from the admin grid.
// Unassigning bypasses the cutoff; assigning runs the conflict pre-check
// against the volunteer's current missions.
func (s *MissionService) Toggle(ctx context.Context, missionID, volunteerID string) (*ToggleResult, error) {
	candidate, err := s.repo.FindByID(ctx, missionID)
	if err != nil {
		return nil, err
	}

	if candidate.IsAssigned(volunteerID) {
		mission, err := s.Unregister(ctx, missionID, volunteerID, true)
		if err != nil {
			return nil, err
		}
		return &ToggleResult{Mission: mission, Registered: false}, nil
	}

	workingSet, err := s.repo.FindByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if conflict := matching.FindConflict(candidate, volunteerID, workingSet); conflict != nil {
		return nil, fmt.Errorf("%w: mission %s", missionerrors.ErrScheduleConflict, conflict.ID)
	}

	// Futile-write avoidance only; the commit-time check inside Register
	// still decides under contention.
	if candidate.IsFull() {
		return nil, missionerrors.ErrMissionFull
	}

	mission, err := s.Register(ctx, missionID, volunteerID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Mission: mission, Registered: true}, nil
}

// Move relocates a volunteer from one mission to another. With transactions
// enabled both halves commit atomically; otherwise a saga unregisters from
// the source, registers on the target, and re-registers on the source if the
// target half fails. A failed compensation surfaces as ErrPartialMove.
func (s *MissionService) Move(ctx context.Context, sourceID, targetID, volunteerID string) (*model.Mission, error) {
	source, err := s.repo.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if !source.IsAssigned(volunteerID) {
		return nil, missionerrors.ErrNotRegistered
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.IsAssigned(volunteerID) {
		return nil, missionerrors.ErrAlreadyRegistered
	}

	// Conflict check against the volunteer's missions minus the source: the
	// source slot is being vacated, so an overlap with it must not block the
	// relocation.
	workingSet, err := s.repo.FindByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	remaining := make([]*model.Mission, 0, len(workingSet))
	for _, m := range workingSet {
		if m.ID != sourceID {
			remaining = append(remaining, m)
		}
	}
	if conflict := matching.FindConflict(target, volunteerID, remaining); conflict != nil {
		return nil, fmt.Errorf("%w: mission %s", missionerrors.ErrScheduleConflict, conflict.ID)
	}

	if s.cfg.MoveTransactions {
		err = s.moveTransactional(ctx, sourceID, targetID, volunteerID)
	} else {
		err = s.moveSaga(ctx, sourceID, targetID, volunteerID)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Volunteer moved",
		"source_mission_id", sourceID,
		"target_mission_id", targetID,
		"volunteer_id", volunteerID,
	)
	s.notifier.AssignmentMoved(sourceID, targetID, volunteerID)

	return s.repo.FindByID(ctx, targetID)
}

func (s *MissionService) moveTransactional(ctx context.Context, sourceID, targetID, volunteerID string) error {
	return s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.casMutateOnce(sessCtx, sourceID, unregisterMutation(volunteerID, true, 0)); err != nil {
			return err
		}
		if _, err := s.casMutateOnce(sessCtx, targetID, registerMutation(volunteerID)); err != nil {
			return err
		}
		return nil
	})
}

func (s *MissionService) moveSaga(ctx context.Context, sourceID, targetID, volunteerID string) error {
	sg := saga.New("move-assignment", s.log).
		AddStep(saga.Step{
			Name: "unregister-source",
			Execute: func(ctx context.Context) error {
				_, err := s.casMutate(ctx, sourceID, unregisterMutation(volunteerID, true, 0))
				return err
			},
			Compensate: func(ctx context.Context) error {
				_, err := s.casMutate(ctx, sourceID, registerMutation(volunteerID))
				return err
			},
		}).
		AddStep(saga.Step{
			Name: "register-target",
			Execute: func(ctx context.Context) error {
				_, err := s.casMutate(ctx, targetID, registerMutation(volunteerID))
				return err
			},
		})

	err := sg.Run(ctx)
	var compErr *saga.CompensationError
	if errors.As(err, &compErr) {
		s.log.Error("Move compensation failed, volunteer detached from both missions",
			"source_mission_id", sourceID,
			"target_mission_id", targetID,
			"volunteer_id", volunteerID,
			"register_error", compErr.ExecuteErr,
			"compensate_error", compErr.CompensateErr,
		)
		return &missionerrors.PartialMoveError{
			SourceID:      sourceID,
			TargetID:      targetID,
			RegisterErr:   compErr.ExecuteErr,
			CompensateErr: compErr.CompensateErr,
		}
	}
	return err
}
