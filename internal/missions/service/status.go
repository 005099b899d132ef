package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	missionerrors "festivol/internal/missions/errors"
	"festivol/pkg/model"
)

// deriveStatus applies the automatic published/full coupling. Every other
// status only moves through the explicit admin transitions below.
func deriveStatus(current string, members, capacity int) string {
	switch current {
	case model.StatusPublished:
		if members >= capacity {
			return model.StatusFull
		}
	case model.StatusFull:
		if members < capacity {
			return model.StatusPublished
		}
	}
	return current
}

// Publish opens a mission for registration. Leaving cancelled this way is
// allowed: terminal states yield to explicit admin action only.
func (s *MissionService) Publish(ctx context.Context, id string) (*model.Mission, error) {
	return s.casMutate(ctx, id, func(m *model.Mission) (bson.M, error) {
		switch m.Status {
		case model.StatusPublished, model.StatusFull:
			return bson.M{}, nil
		case model.StatusCompleted:
			return nil, missionerrors.ErrMissionCompleted
		}

		m.Status = deriveStatus(model.StatusPublished, len(m.Volunteers), m.MaxVolunteers)
		return bson.M{"status": m.Status}, nil
	})
}

func (s *MissionService) Cancel(ctx context.Context, id string) (*model.Mission, error) {
	mission, err := s.casMutate(ctx, id, func(m *model.Mission) (bson.M, error) {
		switch m.Status {
		case model.StatusCancelled:
			return nil, missionerrors.ErrMissionCancelled
		case model.StatusCompleted:
			return nil, missionerrors.ErrMissionCompleted
		}

		m.Status = model.StatusCancelled
		return bson.M{"status": m.Status}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Mission cancelled",
		"mission_id", mission.ID,
		"volunteers_affected", len(mission.Volunteers),
	)
	s.notifier.MissionCancelled(mission)
	return mission, nil
}

func (s *MissionService) Complete(ctx context.Context, id string) (*model.Mission, error) {
	return s.casMutate(ctx, id, func(m *model.Mission) (bson.M, error) {
		switch m.Status {
		case model.StatusDraft:
			return nil, missionerrors.ErrMissionNotPublished
		case model.StatusCancelled:
			return nil, missionerrors.ErrMissionCancelled
		case model.StatusCompleted:
			return nil, missionerrors.ErrMissionCompleted
		}

		m.Status = model.StatusCompleted
		return bson.M{"status": m.Status}, nil
	})
}
