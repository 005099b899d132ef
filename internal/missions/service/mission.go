package service

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	missionerrors "festivol/internal/missions/errors"
	"festivol/internal/missions/repository"
	"festivol/internal/missions/validator"
	"festivol/internal/notify"
	"festivol/pkg/config"
	"festivol/pkg/logger"
	"festivol/pkg/model"
	"festivol/pkg/sanitizer"
)

// MissionService owns every mission mutation. Membership and status writes go
// through the versioned CAS path exclusively; there is no other writer.
type MissionService struct {
	repo      repository.MissionRepository
	validator *validator.MissionValidator
	notifier  notify.Notifier
	cfg       *config.Config
	log       *logger.Logger
}

func NewMissionService(cfg *config.Config, repo repository.MissionRepository, v *validator.MissionValidator, notifier notify.Notifier) *MissionService {
	return &MissionService{
		repo:      repo,
		validator: v,
		notifier:  notifier,
		cfg:       cfg,
		log:       cfg.Log,
	}
}

func (s *MissionService) Create(ctx context.Context, mission *model.Mission) (*model.Mission, error) {
	mission.Title = sanitizer.NormalizeTitle(mission.Title)
	mission.Category = sanitizer.NormalizeLabel(mission.Category)
	mission.Location = sanitizer.NormalizeLocation(mission.Location)

	if mission.Status == "" {
		mission.Status = model.StatusDraft
	}
	if mission.Volunteers == nil {
		mission.Volunteers = []string{}
	}

	if err := s.validator.Validate(mission); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, mission); err != nil {
		return nil, err
	}

	s.log.Info("Mission created",
		"mission_id", mission.ID,
		"title", mission.Title,
		"type", mission.Type,
		"max_volunteers", mission.MaxVolunteers,
	)
	return mission, nil
}

func (s *MissionService) GetByID(ctx context.Context, id string) (*model.Mission, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MissionService) List(ctx context.Context, limit int, offset int64) ([]*model.Mission, int64, error) {
	missions, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return missions, total, nil
}

func (s *MissionService) ListByVolunteer(ctx context.Context, volunteerID string) ([]*model.Mission, error) {
	return s.repo.FindByVolunteer(ctx, volunteerID)
}

// Update merges a partial edit. Shrinking capacity below the current
// membership is rejected; membership itself is untouchable here.
func (s *MissionService) Update(ctx context.Context, id string, update *model.MissionUpdate) (*model.Mission, error) {
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, err
	}

	return s.casMutate(ctx, id, func(m *model.Mission) (bson.M, error) {
		fields := bson.M{}

		if update.Title != "" {
			m.Title = sanitizer.NormalizeTitle(update.Title)
			fields["title"] = m.Title
		}
		if update.Description != nil {
			m.Description = sanitizer.TrimAndNormalize(*update.Description)
			fields["description"] = m.Description
		}
		if update.Category != "" {
			m.Category = sanitizer.NormalizeLabel(update.Category)
			fields["category"] = m.Category
		}
		if update.Location != nil {
			m.Location = sanitizer.NormalizeLocation(*update.Location)
			fields["location"] = m.Location
		}
		if update.Type != "" {
			m.Type = update.Type
			fields["type"] = m.Type
		}
		if update.StartTime != nil {
			m.StartTime = update.StartTime
			fields["start_time"] = m.StartTime
		}
		if update.EndTime != nil {
			m.EndTime = update.EndTime
			fields["end_time"] = m.EndTime
		}
		if update.MaxVolunteers != nil {
			if *update.MaxVolunteers < len(m.Volunteers) {
				return nil, missionerrors.ErrCapacityBelowMembers
			}
			m.MaxVolunteers = *update.MaxVolunteers
			fields["max_volunteers"] = m.MaxVolunteers

			// Growing or shrinking capacity can flip the full coupling.
			if status := deriveStatus(m.Status, len(m.Volunteers), m.MaxVolunteers); status != m.Status {
				m.Status = status
				fields["status"] = status
			}
		}
		if update.IsUrgent != nil {
			m.IsUrgent = *update.IsUrgent
			fields["is_urgent"] = m.IsUrgent
		}
		if update.IsRecurrent != nil {
			m.IsRecurrent = *update.IsRecurrent
			fields["is_recurrent"] = m.IsRecurrent
		}

		if err := s.validator.Validate(m); err != nil {
			return nil, err
		}
		return fields, nil
	})
}

func (s *MissionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Mission deleted", "mission_id", id)
	return nil
}

// RequestResponsible queues a coordinator request on the mission, or approves
// it immediately when autoApprove is set. The caller passes the config value
// explicitly so the policy is visible at the call site.
func (s *MissionService) RequestResponsible(ctx context.Context, missionID, volunteerID string, autoApprove bool) (*model.Mission, error) {
	return s.casMutate(ctx, missionID, func(m *model.Mission) (bson.M, error) {
		if err := checkMissionNotTerminal(m); err != nil {
			return nil, err
		}
		if slices.Contains(m.Responsibles, volunteerID) || slices.Contains(m.PendingResponsibles, volunteerID) {
			return nil, missionerrors.ErrAlreadyRegistered
		}

		if autoApprove {
			m.Responsibles = append(m.Responsibles, volunteerID)
			return bson.M{"responsibles": m.Responsibles}, nil
		}
		m.PendingResponsibles = append(m.PendingResponsibles, volunteerID)
		return bson.M{"pending_responsibles": m.PendingResponsibles}, nil
	})
}

func (s *MissionService) ApproveResponsible(ctx context.Context, missionID, volunteerID string) (*model.Mission, error) {
	return s.casMutate(ctx, missionID, func(m *model.Mission) (bson.M, error) {
		idx := slices.Index(m.PendingResponsibles, volunteerID)
		if idx < 0 {
			return nil, missionerrors.ErrNoPendingRequest
		}
		m.PendingResponsibles = slices.Delete(slices.Clone(m.PendingResponsibles), idx, idx+1)
		m.Responsibles = append(m.Responsibles, volunteerID)
		return bson.M{
			"pending_responsibles": m.PendingResponsibles,
			"responsibles":         m.Responsibles,
		}, nil
	})
}

func (s *MissionService) DeclineResponsible(ctx context.Context, missionID, volunteerID string) (*model.Mission, error) {
	return s.casMutate(ctx, missionID, func(m *model.Mission) (bson.M, error) {
		idx := slices.Index(m.PendingResponsibles, volunteerID)
		if idx < 0 {
			return nil, missionerrors.ErrNoPendingRequest
		}
		m.PendingResponsibles = slices.Delete(slices.Clone(m.PendingResponsibles), idx, idx+1)
		return bson.M{"pending_responsibles": m.PendingResponsibles}, nil
	})
}

// casMutate is the optimistic-concurrency loop every mission mutation runs
// through: read the current document, let mutate re-check its preconditions
// against that snapshot and apply the change in memory, then commit with a
// versioned write. A lost race re-reads and re-checks from scratch; the retry
// budget turns persistent contention into ErrContention.
func (s *MissionService) casMutate(ctx context.Context, missionID string, mutate func(m *model.Mission) (bson.M, error)) (*model.Mission, error) {
	for attempt := 0; attempt < s.cfg.MaxCASRetries; attempt++ {
		if attempt > 0 {
			backoff := s.cfg.RetryBackoffBase * (1 << (attempt - 1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

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
		if ok {
			mission.Version++
			mission.UpdatedAt = time.Now().UTC()
			return mission, nil
		}

		s.log.Debug("Versioned write lost the race, retrying",
			"mission_id", missionID,
			"attempt", attempt+1,
		)
	}

	s.log.Warn("Mission update exhausted retry budget",
		"mission_id", missionID,
		"max_retries", s.cfg.MaxCASRetries,
	)
	return nil, missionerrors.ErrContention
}

func checkMissionNotTerminal(m *model.Mission) error {
	switch m.Status {
	case model.StatusCancelled:
		return missionerrors.ErrMissionCancelled
	case model.StatusCompleted:
		return missionerrors.ErrMissionCompleted
	}
	return nil
}
