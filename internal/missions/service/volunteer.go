package service

import (
	"context"
	"slices"

	"festivol/internal/matching"
	"festivol/internal/missions/repository"
	"festivol/internal/missions/validator"
	"festivol/pkg/config"
	"festivol/pkg/logger"
	"festivol/pkg/model"
	"festivol/pkg/sanitizer"
)

// MissionMatch pairs a mission with its advisory preference score.
type MissionMatch struct {
	Mission *model.Mission `json:"mission"`
	Score   int            `json:"score"`
	IsMatch bool           `json:"is_match"`
}

type VolunteerService struct {
	repo        repository.VolunteerRepository
	missionRepo repository.MissionRepository
	validator   *validator.VolunteerValidator
	cfg         *config.Config
	log         *logger.Logger
}

func NewVolunteerService(cfg *config.Config, repo repository.VolunteerRepository, missionRepo repository.MissionRepository, v *validator.VolunteerValidator) *VolunteerService {
	return &VolunteerService{
		repo:        repo,
		missionRepo: missionRepo,
		validator:   v,
		cfg:         cfg,
		log:         cfg.Log,
	}
}

func (s *VolunteerService) Create(ctx context.Context, volunteer *model.Volunteer) (*model.Volunteer, error) {
	sanitizeVolunteer(volunteer)

	if err := s.validator.Validate(volunteer); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, volunteer); err != nil {
		return nil, err
	}

	s.log.Info("Volunteer created", "volunteer_id", volunteer.ID)
	return volunteer, nil
}

func (s *VolunteerService) GetByID(ctx context.Context, id string) (*model.Volunteer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VolunteerService) List(ctx context.Context, limit int, offset int64) ([]*model.Volunteer, int64, error) {
	volunteers, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return volunteers, total, nil
}

func (s *VolunteerService) Update(ctx context.Context, id string, update *model.VolunteerUpdate) (*model.Volunteer, error) {
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, err
	}

	volunteer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != "" {
		volunteer.FirstName = sanitizer.NormalizeName(update.FirstName)
	}
	if update.LastName != "" {
		volunteer.LastName = sanitizer.NormalizeName(update.LastName)
	}
	if update.Email != "" {
		volunteer.Email = update.Email
	}
	if update.Phone != nil {
		volunteer.Phone = *update.Phone
	}
	if update.Preferences != nil {
		volunteer.Preferences = *update.Preferences
		sanitizePreferences(&volunteer.Preferences)
	}

	if err := s.repo.Update(ctx, id, volunteer); err != nil {
		return nil, err
	}

	s.log.Info("Volunteer updated", "volunteer_id", id)
	return volunteer, nil
}

// MatchMissions scores every open mission against the volunteer's declared
// preferences. The scores are advisory; nothing here blocks registration.
func (s *VolunteerService) MatchMissions(ctx context.Context, volunteerID string) ([]MissionMatch, error) {
	volunteer, err := s.repo.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	missions, err := s.missionRepo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]MissionMatch, 0, len(missions))
	for _, m := range missions {
		score := matching.MatchScore(m, volunteer)
		matches = append(matches, MissionMatch{
			Mission: m,
			Score:   score,
			IsMatch: score >= matching.MatchThreshold,
		})
	}

	slices.SortStableFunc(matches, func(a, b MissionMatch) int {
		return b.Score - a.Score
	})
	return matches, nil
}

func sanitizeVolunteer(v *model.Volunteer) {
	v.FirstName = sanitizer.NormalizeName(v.FirstName)
	v.LastName = sanitizer.NormalizeName(v.LastName)
	v.Email = sanitizer.TrimAndNormalize(v.Email)
	sanitizePreferences(&v.Preferences)
}

func sanitizePreferences(p *model.Preferences) {
	p.Categories = sanitizer.NormalizeLabels(p.Categories)
	p.Skills = sanitizer.NormalizeLabels(p.Skills)
}
