package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	missionerrors "festivol/internal/missions/errors"
	"festivol/internal/missions/validator"
	"festivol/internal/notify"
	"festivol/pkg/config"
	mongotx "festivol/pkg/db/mongo"
	"festivol/pkg/logger"
	"festivol/pkg/model"
)

// mockMissionRepository keeps missions in memory behind a mutex so the
// versioned-write semantics match the real store under concurrent tests.
// Any func field overrides the default behavior.
type mockMissionRepository struct {
	mu       sync.Mutex
	missions map[string]*model.Mission

	findByIDFunc        func(ctx context.Context, id string) (*model.Mission, error)
	findByVolunteerFunc func(ctx context.Context, volunteerID string) ([]*model.Mission, error)
	updateVersionedFunc func(ctx context.Context, id string, version int64, fields bson.M) (bool, error)
}

func newMockMissionRepository(missions ...*model.Mission) *mockMissionRepository {
	repo := &mockMissionRepository{missions: make(map[string]*model.Mission)}
	for _, m := range missions {
		if m.Version == 0 {
			m.Version = 1
		}
		repo.missions[m.ID] = m
	}
	return repo
}

func cloneMission(m *model.Mission) *model.Mission {
	c := *m
	c.Volunteers = slices.Clone(m.Volunteers)
	c.Responsibles = slices.Clone(m.Responsibles)
	c.PendingResponsibles = slices.Clone(m.PendingResponsibles)
	return &c
}

func (r *mockMissionRepository) Create(ctx context.Context, mission *model.Mission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	mission.Version = 1
	r.missions[mission.ID] = cloneMission(mission)
	return nil
}

func (r *mockMissionRepository) FindByID(ctx context.Context, id string) (*model.Mission, error) {
	if r.findByIDFunc != nil {
		return r.findByIDFunc(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.missions[id]
	if !ok {
		return nil, missionerrors.ErrNotFound
	}
	return cloneMission(m), nil
}

func (r *mockMissionRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Mission
	for _, m := range r.missions {
		out = append(out, cloneMission(m))
	}
	return out, nil
}

func (r *mockMissionRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.missions)), nil
}

func (r *mockMissionRepository) FindByVolunteer(ctx context.Context, volunteerID string) ([]*model.Mission, error) {
	if r.findByVolunteerFunc != nil {
		return r.findByVolunteerFunc(ctx, volunteerID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Mission
	for _, m := range r.missions {
		if m.IsAssigned(volunteerID) {
			out = append(out, cloneMission(m))
		}
	}
	return out, nil
}

func (r *mockMissionRepository) FindOpen(ctx context.Context) ([]*model.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Mission
	for _, m := range r.missions {
		if m.Status == model.StatusPublished || m.Status == model.StatusFull {
			out = append(out, cloneMission(m))
		}
	}
	return out, nil
}

func (r *mockMissionRepository) UpdateVersioned(ctx context.Context, id string, version int64, fields bson.M) (bool, error) {
	if r.updateVersionedFunc != nil {
		return r.updateVersionedFunc(ctx, id, version, fields)
	}
	return r.applyVersioned(id, version, fields), nil
}

// applyVersioned is the default versioned-write behavior, callable from
// custom updateVersionedFunc overrides that only intercept some writes.
func (r *mockMissionRepository) applyVersioned(id string, version int64, fields bson.M) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.missions[id]
	if !ok || m.Version != version {
		return false
	}
	applyFields(m, fields)
	m.Version++
	m.UpdatedAt = time.Now()
	return true
}

func applyFields(m *model.Mission, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "title":
			m.Title = v.(string)
		case "description":
			m.Description = v.(string)
		case "category":
			m.Category = v.(string)
		case "location":
			m.Location = v.(string)
		case "type":
			m.Type = v.(string)
		case "start_time":
			m.StartTime = v.(*time.Time)
		case "end_time":
			m.EndTime = v.(*time.Time)
		case "max_volunteers":
			m.MaxVolunteers = v.(int)
		case "volunteers":
			m.Volunteers = slices.Clone(v.([]string))
		case "responsibles":
			m.Responsibles = slices.Clone(v.([]string))
		case "pending_responsibles":
			m.PendingResponsibles = slices.Clone(v.([]string))
		case "is_urgent":
			m.IsUrgent = v.(bool)
		case "is_recurrent":
			m.IsRecurrent = v.(bool)
		case "status":
			m.Status = v.(string)
		}
	}
}

func (r *mockMissionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.missions[id]; !ok {
		return missionerrors.ErrNotFound
	}
	delete(r.missions, id)
	return nil
}

func (r *mockMissionRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	panic("transactions are not supported by the mock, run the saga path")
}

// stored returns the current state of a mission in the backing map.
func (r *mockMissionRepository) stored(id string) *model.Mission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneMission(r.missions[id])
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
}

func testConfig() *config.Config {
	return &config.Config{
		CancelCutoff:     24 * time.Hour,
		MaxCASRetries:    5,
		RetryBackoffBase: time.Millisecond,
		MoveTransactions: false,
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     5 * time.Second,
		Log:              testLogger(),
	}
}

func newTestService(repo *mockMissionRepository, cfg *config.Config) *MissionService {
	if cfg == nil {
		cfg = testConfig()
	}
	return NewMissionService(cfg, repo, validator.NewMissionValidator(cfg.Log), notify.NopNotifier{})
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// oid builds a deterministic valid object id for tests whose code path runs
// full struct validation.
func oid(last byte) string {
	return fmt.Sprintf("%022x%02x", 0, last)
}
