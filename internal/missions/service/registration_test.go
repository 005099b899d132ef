package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	missionerrors "festivol/internal/missions/errors"
	"festivol/pkg/model"
)

func publishedMission(id string, capacity int, volunteers ...string) *model.Mission {
	start := time.Now().Add(72 * time.Hour)
	end := start.Add(4 * time.Hour)
	status := model.StatusPublished
	if len(volunteers) >= capacity {
		status = model.StatusFull
	}
	return &model.Mission{
		ID:            id,
		Title:         "Bar du Lac",
		Category:      "bar",
		Type:          model.MissionTypeScheduled,
		StartTime:     &start,
		EndTime:       &end,
		MaxVolunteers: capacity,
		Volunteers:    volunteers,
		Status:        status,
	}
}

func TestRegister_Success(t *testing.T) {
	repo := newMockMissionRepository(publishedMission("m1", 3))
	svc := newTestService(repo, nil)

	mission, err := svc.Register(context.Background(), "m1", "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mission.IsAssigned("v1") {
		t.Error("volunteer should be in the membership")
	}
	if mission.Status != model.StatusPublished {
		t.Errorf("status = %s, want published", mission.Status)
	}
	if stored := repo.stored("m1"); !stored.IsAssigned("v1") {
		t.Error("membership not persisted")
	}
}

func TestRegister_FillsToCapacity(t *testing.T) {
	repo := newMockMissionRepository(publishedMission("m1", 1))
	svc := newTestService(repo, nil)

	mission, err := svc.Register(context.Background(), "m1", "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mission.Status != model.StatusFull {
		t.Errorf("status = %s, want full after reaching capacity", mission.Status)
	}
}

func TestRegister_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		mission *model.Mission
		wantErr error
	}{
		{
			name: "cancelled",
			mission: func() *model.Mission {
				m := publishedMission("m1", 3)
				m.Status = model.StatusCancelled
				return m
			}(),
			wantErr: missionerrors.ErrMissionCancelled,
		},
		{
			name: "completed",
			mission: func() *model.Mission {
				m := publishedMission("m1", 3)
				m.Status = model.StatusCompleted
				return m
			}(),
			wantErr: missionerrors.ErrMissionCompleted,
		},
		{
			name: "draft",
			mission: func() *model.Mission {
				m := publishedMission("m1", 3)
				m.Status = model.StatusDraft
				return m
			}(),
			wantErr: missionerrors.ErrMissionNotPublished,
		},
		{
			name:    "already registered",
			mission: publishedMission("m1", 3, "v1"),
			wantErr: missionerrors.ErrAlreadyRegistered,
		},
		{
			name:    "full",
			mission: publishedMission("m1", 1, "other"),
			wantErr: missionerrors.ErrMissionFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockMissionRepository(tt.mission)
			svc := newTestService(repo, nil)

			_, err := svc.Register(context.Background(), "m1", "v1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegister_NotFound(t *testing.T) {
	repo := newMockMissionRepository()
	svc := newTestService(repo, nil)

	_, err := svc.Register(context.Background(), "missing", "v1")
	if !errors.Is(err, missionerrors.ErrNotFound) {
		t.Errorf("Register() error = %v, want ErrNotFound", err)
	}
}

// Six volunteers race for three seats. Exactly three must win; the capacity
// invariant has to hold even though every attempt passed its pre-check
// against a stale snapshot at some point.
func TestRegister_ConcurrentCapacity(t *testing.T) {
	const capacity = 3
	const contenders = 6

	repo := newMockMissionRepository(publishedMission("m1", capacity))
	cfg := testConfig()
	cfg.MaxCASRetries = 20
	svc := newTestService(repo, cfg)

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), "m1", fmt.Sprintf("v%d", i))
		}(i)
	}
	wg.Wait()

	var wins, full int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, missionerrors.ErrMissionFull):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != capacity {
		t.Errorf("winners = %d, want %d", wins, capacity)
	}
	if full != contenders-capacity {
		t.Errorf("full rejections = %d, want %d", full, contenders-capacity)
	}

	stored := repo.stored("m1")
	if len(stored.Volunteers) != capacity {
		t.Errorf("membership size = %d, want %d", len(stored.Volunteers), capacity)
	}
	if stored.Status != model.StatusFull {
		t.Errorf("status = %s, want full", stored.Status)
	}
}

func TestRegister_ContentionExhausted(t *testing.T) {
	repo := newMockMissionRepository(publishedMission("m1", 3))
	repo.updateVersionedFunc = func(ctx context.Context, id string, version int64, fields bson.M) (bool, error) {
		return false, nil
	}
	svc := newTestService(repo, nil)

	_, err := svc.Register(context.Background(), "m1", "v1")
	if !errors.Is(err, missionerrors.ErrContention) {
		t.Errorf("Register() error = %v, want ErrContention", err)
	}
}

func TestUnregister_StatusCouplingRoundTrip(t *testing.T) {
	repo := newMockMissionRepository(publishedMission("m1", 2))
	svc := newTestService(repo, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "m1", "v1"); err != nil {
		t.Fatalf("register v1: %v", err)
	}
	mission, err := svc.Register(ctx, "m1", "v2")
	if err != nil {
		t.Fatalf("register v2: %v", err)
	}
	if mission.Status != model.StatusFull {
		t.Fatalf("status = %s, want full", mission.Status)
	}

	mission, err = svc.Unregister(ctx, "m1", "v1", false)
	if err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if mission.Status != model.StatusPublished {
		t.Errorf("status = %s, want published after a seat freed up", mission.Status)
	}
	if mission.IsAssigned("v1") || !mission.IsAssigned("v2") {
		t.Errorf("membership = %v, want only v2", mission.Volunteers)
	}
}

func TestUnregister_NotRegistered(t *testing.T) {
	repo := newMockMissionRepository(publishedMission("m1", 3))
	svc := newTestService(repo, nil)

	_, err := svc.Unregister(context.Background(), "m1", "v1", false)
	if !errors.Is(err, missionerrors.ErrNotRegistered) {
		t.Errorf("Unregister() error = %v, want ErrNotRegistered", err)
	}
}

func TestUnregister_CutoffWindow(t *testing.T) {
	tests := []struct {
		name       string
		startIn    time.Duration
		force      bool
		wantReject bool
	}{
		{"well before the cutoff", 25 * time.Hour, false, false},
		{"inside the cutoff", 23 * time.Hour, false, true},
		{"just inside", 24*time.Hour - time.Second, false, true},
		{"mission already started", -time.Hour, false, false},
		{"forced inside the cutoff", 23 * time.Hour, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := publishedMission("m1", 3, "v1")
			start := time.Now().Add(tt.startIn)
			end := start.Add(4 * time.Hour)
			m.StartTime, m.EndTime = &start, &end

			repo := newMockMissionRepository(m)
			svc := newTestService(repo, nil)

			_, err := svc.Unregister(context.Background(), "m1", "v1", tt.force)
			if tt.wantReject {
				if !errors.Is(err, missionerrors.ErrTooLateToCancel) {
					t.Errorf("Unregister() error = %v, want ErrTooLateToCancel", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUnregister_OngoingMissionHasNoCutoff(t *testing.T) {
	m := &model.Mission{
		ID:            "m1",
		Title:         "Accueil",
		Category:      "accueil",
		Type:          model.MissionTypeOngoing,
		MaxVolunteers: 5,
		Volunteers:    []string{"v1"},
		Status:        model.StatusPublished,
	}
	repo := newMockMissionRepository(m)
	svc := newTestService(repo, nil)

	if _, err := svc.Unregister(context.Background(), "m1", "v1", false); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
