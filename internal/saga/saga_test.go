package saga

import (
	"context"
	"errors"
	"io"
	"testing"

	"festivol/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
}

func TestRun_AllStepsSucceed(t *testing.T) {
	var order []string
	sg := New("happy", testLogger()).
		AddStep(Step{
			Name:       "first",
			Execute:    func(ctx context.Context) error { order = append(order, "first"); return nil },
			Compensate: func(ctx context.Context) error { order = append(order, "undo-first"); return nil },
		}).
		AddStep(Step{
			Name:    "second",
			Execute: func(ctx context.Context) error { order = append(order, "second"); return nil },
		})

	if err := sg.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("execution order = %v", order)
	}
}

func TestRun_FailureCompensatesInReverseOrder(t *testing.T) {
	boom := errors.New("boom")
	var order []string
	sg := New("rollback", testLogger()).
		AddStep(Step{
			Name:       "a",
			Execute:    func(ctx context.Context) error { order = append(order, "a"); return nil },
			Compensate: func(ctx context.Context) error { order = append(order, "undo-a"); return nil },
		}).
		AddStep(Step{
			Name:       "b",
			Execute:    func(ctx context.Context) error { order = append(order, "b"); return nil },
			Compensate: func(ctx context.Context) error { order = append(order, "undo-b"); return nil },
		}).
		AddStep(Step{
			Name:    "c",
			Execute: func(ctx context.Context) error { return boom },
		})

	err := sg.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want the execute error", err)
	}

	want := []string{"a", "b", "undo-b", "undo-a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRun_NilCompensateIsSkipped(t *testing.T) {
	boom := errors.New("boom")
	compensated := false
	sg := New("partial", testLogger()).
		AddStep(Step{
			Name:    "no-undo",
			Execute: func(ctx context.Context) error { return nil },
		}).
		AddStep(Step{
			Name:       "with-undo",
			Execute:    func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error { compensated = true; return nil },
		}).
		AddStep(Step{
			Name:    "fails",
			Execute: func(ctx context.Context) error { return boom },
		})

	if err := sg.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want the execute error", err)
	}
	if !compensated {
		t.Error("non-nil compensation should have run")
	}
}

func TestRun_CompensationFailure(t *testing.T) {
	execErr := errors.New("exec failed")
	compErr := errors.New("undo failed")
	sg := New("broken", testLogger()).
		AddStep(Step{
			Name:       "first",
			Execute:    func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error { return compErr },
		}).
		AddStep(Step{
			Name:    "second",
			Execute: func(ctx context.Context) error { return execErr },
		})

	err := sg.Run(context.Background())

	var ce *CompensationError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want CompensationError", err)
	}
	if ce.StepName != "second" {
		t.Errorf("StepName = %s, want second", ce.StepName)
	}
	if !errors.Is(ce.ExecuteErr, execErr) || !errors.Is(ce.CompensateErr, compErr) {
		t.Errorf("causes = %v / %v", ce.ExecuteErr, ce.CompensateErr)
	}
	if !errors.Is(err, execErr) {
		t.Error("CompensationError should unwrap to the execute error")
	}
}
