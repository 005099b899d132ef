// Package saga runs multi-step operations with compensation. A step that
// fails triggers the compensations of every step that already completed, in
// reverse order. Used for cross-document writes when transactions are
// disabled.
package saga

import (
	"context"
	"fmt"

	"festivol/pkg/logger"
)

// Step is one unit of work. Compensate undoes Execute; it may be nil for
// steps that need no undo.
type Step struct {
	Name       string
	Execute    func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// CompensationError reports that a rollback itself failed, leaving the system
// in a state that needs manual or caller-driven reconciliation.
type CompensationError struct {
	StepName      string
	ExecuteErr    error
	CompensateErr error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("saga step %q failed (%v) and compensation also failed: %v",
		e.StepName, e.ExecuteErr, e.CompensateErr)
}

func (e *CompensationError) Unwrap() error {
	return e.ExecuteErr
}

type Saga struct {
	name  string
	steps []Step
	log   *logger.Logger
}

func New(name string, log *logger.Logger) *Saga {
	return &Saga{name: name, log: log}
}

func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Run executes the steps in order. On failure it compensates completed steps
// in reverse order and returns the original error, or a CompensationError if
// any compensation fails.
func (s *Saga) Run(ctx context.Context) error {
	var completed []Step

	for _, step := range s.steps {
		if err := step.Execute(ctx); err != nil {
			s.log.Warn("Saga step failed, compensating",
				"saga", s.name,
				"step", step.Name,
				"completed_steps", len(completed),
				"error", err,
			)
			return s.compensate(ctx, completed, step.Name, err)
		}
		completed = append(completed, step)
	}

	return nil
}

func (s *Saga) compensate(ctx context.Context, completed []Step, failedStep string, execErr error) error {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.log.Error("Saga compensation failed",
				"saga", s.name,
				"failed_step", failedStep,
				"compensating_step", step.Name,
				"error", err,
			)
			return &CompensationError{
				StepName:      failedStep,
				ExecuteErr:    execErr,
				CompensateErr: err,
			}
		}
	}
	return execErr
}
