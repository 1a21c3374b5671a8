package workflow

import (
	"errors"
	"fmt"
)

// undoLog records the compensating action of every write a compound operation
// has committed, so a failure in a later step can put the earlier ones back.
type undoLog struct {
	steps []undoStep
}

type undoStep struct {
	name string
	fn   func() error
}

func (u *undoLog) record(name string, fn func() error) {
	u.steps = append(u.steps, undoStep{name: name, fn: fn})
}

// rollback runs the recorded actions newest first. Every action is attempted
// even when an earlier one fails.
func (u *undoLog) rollback() error {
	var errs []error
	for i := len(u.steps) - 1; i >= 0; i-- {
		if err := u.steps[i].fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", u.steps[i].name, err))
		}
	}
	u.steps = nil
	return errors.Join(errs...)
}

// abort rolls back and returns cause wrapped with the step that failed. A failed
// rollback is joined onto the result so both are visible to the caller.
func (s *WorkflowService) abort(opID, step string, cause error, undo *undoLog) error {
	err := fmt.Errorf("%s: %w", step, cause)
	if rbErr := undo.rollback(); rbErr != nil {
		s.logf("[%s] rollback after failed %s incomplete: %v", opID, step, rbErr)
		return errors.Join(err, fmt.Errorf("rollback incomplete: %w", rbErr))
	}
	s.logf("[%s] %s failed, earlier writes rolled back: %v", opID, step, cause)
	return err
}
