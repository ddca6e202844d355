package leave

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrLeaveRequestNotFound  = errors.New("Leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("Leave request already processed")
	ErrManagerActionRecorded = errors.New("Manager action already recorded")
)

// ConflictError is returned when a candidate date range overlaps an existing
// blocking request for the same employee. It carries the conflicting range so
// the caller can show it.
type ConflictError struct {
	ConflictingID string
	StartDate     time.Time
	EndDate       time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("leave request overlaps an existing request from %s to %s",
		e.StartDate.Format("2006-01-02"), e.EndDate.Format("2006-01-02"))
}
