package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for the leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Update(ctx context.Context, patch LeaveRequestPatch) (LeaveRequest, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// FindOverlapping returns one blocking request for the employee whose
	// inclusive date range intersects [start, end], or nil. excludeID, when
	// non-empty, omits the record being edited.
	FindOverlapping(ctx context.Context, employeeID, companyID string, start, end time.Time, excludeID string) (*LeaveRequest, error)

	// UpdateStatus applies a Track A transition guarded on status = pending
	// in a single statement. Returns ErrLeaveAlreadyProcessed when the record
	// exists but is no longer pending.
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, actorID string, comments *string, at time.Time) (LeaveRequest, error)

	// UpdateManagerAction applies a Track B transition guarded on
	// manager_action = pending, independent of status.
	UpdateManagerAction(ctx context.Context, id string, action ManagerAction, managerID string, comment *string, at time.Time) (LeaveRequest, error)

	Summarize(ctx context.Context, companyID string, startDate, endDate *string) (Summary, error)
}

// Transactor scopes a group of repository calls to one atomic unit, so the
// overlap check and the write it guards cannot interleave with a concurrent
// submission for the same employee.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
