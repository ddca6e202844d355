package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplecore/leave-engine-go/internal/domain/leave"
)

// ConflictChecker locates blocking leave requests whose date ranges intersect
// a candidate range. Read-only; both pending and approved requests block.
type ConflictChecker struct {
	repo leave.LeaveRequestRepository
}

func NewConflictChecker(repo leave.LeaveRequestRepository) *ConflictChecker {
	return &ConflictChecker{repo: repo}
}

// CheckOverlap returns one conflicting request for the employee, or nil.
// excludeID omits the record being edited so a request never conflicts with
// itself.
func (c *ConflictChecker) CheckOverlap(
	ctx context.Context,
	employeeID, companyID string,
	start, end time.Time,
	excludeID string,
) (*leave.LeaveRequest, error) {
	conflict, err := c.repo.FindOverlapping(ctx, employeeID, companyID, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	return conflict, nil
}
