package leave

import (
	"context"
	"time"
)

type LeaveService interface {
	// Request lifecycle
	SubmitLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	UpdateLeaveRequest(ctx context.Context, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)
	DeleteLeaveRequest(ctx context.Context, id string) error
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)
	// Conflict
	CheckOverlap(ctx context.Context, employeeID, companyID string, start, end time.Time, excludeID string) (*LeaveRequest, error)
	// Approval
	TransitionStatus(ctx context.Context, req StatusTransitionRequest) (LeaveRequestResponse, error)
	RecordManagerAction(ctx context.Context, req ManagerActionRequest) (LeaveRequestResponse, error)
	// Reporting
	Summarize(ctx context.Context, req SummaryRequest) (Summary, error)
}
