package leave

import (
	"context"
	"time"

	"github.com/peoplecore/leave-engine-go/internal/domain/leave"
)

// ApprovalService drives the two approval tracks. Track A is the
// administrative status (pending -> approved/rejected/cancelled, terminal
// after that); Track B is the reporting manager's signal. The tracks never
// read or write each other.
type ApprovalService struct {
	repo leave.LeaveRequestRepository
}

func NewApprovalService(repo leave.LeaveRequestRepository) *ApprovalService {
	return &ApprovalService{repo: repo}
}

func (s *ApprovalService) TransitionStatus(ctx context.Context, req leave.StatusTransitionRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, req.ID, leave.LeaveRequestStatus(req.Status), req.ActorID, req.Comments, time.Now().UTC())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(updated), nil
}

func (s *ApprovalService) RecordManagerAction(ctx context.Context, req leave.ManagerActionRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	updated, err := s.repo.UpdateManagerAction(ctx, req.ID, leave.ManagerAction(req.Action), req.ManagerID, req.Comment, time.Now().UTC())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(updated), nil
}
