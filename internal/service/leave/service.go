package leave

import (
	"github.com/peoplecore/leave-engine-go/internal/domain/leave"
)

// Service is the leave engine facade wired into the HTTP layer.
type Service struct {
	*RequestService
	*ApprovalService
	*SummaryService
}

var _ leave.LeaveService = (*Service)(nil)

func NewService(tx leave.Transactor, repo leave.LeaveRequestRepository) *Service {
	checker := NewConflictChecker(repo)
	return &Service{
		RequestService:  NewRequestService(tx, repo, checker),
		ApprovalService: NewApprovalService(repo),
		SummaryService:  NewSummaryService(repo),
	}
}
