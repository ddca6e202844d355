package leave

import (
	"context"

	"github.com/peoplecore/leave-engine-go/internal/domain/leave"
)

// SummaryService derives company aggregates from the store on every call;
// nothing is cached.
type SummaryService struct {
	repo leave.LeaveRequestRepository
}

func NewSummaryService(repo leave.LeaveRequestRepository) *SummaryService {
	return &SummaryService{repo: repo}
}

func (s *SummaryService) Summarize(ctx context.Context, req leave.SummaryRequest) (leave.Summary, error) {
	if err := req.Validate(); err != nil {
		return leave.Summary{}, err
	}

	summary, err := s.repo.Summarize(ctx, req.CompanyID, req.StartDate, req.EndDate)
	if err != nil {
		return leave.Summary{}, err
	}

	if summary.TotalRequests > 0 {
		summary.AverageDays = summary.TotalDays / float64(summary.TotalRequests)
	}

	return summary, nil
}
