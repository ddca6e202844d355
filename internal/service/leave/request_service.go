package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplecore/leave-engine-go/internal/domain/leave"
	"github.com/peoplecore/leave-engine-go/internal/pkg/validator"
)

// RequestService owns the leave request lifecycle: submission, edits while
// pending, deletion and listing. Submission and edits run their overlap check
// and write inside one transaction.
type RequestService struct {
	tx      leave.Transactor
	repo    leave.LeaveRequestRepository
	checker *ConflictChecker
}

func NewRequestService(tx leave.Transactor, repo leave.LeaveRequestRepository, checker *ConflictChecker) *RequestService {
	return &RequestService{tx: tx, repo: repo, checker: checker}
}

func (s *RequestService) SubmitLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Validate has already checked the formats.
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	var halfDay *leave.HalfDayType
	var days float64
	if leave.LeaveType(req.LeaveType) == leave.LeaveTypeHalfDay {
		h := leave.HalfDayType(*req.HalfDayType)
		halfDay = &h
		days = 0.5
	} else if req.Days != nil {
		days = *req.Days
	} else {
		days = leave.DaySpan(start, end)
	}

	var created leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		conflict, err := s.checker.CheckOverlap(ctx, req.EmployeeID, req.CompanyID, start, end, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return &leave.ConflictError{
				ConflictingID: conflict.ID,
				StartDate:     conflict.StartDate,
				EndDate:       conflict.EndDate,
			}
		}

		created, err = s.repo.Create(ctx, leave.LeaveRequest{
			CompanyID:   req.CompanyID,
			EmployeeID:  req.EmployeeID,
			LeaveType:   leave.LeaveType(req.LeaveType),
			HalfDayType: halfDay,
			StartDate:   start,
			EndDate:     end,
			Days:        days,
			Reason:      req.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(created), nil
}

func (s *RequestService) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(request), nil
}

func (s *RequestService) UpdateLeaveRequest(ctx context.Context, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var updated leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if current.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveAlreadyProcessed
		}

		if req.Empty() {
			updated = current
			return nil
		}

		merged, patch, rangeChanged, err := mergePatch(current, req)
		if err != nil {
			return err
		}

		if rangeChanged {
			conflict, err := s.checker.CheckOverlap(ctx, current.EmployeeID, current.CompanyID, merged.StartDate, merged.EndDate, current.ID)
			if err != nil {
				return err
			}
			if conflict != nil {
				return &leave.ConflictError{
					ConflictingID: conflict.ID,
					StartDate:     conflict.StartDate,
					EndDate:       conflict.EndDate,
				}
			}
		}

		updated, err = s.repo.Update(ctx, patch)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(updated), nil
}

// mergePatch overlays the edit onto the stored record, re-validates the
// cross-field rules against the merged result and produces the column patch.
func mergePatch(current leave.LeaveRequest, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, leave.LeaveRequestPatch, bool, error) {
	merged := current
	patch := leave.LeaveRequestPatch{ID: current.ID}

	if req.LeaveType != nil {
		t := leave.LeaveType(*req.LeaveType)
		merged.LeaveType = t
		patch.LeaveType = &t
	}
	if req.HalfDayType != nil {
		h := leave.HalfDayType(*req.HalfDayType)
		merged.HalfDayType = &h
	}
	if req.StartDate != nil {
		start, _ := validator.IsValidDate(*req.StartDate)
		merged.StartDate = start
		patch.StartDate = &start
	}
	if req.EndDate != nil {
		end, _ := validator.IsValidDate(*req.EndDate)
		merged.EndDate = end
		patch.EndDate = &end
	}
	if req.Reason != nil {
		merged.Reason = *req.Reason
		patch.Reason = req.Reason
	}

	var errs validator.ValidationErrors
	if merged.StartDate.After(merged.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if merged.LeaveType == leave.LeaveTypeHalfDay {
		if merged.HalfDayType == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_type",
				Message: "half_day_type is required for halfday leave",
			})
		}
		if !merged.StartDate.Equal(merged.EndDate) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "halfday leave must start and end on the same date",
			})
		}
	} else if req.HalfDayType != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "half_day_type",
			Message: "half_day_type is only allowed for halfday leave",
		})
	}
	if len(errs) > 0 {
		return leave.LeaveRequest{}, leave.LeaveRequestPatch{}, false, errs
	}

	if merged.LeaveType == leave.LeaveTypeHalfDay {
		patch.HalfDayType = merged.HalfDayType
	} else if current.HalfDayType != nil {
		// Type moved away from halfday; the slot no longer applies.
		merged.HalfDayType = nil
		patch.ClearHalfDay = true
	}

	rangeChanged := !merged.StartDate.Equal(current.StartDate) || !merged.EndDate.Equal(current.EndDate)
	typeChanged := merged.LeaveType != current.LeaveType

	switch {
	case merged.LeaveType == leave.LeaveTypeHalfDay:
		merged.Days = 0.5
	case req.Days != nil:
		merged.Days = *req.Days
	case rangeChanged || typeChanged:
		merged.Days = leave.DaySpan(merged.StartDate, merged.EndDate)
	}
	if merged.Days != current.Days {
		patch.Days = &merged.Days
	}

	return merged, patch, rangeChanged || typeChanged, nil
}

func (s *RequestService) DeleteLeaveRequest(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *RequestService) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(request))
	}

	return leave.ListLeaveRequestsResponse{
		Requests: responses,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}, nil
}

// CheckOverlap exposes the conflict probe for callers that want to test a
// candidate range without submitting.
func (s *RequestService) CheckOverlap(ctx context.Context, employeeID, companyID string, start, end time.Time, excludeID string) (*leave.LeaveRequest, error) {
	return s.checker.CheckOverlap(ctx, employeeID, companyID, start, end, excludeID)
}
