package leave

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/peoplecore/leave-engine-go/internal/domain/leave"
)

// fakeLeaveRepo is an in-memory LeaveRequestRepository mirroring the
// postgresql implementation's guard semantics, so the services can be
// exercised without a database.
type fakeLeaveRepo struct {
	mu      sync.Mutex
	seq     int
	order   []string
	records map[string]*leave.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{records: make(map[string]*leave.LeaveRequest)}
}

// passTransactor runs the callback directly; the fake repo is already atomic
// under its mutex.
type passTransactor struct{}

func (passTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	now := time.Now().UTC()
	request.ID = fmt.Sprintf("lr-%03d", f.seq)
	request.Status = leave.LeaveRequestStatusPending
	request.ManagerAction = leave.ManagerActionPending
	request.SubmittedDate = now
	request.CreatedAt = now
	request.UpdatedAt = now

	stored := request
	f.records[request.ID] = &stored
	f.order = append(f.order, request.ID)
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return *record, nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, patch leave.LeaveRequestPatch) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[patch.ID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}

	if patch.LeaveType != nil {
		record.LeaveType = *patch.LeaveType
	}
	if patch.HalfDayType != nil {
		record.HalfDayType = patch.HalfDayType
	} else if patch.ClearHalfDay {
		record.HalfDayType = nil
	}
	if patch.StartDate != nil {
		record.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		record.EndDate = *patch.EndDate
	}
	if patch.Days != nil {
		record.Days = *patch.Days
	}
	if patch.Reason != nil {
		record.Reason = *patch.Reason
	}
	record.UpdatedAt = time.Now().UTC()

	return *record, nil
}

func (f *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(f.records, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []leave.LeaveRequest
	for _, id := range f.order {
		record := f.records[id]
		if record.CompanyID != filter.CompanyID {
			continue
		}
		if filter.EmployeeID != nil && record.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(record.Status) != *filter.Status {
			continue
		}
		if filter.LeaveType != nil && string(record.LeaveType) != *filter.LeaveType {
			continue
		}
		if filter.StartDate != nil {
			start, _ := time.Parse("2006-01-02", *filter.StartDate)
			if record.EndDate.Before(start) {
				continue
			}
		}
		if filter.EndDate != nil {
			end, _ := time.Parse("2006-01-02", *filter.EndDate)
			if record.StartDate.After(end) {
				continue
			}
		}
		matched = append(matched, *record)
	}

	total := int64(len(matched))

	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeLeaveRepo) FindOverlapping(ctx context.Context, employeeID, companyID string, start, end time.Time, excludeID string) (*leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var found *leave.LeaveRequest
	for _, id := range f.order {
		record := f.records[id]
		if record.EmployeeID != employeeID || record.CompanyID != companyID {
			continue
		}
		if !record.Status.Blocking() {
			continue
		}
		if excludeID != "" && record.ID == excludeID {
			continue
		}
		if !record.Overlaps(start, end) {
			continue
		}
		if found == nil || record.StartDate.Before(found.StartDate) {
			c := *record
			found = &c
		}
	}
	return found, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, actorID string, comments *string, at time.Time) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if record.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}

	record.Status = status
	record.ApprovedBy = &actorID
	record.ApprovedDate = &at
	record.Comments = comments
	record.UpdatedAt = at
	return *record, nil
}

func (f *fakeLeaveRepo) UpdateManagerAction(ctx context.Context, id string, action leave.ManagerAction, managerID string, comment *string, at time.Time) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if record.ManagerAction != leave.ManagerActionPending {
		return leave.LeaveRequest{}, leave.ErrManagerActionRecorded
	}

	record.ManagerAction = action
	record.ReportingManager = &managerID
	record.ManagerActionDate = &at
	record.ManagerComment = comment
	record.UpdatedAt = at
	return *record, nil
}

func (f *fakeLeaveRepo) Summarize(ctx context.Context, companyID string, startDate, endDate *string) (leave.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	summary := leave.Summary{
		ByStatus: map[string]int64{
			"pending": 0, "approved": 0, "rejected": 0, "cancelled": 0,
		},
		ByLeaveType: map[string]int64{
			"paid": 0, "casual": 0, "short": 0, "sick": 0, "halfday": 0,
		},
	}

	for _, id := range f.order {
		record := f.records[id]
		if record.CompanyID != companyID {
			continue
		}
		if startDate != nil {
			start, _ := time.Parse("2006-01-02", *startDate)
			if record.EndDate.Before(start) {
				continue
			}
		}
		if endDate != nil {
			end, _ := time.Parse("2006-01-02", *endDate)
			if record.StartDate.After(end) {
				continue
			}
		}

		summary.TotalRequests++
		summary.ByStatus[string(record.Status)]++
		summary.ByLeaveType[string(record.LeaveType)]++
		summary.TotalDays += record.Days
	}

	return summary, nil
}
