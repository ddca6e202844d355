package leave

import "time"

type LeaveType string

const (
	LeaveTypePaid    LeaveType = "paid"
	LeaveTypeCasual  LeaveType = "casual"
	LeaveTypeShort   LeaveType = "short"
	LeaveTypeSick    LeaveType = "sick"
	LeaveTypeHalfDay LeaveType = "halfday"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypePaid, LeaveTypeCasual, LeaveTypeShort, LeaveTypeSick, LeaveTypeHalfDay:
		return true
	}
	return false
}

// HalfDayType selects which half of the day a halfday request covers.
type HalfDayType string

const (
	HalfDayFirst  HalfDayType = "first"
	HalfDaySecond HalfDayType = "second"
)

func (h HalfDayType) Valid() bool {
	return h == HalfDayFirst || h == HalfDaySecond
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// Terminal reports whether no further status transition is permitted.
func (s LeaveRequestStatus) Terminal() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected || s == LeaveRequestStatusCancelled
}

// Blocking reports whether the request counts against the per-employee
// overlap invariant. Pending requests block just like approved ones so a
// pending request cannot silently collide with a later submission.
func (s LeaveRequestStatus) Blocking() bool {
	return s != LeaveRequestStatusCancelled && s != LeaveRequestStatusRejected
}

// ManagerAction is the reporting manager's signal, tracked independently of
// the administrative status.
type ManagerAction string

const (
	ManagerActionPending  ManagerAction = "pending"
	ManagerActionApproved ManagerAction = "approved"
	ManagerActionRejected ManagerAction = "rejected"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	CompanyID  string
	EmployeeID string

	LeaveType   LeaveType
	HalfDayType *HalfDayType

	// Inclusive calendar dates, always midnight UTC.
	StartDate time.Time
	EndDate   time.Time

	Days   float64
	Reason string

	Status       LeaveRequestStatus
	ApprovedBy   *string
	ApprovedDate *time.Time
	Comments     *string

	ReportingManager  *string
	ManagerAction     ManagerAction
	ManagerActionDate *time.Time
	ManagerComment    *string

	SubmittedDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Overlaps reports whether the request's inclusive date range intersects
// [start, end]: two ranges [a,b] and [c,d] overlap iff a <= d and c <= b.
func (r LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !start.After(r.EndDate)
}

// DaySpan returns the inclusive number of whole days between start and end.
func DaySpan(start, end time.Time) float64 {
	return float64(int(end.Sub(start).Hours()/24) + 1)
}
