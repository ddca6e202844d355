package leave

import (
	"time"

	"github.com/peoplecore/leave-engine-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateLeaveRequestRequest struct {
	EmployeeID  string   `json:"employee_id"`
	CompanyID   string   `json:"company_id"`
	LeaveType   string   `json:"leave_type"`
	HalfDayType *string  `json:"half_day_type,omitempty"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Reason      string   `json:"reason"`
	Days        *float64 `json:"days,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	// Employee ID
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// Company ID
	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	// Leave type
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !LeaveType(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of paid, casual, short, sick, halfday",
		})
	}

	// Half day type: required for halfday, forbidden otherwise
	if LeaveType(r.LeaveType) == LeaveTypeHalfDay {
		if r.HalfDayType == nil || validator.IsEmpty(*r.HalfDayType) {
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_type",
				Message: "half_day_type is required for halfday leave",
			})
		} else if !HalfDayType(*r.HalfDayType).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_type",
				Message: "half_day_type must be first or second",
			})
		}
	} else if r.HalfDayType != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "half_day_type",
			Message: "half_day_type is only allowed for halfday leave",
		})
	}

	// Dates
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startOK && endOK {
		if start.After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
		if LeaveType(r.LeaveType) == LeaveTypeHalfDay && !start.Equal(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "halfday leave must start and end on the same date",
			})
		}
	}

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	// Days, when supplied by the caller
	if r.Days != nil && *r.Days <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveRequestRequest struct {
	ID          string   `json:"-"`
	LeaveType   *string  `json:"leave_type,omitempty"`
	HalfDayType *string  `json:"half_day_type,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	Reason      *string  `json:"reason,omitempty"`
	Days        *float64 `json:"days,omitempty"`
}

// Validate checks only the shape of the supplied fields; cross-field rules
// are enforced against the merged record by the service.
func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// Leave type
	if r.LeaveType != nil && !LeaveType(*r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of paid, casual, short, sick, halfday",
		})
	}

	// Half day type
	if r.HalfDayType != nil && !HalfDayType(*r.HalfDayType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "half_day_type",
			Message: "half_day_type must be first or second",
		})
	}

	// Dates
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	// Reason
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not be empty",
		})
	}

	// Days
	if r.Days != nil && *r.Days <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Empty reports whether the patch changes nothing.
func (r *UpdateLeaveRequestRequest) Empty() bool {
	return r.LeaveType == nil && r.HalfDayType == nil && r.StartDate == nil &&
		r.EndDate == nil && r.Reason == nil && r.Days == nil
}

type StatusTransitionRequest struct {
	ID       string  `json:"-"`
	Status   string  `json:"status"`
	ActorID  string  `json:"-"`
	Comments *string `json:"comments,omitempty"`
}

func (r *StatusTransitionRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// Target status: only terminal values can be transitioned to
	if !LeaveRequestStatus(r.Status).Terminal() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of approved, rejected, cancelled",
		})
	}

	// Actor
	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor_id",
			Message: "acting principal is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ManagerActionRequest struct {
	ID        string  `json:"-"`
	Action    string  `json:"action"`
	ManagerID string  `json:"-"`
	Comment   *string `json:"comment,omitempty"`
}

func (r *ManagerActionRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// Action
	if a := ManagerAction(r.Action); a != ManagerActionApproved && a != ManagerActionRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approved or rejected",
		})
	}

	// Manager
	if validator.IsEmpty(r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager identity is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestFilter struct {
	CompanyID  string
	EmployeeID *string
	Status     *string
	LeaveType  *string

	// Date window, matched by range intersection against [StartDate, EndDate].
	StartDate *string
	EndDate   *string

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	// Company ID: tenant scope is mandatory
	if validator.IsEmpty(f.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	// Status
	if f.Status != nil {
		switch LeaveRequestStatus(*f.Status) {
		case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected, LeaveRequestStatusCancelled:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of pending, approved, rejected, cancelled",
			})
		}
	}

	// Leave type
	if f.LeaveType != nil && !LeaveType(*f.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of paid, casual, short, sick, halfday",
		})
	}

	// Window
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryRequest struct {
	CompanyID string
	StartDate *string
	EndDate   *string
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	// Company ID
	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	// Window
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveRequestPatch carries the concrete column updates applied by the
// repository once the service has merged and re-validated an edit.
type LeaveRequestPatch struct {
	ID           string
	LeaveType    *LeaveType
	HalfDayType  *HalfDayType
	ClearHalfDay bool
	StartDate    *time.Time
	EndDate      *time.Time
	Days         *float64
	Reason       *string
}

type LeaveRequestResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	EmployeeID string `json:"employee_id"`

	LeaveType   string  `json:"leave_type"`
	HalfDayType *string `json:"half_day_type,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Days        float64 `json:"days"`
	Reason      string  `json:"reason"`

	Status       string     `json:"status"`
	ApprovedBy   *string    `json:"approved_by,omitempty"`
	ApprovedDate *time.Time `json:"approved_date,omitempty"`
	Comments     *string    `json:"comments,omitempty"`

	ReportingManager  *string    `json:"reporting_manager,omitempty"`
	ManagerAction     string     `json:"manager_action"`
	ManagerActionDate *time.Time `json:"manager_action_date,omitempty"`
	ManagerComment    *string    `json:"manager_comment,omitempty"`

	SubmittedDate time.Time `json:"submitted_date"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	var halfDay *string
	if r.HalfDayType != nil {
		s := string(*r.HalfDayType)
		halfDay = &s
	}

	return LeaveRequestResponse{
		ID:                r.ID,
		CompanyID:         r.CompanyID,
		EmployeeID:        r.EmployeeID,
		LeaveType:         string(r.LeaveType),
		HalfDayType:       halfDay,
		StartDate:         r.StartDate.Format(dateLayout),
		EndDate:           r.EndDate.Format(dateLayout),
		Days:              r.Days,
		Reason:            r.Reason,
		Status:            string(r.Status),
		ApprovedBy:        r.ApprovedBy,
		ApprovedDate:      r.ApprovedDate,
		Comments:          r.Comments,
		ReportingManager:  r.ReportingManager,
		ManagerAction:     string(r.ManagerAction),
		ManagerActionDate: r.ManagerActionDate,
		ManagerComment:    r.ManagerComment,
		SubmittedDate:     r.SubmittedDate,
		UpdatedAt:         r.UpdatedAt,
	}
}

type ListLeaveRequestsResponse struct {
	Requests []LeaveRequestResponse `json:"requests"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	Limit    int                    `json:"limit"`
}

// Summary is the per-company aggregate over a date window.
type Summary struct {
	TotalRequests int64            `json:"total_requests"`
	ByStatus      map[string]int64 `json:"by_status"`
	ByLeaveType   map[string]int64 `json:"by_leave_type"`
	TotalDays     float64          `json:"total_days"`
	AverageDays   float64          `json:"average_days"`
}
