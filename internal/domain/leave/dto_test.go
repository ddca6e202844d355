package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/leave-engine-go/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func float64Ptr(f float64) *float64 { return &f }

func validCreateRequest() CreateLeaveRequestRequest {
	return CreateLeaveRequestRequest{
		EmployeeID: "emp-001",
		CompanyID:  "comp-001",
		LeaveType:  "paid",
		StartDate:  "2025-08-05",
		EndDate:    "2025-08-07",
		Reason:     "family trip",
	}
}

func fieldsOf(t *testing.T, err error) map[string]bool {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make(map[string]bool, len(verrs))
	for _, ve := range verrs {
		fields[ve.Field] = true
	}
	return fields
}

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	t.Run("valid full day request", func(t *testing.T) {
		req := validCreateRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("valid halfday request", func(t *testing.T) {
		req := validCreateRequest()
		req.LeaveType = "halfday"
		req.HalfDayType = strPtr("first")
		req.StartDate = "2025-08-05"
		req.EndDate = "2025-08-05"
		assert.NoError(t, req.Validate())
	})

	tests := []struct {
		name      string
		mutate    func(*CreateLeaveRequestRequest)
		wantField string
	}{
		{
			name:      "missing employee id",
			mutate:    func(r *CreateLeaveRequestRequest) { r.EmployeeID = "" },
			wantField: "employee_id",
		},
		{
			name:      "missing company id",
			mutate:    func(r *CreateLeaveRequestRequest) { r.CompanyID = "" },
			wantField: "company_id",
		},
		{
			name:      "unknown leave type",
			mutate:    func(r *CreateLeaveRequestRequest) { r.LeaveType = "sabbatical" },
			wantField: "leave_type",
		},
		{
			name:      "missing reason",
			mutate:    func(r *CreateLeaveRequestRequest) { r.Reason = "   " },
			wantField: "reason",
		},
		{
			name:      "malformed start date",
			mutate:    func(r *CreateLeaveRequestRequest) { r.StartDate = "05-08-2025" },
			wantField: "start_date",
		},
		{
			name: "end before start",
			mutate: func(r *CreateLeaveRequestRequest) {
				r.StartDate = "2025-08-07"
				r.EndDate = "2025-08-05"
			},
			wantField: "end_date",
		},
		{
			name: "halfday without half_day_type",
			mutate: func(r *CreateLeaveRequestRequest) {
				r.LeaveType = "halfday"
				r.EndDate = r.StartDate
			},
			wantField: "half_day_type",
		},
		{
			name: "halfday with bad half_day_type",
			mutate: func(r *CreateLeaveRequestRequest) {
				r.LeaveType = "halfday"
				r.HalfDayType = strPtr("morning")
				r.EndDate = r.StartDate
			},
			wantField: "half_day_type",
		},
		{
			name: "halfday spanning multiple days",
			mutate: func(r *CreateLeaveRequestRequest) {
				r.LeaveType = "halfday"
				r.HalfDayType = strPtr("second")
			},
			wantField: "end_date",
		},
		{
			name:      "half_day_type on full day leave",
			mutate:    func(r *CreateLeaveRequestRequest) { r.HalfDayType = strPtr("first") },
			wantField: "half_day_type",
		},
		{
			name:      "non positive days",
			mutate:    func(r *CreateLeaveRequestRequest) { r.Days = float64Ptr(0) },
			wantField: "days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, fieldsOf(t, err)[tt.wantField], "expected error on %s", tt.wantField)
		})
	}
}

func TestUpdateLeaveRequestRequest_Validate(t *testing.T) {
	t.Run("valid partial update", func(t *testing.T) {
		req := UpdateLeaveRequestRequest{ID: "lr-001", EndDate: strPtr("2025-08-10")}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		req := UpdateLeaveRequestRequest{}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, fieldsOf(t, err)["id"])
	})

	t.Run("bad supplied fields", func(t *testing.T) {
		req := UpdateLeaveRequestRequest{
			ID:        "lr-001",
			LeaveType: strPtr("vacation"),
			StartDate: strPtr("not-a-date"),
			Reason:    strPtr(""),
			Days:      float64Ptr(-1),
		}
		err := req.Validate()
		require.Error(t, err)
		fields := fieldsOf(t, err)
		assert.True(t, fields["leave_type"])
		assert.True(t, fields["start_date"])
		assert.True(t, fields["reason"])
		assert.True(t, fields["days"])
	})
}

func TestUpdateLeaveRequestRequest_Empty(t *testing.T) {
	assert.True(t, (&UpdateLeaveRequestRequest{ID: "lr-001"}).Empty())
	assert.False(t, (&UpdateLeaveRequestRequest{ID: "lr-001", Reason: strPtr("changed")}).Empty())
}

func TestStatusTransitionRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := StatusTransitionRequest{ID: "lr-001", Status: "approved", ActorID: "admin-1"}
		assert.NoError(t, req.Validate())
	})

	t.Run("pending is not a transition target", func(t *testing.T) {
		req := StatusTransitionRequest{ID: "lr-001", Status: "pending", ActorID: "admin-1"}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, fieldsOf(t, err)["status"])
	})

	t.Run("unknown status", func(t *testing.T) {
		req := StatusTransitionRequest{ID: "lr-001", Status: "denied", ActorID: "admin-1"}
		require.Error(t, req.Validate())
	})
}

func TestManagerActionRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := ManagerActionRequest{ID: "lr-001", Action: "rejected", ManagerID: "mgr-1"}
		assert.NoError(t, req.Validate())
	})

	t.Run("pending is not an action", func(t *testing.T) {
		req := ManagerActionRequest{ID: "lr-001", Action: "pending", ManagerID: "mgr-1"}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, fieldsOf(t, err)["action"])
	})
}

func TestLeaveRequestFilter_Validate(t *testing.T) {
	t.Run("company id required", func(t *testing.T) {
		f := LeaveRequestFilter{}
		err := f.Validate()
		require.Error(t, err)
		assert.True(t, fieldsOf(t, err)["company_id"])
	})

	t.Run("bad status and window", func(t *testing.T) {
		f := LeaveRequestFilter{
			CompanyID: "comp-001",
			Status:    strPtr("open"),
			StartDate: strPtr("yesterday"),
		}
		err := f.Validate()
		require.Error(t, err)
		fields := fieldsOf(t, err)
		assert.True(t, fields["status"])
		assert.True(t, fields["start_date"])
	})
}

func TestNewLeaveRequestResponse(t *testing.T) {
	half := HalfDayFirst
	r := LeaveRequest{
		ID:            "lr-001",
		CompanyID:     "comp-001",
		EmployeeID:    "emp-001",
		LeaveType:     LeaveTypeHalfDay,
		HalfDayType:   &half,
		StartDate:     mustDate(t, "2025-08-05"),
		EndDate:       mustDate(t, "2025-08-05"),
		Days:          0.5,
		Reason:        "appointment",
		Status:        LeaveRequestStatusPending,
		ManagerAction: ManagerActionPending,
	}

	resp := NewLeaveRequestResponse(r)
	assert.Equal(t, "lr-001", resp.ID)
	assert.Equal(t, "halfday", resp.LeaveType)
	require.NotNil(t, resp.HalfDayType)
	assert.Equal(t, "first", *resp.HalfDayType)
	assert.Equal(t, "2025-08-05", resp.StartDate)
	assert.Equal(t, 0.5, resp.Days)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.ManagerAction)
}
