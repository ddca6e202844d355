package postgresql

import (
	"context"
	"fmt"

	"github.com/peoplecore/leave-engine-go/internal/domain/leave"
)

// Summarize computes the company aggregate in a single query so the result is
// always a consistent snapshot of the table.
func (r *leaveRequestRepositoryImpl) Summarize(ctx context.Context, companyID string, startDate, endDate *string) (leave.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(days), 0) AS total_days,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_count,
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0) AS approved_count,
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0) AS rejected_count,
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0) AS cancelled_count,
			COALESCE(SUM(CASE WHEN leave_type = 'paid' THEN 1 ELSE 0 END), 0) AS paid_count,
			COALESCE(SUM(CASE WHEN leave_type = 'casual' THEN 1 ELSE 0 END), 0) AS casual_count,
			COALESCE(SUM(CASE WHEN leave_type = 'short' THEN 1 ELSE 0 END), 0) AS short_count,
			COALESCE(SUM(CASE WHEN leave_type = 'sick' THEN 1 ELSE 0 END), 0) AS sick_count,
			COALESCE(SUM(CASE WHEN leave_type = 'halfday' THEN 1 ELSE 0 END), 0) AS halfday_count
		FROM leave_requests
		WHERE company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	// Same intersection rule as List.
	if startDate != nil && *startDate != "" {
		query += fmt.Sprintf(" AND end_date >= $%d", argIdx)
		args = append(args, *startDate)
		argIdx++
	}
	if endDate != nil && *endDate != "" {
		query += fmt.Sprintf(" AND start_date <= $%d", argIdx)
		args = append(args, *endDate)
	}

	var (
		summary                                leave.Summary
		pending, approved, rejected, cancelled int64
		paid, casual, short, sick, halfday     int64
	)
	err := q.QueryRow(ctx, query, args...).Scan(
		&summary.TotalRequests, &summary.TotalDays,
		&pending, &approved, &rejected, &cancelled,
		&paid, &casual, &short, &sick, &halfday,
	)
	if err != nil {
		return leave.Summary{}, fmt.Errorf("failed to summarize leave requests: %w", err)
	}

	summary.ByStatus = map[string]int64{
		string(leave.LeaveRequestStatusPending):   pending,
		string(leave.LeaveRequestStatusApproved):  approved,
		string(leave.LeaveRequestStatusRejected):  rejected,
		string(leave.LeaveRequestStatusCancelled): cancelled,
	}
	summary.ByLeaveType = map[string]int64{
		string(leave.LeaveTypePaid):    paid,
		string(leave.LeaveTypeCasual):  casual,
		string(leave.LeaveTypeShort):   short,
		string(leave.LeaveTypeSick):    sick,
		string(leave.LeaveTypeHalfDay): halfday,
	}

	return summary, nil
}
