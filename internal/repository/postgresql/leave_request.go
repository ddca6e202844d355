package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peoplecore/leave-engine-go/internal/domain/leave"
	"github.com/peoplecore/leave-engine-go/internal/pkg/database"
)

const leaveRequestColumns = `
	lr.id, lr.company_id, lr.employee_id,
	lr.leave_type, lr.half_day_type,
	lr.start_date, lr.end_date, lr.days, lr.reason,
	lr.status, lr.approved_by, lr.approved_date, lr.comments,
	lr.reporting_manager, lr.manager_action, lr.manager_action_date, lr.manager_comment,
	lr.submitted_date, lr.created_at, lr.updated_at`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeaveRequest(row rowScanner) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.CompanyID, &lr.EmployeeID,
		&lr.LeaveType, &lr.HalfDayType,
		&lr.StartDate, &lr.EndDate, &lr.Days, &lr.Reason,
		&lr.Status, &lr.ApprovedBy, &lr.ApprovedDate, &lr.Comments,
		&lr.ReportingManager, &lr.ManagerAction, &lr.ManagerActionDate, &lr.ManagerComment,
		&lr.SubmittedDate, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (
			id, company_id, employee_id,
			leave_type, half_day_type,
			start_date, end_date, days, reason,
			status, manager_action,
			submitted_date, created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5,
			$6, $7, $8, $9,
			$10, $11,
			NOW(), NOW(), NOW()
		) RETURNING submitted_date, created_at, updated_at
	`

	request.ID = id.String()
	request.Status = leave.LeaveRequestStatusPending
	request.ManagerAction = leave.ManagerActionPending

	err = q.QueryRow(ctx, query,
		request.ID, request.CompanyID, request.EmployeeID,
		request.LeaveType, request.HalfDayType,
		request.StartDate, request.EndDate, request.Days, request.Reason,
		request.Status, request.ManagerAction,
	).Scan(&request.SubmittedDate, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests lr WHERE lr.id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return lr, nil
}

func (r *leaveRequestRepositoryImpl) FindOverlapping(
	ctx context.Context,
	employeeID, companyID string,
	start, end time.Time,
	excludeID string,
) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1 AND lr.company_id = $2
		AND lr.status NOT IN ('cancelled', 'rejected')
		AND lr.start_date <= $4 AND lr.end_date >= $3
	`
	args := []interface{}{employeeID, companyID, start, end}

	if excludeID != "" {
		query += " AND lr.id <> $5"
		args = append(args, excludeID)
	}

	query += " ORDER BY lr.start_date LIMIT 1"

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find overlapping leave request: %w", err)
	}

	return &lr, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, patch leave.LeaveRequestPatch) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if patch.LeaveType != nil {
		updates = append(updates, fmt.Sprintf("leave_type = $%d", argIdx))
		args = append(args, *patch.LeaveType)
		argIdx++
	}
	if patch.HalfDayType != nil {
		updates = append(updates, fmt.Sprintf("half_day_type = $%d", argIdx))
		args = append(args, *patch.HalfDayType)
		argIdx++
	} else if patch.ClearHalfDay {
		updates = append(updates, "half_day_type = NULL")
	}
	if patch.StartDate != nil {
		updates = append(updates, fmt.Sprintf("start_date = $%d", argIdx))
		args = append(args, *patch.StartDate)
		argIdx++
	}
	if patch.EndDate != nil {
		updates = append(updates, fmt.Sprintf("end_date = $%d", argIdx))
		args = append(args, *patch.EndDate)
		argIdx++
	}
	if patch.Days != nil {
		updates = append(updates, fmt.Sprintf("days = $%d", argIdx))
		args = append(args, *patch.Days)
		argIdx++
	}
	if patch.Reason != nil {
		updates = append(updates, fmt.Sprintf("reason = $%d", argIdx))
		args = append(args, *patch.Reason)
		argIdx++
	}

	if len(updates) == 0 {
		return leave.LeaveRequest{}, fmt.Errorf("no updatable fields provided for leave request update")
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, patch.ID)

	query := "UPDATE leave_requests SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d", argIdx) +
		" RETURNING " + strings.ReplaceAll(leaveRequestColumns, "lr.", "")

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request %s: %w", patch.ID, err)
	}

	return lr, nil
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"lr.company_id = $1"}
	args := []interface{}{filter.CompanyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.LeaveType != nil && *filter.LeaveType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.leave_type = $%d", argIdx))
		args = append(args, *filter.LeaveType)
		argIdx++
	}

	// Window filter intersects the request's range with [start, end] rather
	// than requiring containment.
	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.end_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.start_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := "SELECT COUNT(*) FROM leave_requests lr WHERE " + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	var orderBy string
	switch filter.SortBy {
	case "start_date":
		orderBy = "lr.start_date"
	case "end_date":
		orderBy = "lr.end_date"
	case "status":
		orderBy = "lr.status"
	default:
		orderBy = "lr.submitted_date"
	}
	if strings.ToLower(filter.SortOrder) == "asc" {
		orderBy += " ASC"
	} else {
		orderBy += " DESC"
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, whereClause, orderBy, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, total, nil
}

// UpdateStatus guards the state machine in the UPDATE itself: the row is only
// written while still pending, so concurrent transitions cannot both win.
func (r *leaveRequestRepositoryImpl) UpdateStatus(
	ctx context.Context,
	id string,
	status leave.LeaveRequestStatus,
	actorID string,
	comments *string,
	at time.Time,
) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_date = $4, comments = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + strings.ReplaceAll(leaveRequestColumns, "lr.", "")

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, status, actorID, at, comments))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, r.classifyMissedUpdate(ctx, id, leave.ErrLeaveAlreadyProcessed)
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to transition leave request %s: %w", id, err)
	}

	return lr, nil
}

func (r *leaveRequestRepositoryImpl) UpdateManagerAction(
	ctx context.Context,
	id string,
	action leave.ManagerAction,
	managerID string,
	comment *string,
	at time.Time,
) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET manager_action = $2, reporting_manager = $3, manager_action_date = $4, manager_comment = $5, updated_at = NOW()
		WHERE id = $1 AND manager_action = 'pending'
		RETURNING ` + strings.ReplaceAll(leaveRequestColumns, "lr.", "")

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, action, managerID, at, comment))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, r.classifyMissedUpdate(ctx, id, leave.ErrManagerActionRecorded)
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to record manager action on %s: %w", id, err)
	}

	return lr, nil
}

// classifyMissedUpdate tells apart "no such row" from "row exists but the
// guard refused it" after a conditional UPDATE matched nothing.
func (r *leaveRequestRepositoryImpl) classifyMissedUpdate(ctx context.Context, id string, processed error) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return leave.ErrLeaveRequestNotFound
	}
	return processed
}
