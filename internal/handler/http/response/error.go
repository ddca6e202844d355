package response

import (
	"errors"
	"net/http"

	"github.com/peoplecore/leave-engine-go/internal/domain/leave"
	"github.com/peoplecore/leave-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Overlap conflicts carry the clashing range for the caller to display.
	var conflictErr *leave.ConflictError
	if errors.As(err, &conflictErr) {
		Conflict(w, "Leave request overlaps an existing request", map[string]string{
			"conflicting_id": conflictErr.ConflictingID,
			"start_date":     conflictErr.StartDate.Format("2006-01-02"),
			"end_date":       conflictErr.EndDate.Format("2006-01-02"),
		})
		return
	}

	switch {
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed", nil)
	case errors.Is(err, leave.ErrManagerActionRecorded):
		Conflict(w, "Manager action already recorded", nil)
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
