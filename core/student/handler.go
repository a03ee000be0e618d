package student

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/core/claims"
	"github.com/brightpath/academy/validate"
	"github.com/jmoiron/sqlx"
)

// HandleShowCurrent returns the student bound to the active session.
func HandleShowCurrent(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("student not authenticated"))
		}

		s, err := Fetch(ctx, db, clm.StudentID)
		if err != nil {
			return fmt.Errorf("fetching student[%s]: %w", clm.StudentID, err)
		}

		return web.Respond(ctx, w, s, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		studentID := web.Param(r, "id")
		if err := validate.CheckID(studentID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed student ID is not valid: %w", err))
		}

		if !claims.IsStudent(ctx, studentID) && !claims.IsAdmin(ctx) {
			return weberr.NotAuthorized(errors.New("students can only access their own record"))
		}

		s, err := Fetch(ctx, db, studentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching student[%s]: %w", studentID, err)
		}

		return web.Respond(ctx, w, s, http.StatusOK)
	}
}
