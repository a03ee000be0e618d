package progress

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/core/claims"
	"github.com/brightpath/academy/core/enrollment"
	"github.com/brightpath/academy/validate"
	"github.com/jmoiron/sqlx"
)

// HandleMarkComplete records a lesson completion and returns the
// updated enrollment.
func HandleMarkComplete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("student not authenticated"))
		}

		enrollmentID := web.Param(r, "id")
		if err := validate.CheckID(enrollmentID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed enrollment ID is not valid: %w", err))
		}

		lessonID := web.Param(r, "lesson_id")
		if err := validate.CheckID(lessonID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed lesson ID is not valid: %w", err))
		}

		e, err := MarkComplete(ctx, db, clm.StudentID, enrollmentID, lessonID)
		if err != nil {
			switch {
			case errors.Is(err, enrollment.ErrNotFound):
				return weberr.NotFound(err)
			case errors.Is(err, ErrNotOwner):
				return weberr.NotAuthorized(err)
			case errors.Is(err, ErrLessonNotInCourse):
				return weberr.Unprocessable(err, ErrLessonNotInCourse.Error())
			}
			return err
		}

		return web.Respond(ctx, w, e, http.StatusOK)
	}
}

// HandleList returns the per-lesson completion rows of an enrollment.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		enrollmentID := web.Param(r, "id")
		if err := validate.CheckID(enrollmentID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed enrollment ID is not valid: %w", err))
		}

		e, err := enrollment.Fetch(ctx, db, enrollmentID)
		if err != nil {
			if errors.Is(err, enrollment.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching enrollment[%s]: %w", enrollmentID, err)
		}

		if !claims.IsStudent(ctx, e.StudentID) && !claims.IsAdmin(ctx) {
			return weberr.NotAuthorized(errors.New("students can only access their own progress"))
		}

		lps, err := List(ctx, db, enrollmentID)
		if err != nil {
			return fmt.Errorf("listing progress of enrollment[%s]: %w", enrollmentID, err)
		}

		return web.Respond(ctx, w, lps, http.StatusOK)
	}
}
