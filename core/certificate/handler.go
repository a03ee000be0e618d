package certificate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/core/claims"
	"github.com/brightpath/academy/core/enrollment"
	"github.com/brightpath/academy/database"
	"github.com/brightpath/academy/validate"
	"github.com/jmoiron/sqlx"
)

// HandleIssue flips the certificate flag of a completed enrollment.
// Issuing an already issued certificate is accepted and changes
// nothing; issuing for a non-completed enrollment is rejected.
func HandleIssue(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("student not authenticated"))
		}

		enrollmentID := web.Param(r, "id")
		if err := validate.CheckID(enrollmentID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed enrollment ID is not valid: %w", err))
		}

		var e enrollment.Enrollment
		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			e, err = enrollment.FetchForUpdate(ctx, tx, enrollmentID)
			if err != nil {
				return err
			}

			if e.StudentID != clm.StudentID && !claims.IsAdmin(ctx) {
				return weberr.NotAuthorized(errors.New("students can only certify their own enrollments"))
			}

			if !Eligible(e) {
				err := errors.New("enrollment is not completed")
				return weberr.Unprocessable(err, err.Error())
			}

			if !Issue(&e) {
				return nil
			}

			e.UpdatedAt = time.Now().UTC()
			if err := enrollment.Update(ctx, tx, e); err != nil {
				return err
			}

			e.Version++
			return nil
		})

		if err != nil {
			if errors.Is(err, enrollment.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, e, http.StatusOK)
	}
}
