package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/core/claims"
	"github.com/jmoiron/sqlx"
)

// HandleList returns the authenticated student's payment history.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("student not authenticated"))
		}

		ps, err := ListByStudent(ctx, db, clm.StudentID)
		if err != nil {
			return fmt.Errorf("listing payments of student[%s]: %w", clm.StudentID, err)
		}

		return web.Respond(ctx, w, ps, http.StatusOK)
	}
}
