package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/core/claims"
)

const (
	studentKey = "student_id"
	roleKey    = "student_role"
)

// LoadAndSave adapts the scs session middleware to the web.Handler
// signature used across the API.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			sh := session.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}))

			sh.ServeHTTP(w, r)
			return err
		}
		return h
	}
	return m
}

// Authenticate rejects requests that don't carry a logged-in session
// and attaches the session's claims to the context otherwise.
func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			studentID := session.GetString(ctx, studentKey)
			if studentID == "" {
				return weberr.NotAuthorized(errors.New("student not authenticated"))
			}

			clm := claims.Claims{
				StudentID: studentID,
				Role:      session.GetString(ctx, roleKey),
			}

			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}

// Admin allows only sessions carrying the admin role through.
func Admin(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			studentID := session.GetString(ctx, studentKey)
			role := session.GetString(ctx, roleKey)

			if studentID == "" || role != claims.RoleAdmin {
				return weberr.NotAuthorized(errors.New("restricted to administrators"))
			}

			clm := claims.Claims{StudentID: studentID, Role: role}
			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}
