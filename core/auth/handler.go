package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/core/claims"
	"github.com/brightpath/academy/core/student"
	"github.com/brightpath/academy/rate"
	"github.com/brightpath/academy/validate"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func HandleSignup(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var su student.StudentSignup
		if err := web.Decode(w, r, &su); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(su); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("generating password hash: %w", err)
		}

		now := time.Now().UTC()
		s := student.Student{
			ID:           validate.GenerateID(),
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			Email:        su.Email,
			PasswordHash: hash,
			Role:         claims.RoleStudent,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := student.Create(ctx, db, s); err != nil {
			if errors.Is(err, student.ErrDuplicateEmail) {
				return weberr.Unprocessable(err, err.Error())
			}
			return fmt.Errorf("creating student: %w", err)
		}

		if err := login(ctx, session, s); err != nil {
			return fmt.Errorf("opening session for student[%s]: %w", s.ID, err)
		}

		return web.Respond(ctx, w, s, http.StatusCreated)
	}
}

func HandleLogin(db *sqlx.DB, session *scs.SessionManager, limiter *rate.Limiter) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		}
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		if !limiter.Allow(in.Email) {
			err := errors.New("too many login attempts")
			return weberr.NewError(err, err.Error(), http.StatusTooManyRequests)
		}

		s, err := student.FetchByEmail(ctx, db, in.Email)
		if err != nil {
			if errors.Is(err, student.ErrNotFound) {
				return weberr.NotAuthorized(errors.New("invalid credentials"))
			}
			return fmt.Errorf("fetching student by email: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(in.Password)); err != nil {
			return weberr.NotAuthorized(errors.New("invalid credentials"))
		}

		if err := login(ctx, session, s); err != nil {
			return fmt.Errorf("opening session for student[%s]: %w", s.ID, err)
		}

		return web.Respond(ctx, w, s, http.StatusOK)
	}
}

func HandleLogout(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// login binds the student to a fresh session token. The pre-login
// token must not survive authentication.
func login(ctx context.Context, session *scs.SessionManager, s student.Student) error {
	if err := session.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}

	session.Put(ctx, studentKey, s.ID)
	session.Put(ctx, roleKey, s.Role)
	return nil
}
