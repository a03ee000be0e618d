package claims

import (
	"context"
	"errors"
)

const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// Claims is the session identity attached to the request context by the
// auth middleware. Every operation acting on a student record receives
// it explicitly instead of reading ambient state.
type Claims struct {
	StudentID string
	Role      string
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func Get(ctx context.Context) (Claims, error) {
	v, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{}, errors.New("claim value missing from context")
	}
	return v, nil
}

func IsAdmin(ctx context.Context) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.Role == RoleAdmin
}

func IsStudent(ctx context.Context, id string) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.StudentID == id
}
