package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotFound       = errors.New("student not found")
	ErrDuplicateEmail = errors.New("email address already registered")
)

const uniqueViolation = "23505"

func Create(ctx context.Context, db sqlx.ExtContext, s Student) error {
	const q = `
	INSERT INTO students
		(student_id, first_name, last_name, email, password_hash, role, created_at, updated_at)
	VALUES
		(:student_id, :first_name, :last_name, :email, :password_hash, :role, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, s); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("inserting student: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, studentID string) (Student, error) {
	const q = `SELECT * FROM students WHERE student_id = $1`

	var s Student
	if err := sqlx.GetContext(ctx, db, &s, q, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, ErrNotFound
		}
		return Student{}, fmt.Errorf("selecting student[%s]: %w", studentID, err)
	}

	return s, nil
}

// FetchByEmail looks up a student by exact email match. Emails are
// compared case-sensitively, as stored.
func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (Student, error) {
	const q = `SELECT * FROM students WHERE email = $1`

	var s Student
	if err := sqlx.GetContext(ctx, db, &s, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, ErrNotFound
		}
		return Student{}, fmt.Errorf("selecting student by email: %w", err)
	}

	return s, nil
}
