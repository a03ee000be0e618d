package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("enrollment not found")

// Create inserts the enrollment unless one already exists for the
// (student, course) pair. The unique constraint makes concurrent
// retries collapse onto a single row instead of racing.
func Create(ctx context.Context, db sqlx.ExtContext, e Enrollment) error {
	const q = `
	INSERT INTO enrollments
		(enrollment_id, student_id, course_id, status, progress_percent,
		certificate_issued, created_at, updated_at)
	VALUES
		(:enrollment_id, :student_id, :course_id, :status, :progress_percent,
		:certificate_issued, :created_at, :updated_at)
	ON CONFLICT (student_id, course_id) DO NOTHING`

	if _, err := sqlx.NamedExecContext(ctx, db, q, e); err != nil {
		return fmt.Errorf("inserting enrollment: %w", err)
	}

	return nil
}

// Update persists the mutable fields: status, progress, completion and
// certificate flags. The version guard catches lost updates from
// concurrent progress recomputations.
func Update(ctx context.Context, db sqlx.ExtContext, e Enrollment) error {
	const q = `
	UPDATE enrollments
	SET
		status = :status,
		progress_percent = :progress_percent,
		certificate_issued = :certificate_issued,
		completed_at = :completed_at,
		updated_at = :updated_at,
		version = version + 1
	WHERE
		enrollment_id = :enrollment_id AND version = :version`

	res, err := sqlx.NamedExecContext(ctx, db, q, e)
	if err != nil {
		return fmt.Errorf("updating enrollment[%s]: %w", e.ID, err)
	}

	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return fmt.Errorf("updating enrollment[%s]: version conflict", e.ID)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, enrollmentID string) (Enrollment, error) {
	const q = `SELECT * FROM enrollments WHERE enrollment_id = $1`

	var e Enrollment
	if err := sqlx.GetContext(ctx, db, &e, q, enrollmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Enrollment{}, ErrNotFound
		}
		return Enrollment{}, fmt.Errorf("selecting enrollment[%s]: %w", enrollmentID, err)
	}

	return e, nil
}

// FetchForUpdate locks the enrollment row for the rest of the
// transaction. Progress recomputation runs under this lock so two
// concurrent lesson completions cannot interleave their read-modify-
// write sequences.
func FetchForUpdate(ctx context.Context, tx sqlx.ExtContext, enrollmentID string) (Enrollment, error) {
	const q = `SELECT * FROM enrollments WHERE enrollment_id = $1 FOR UPDATE`

	var e Enrollment
	if err := sqlx.GetContext(ctx, tx, &e, q, enrollmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Enrollment{}, ErrNotFound
		}
		return Enrollment{}, fmt.Errorf("locking enrollment[%s]: %w", enrollmentID, err)
	}

	return e, nil
}

func FetchByStudentCourse(ctx context.Context, db sqlx.ExtContext, studentID string, courseID string) (Enrollment, error) {
	const q = `SELECT * FROM enrollments WHERE student_id = $1 AND course_id = $2`

	var e Enrollment
	if err := sqlx.GetContext(ctx, db, &e, q, studentID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Enrollment{}, ErrNotFound
		}
		return Enrollment{}, fmt.Errorf("selecting enrollment of student[%s] in course[%s]: %w", studentID, courseID, err)
	}

	return e, nil
}

func ListByStudent(ctx context.Context, db sqlx.ExtContext, studentID string) ([]Enrollment, error) {
	const q = `SELECT * FROM enrollments WHERE student_id = $1 ORDER BY created_at`

	es := []Enrollment{}
	if err := sqlx.SelectContext(ctx, db, &es, q, studentID); err != nil {
		return nil, fmt.Errorf("selecting enrollments of student[%s]: %w", studentID, err)
	}

	return es, nil
}

func ListByCourse(ctx context.Context, db sqlx.ExtContext, courseID string) ([]Enrollment, error) {
	const q = `SELECT * FROM enrollments WHERE course_id = $1 ORDER BY created_at`

	es := []Enrollment{}
	if err := sqlx.SelectContext(ctx, db, &es, q, courseID); err != nil {
		return nil, fmt.Errorf("selecting enrollments of course[%s]: %w", courseID, err)
	}

	return es, nil
}
