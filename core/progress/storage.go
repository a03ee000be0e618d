package progress

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Upsert records a completion unless one is already present, and
// reports whether a new row was actually written.
func Upsert(ctx context.Context, db sqlx.ExtContext, lp LessonProgress) (bool, error) {
	const q = `
	INSERT INTO lesson_progress
		(enrollment_id, lesson_id, completed, completed_at, created_at)
	VALUES
		(:enrollment_id, :lesson_id, :completed, :completed_at, :created_at)
	ON CONFLICT (enrollment_id, lesson_id) DO NOTHING`

	res, err := sqlx.NamedExecContext(ctx, db, q, lp)
	if err != nil {
		return false, fmt.Errorf("inserting lesson progress: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inspecting lesson progress insert: %w", err)
	}

	return n > 0, nil
}

func List(ctx context.Context, db sqlx.ExtContext, enrollmentID string) ([]LessonProgress, error) {
	const q = `SELECT * FROM lesson_progress WHERE enrollment_id = $1 ORDER BY completed_at`

	lps := []LessonProgress{}
	if err := sqlx.SelectContext(ctx, db, &lps, q, enrollmentID); err != nil {
		return nil, fmt.Errorf("selecting progress of enrollment[%s]: %w", enrollmentID, err)
	}

	return lps, nil
}

// CountCompleted counts the completed lessons of an enrollment that
// still belong to the course. Lessons removed from the catalog stop
// counting, which keeps the percentage consistent with the current
// lesson set.
func CountCompleted(ctx context.Context, db sqlx.ExtContext, enrollmentID string, courseID string) (int, error) {
	const q = `
	SELECT COUNT(*)
	FROM lesson_progress lp
	JOIN lessons l ON l.lesson_id = lp.lesson_id
	JOIN modules m ON m.module_id = l.module_id
	WHERE lp.enrollment_id = $1 AND lp.completed AND m.course_id = $2`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, enrollmentID, courseID); err != nil {
		return 0, fmt.Errorf("counting completed lessons of enrollment[%s]: %w", enrollmentID, err)
	}

	return n, nil
}
