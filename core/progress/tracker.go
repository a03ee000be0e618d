package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightpath/academy/core/certificate"
	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/core/enrollment"
	"github.com/brightpath/academy/database"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrLessonNotInCourse is returned when the lesson does not belong
	// to the enrollment's course. Nothing is mutated in that case.
	ErrLessonNotInCourse = errors.New("lesson does not belong to the enrolled course")

	// ErrNotOwner is returned when a student touches an enrollment that
	// is not theirs.
	ErrNotOwner = errors.New("enrollment belongs to another student")
)

// MarkComplete records the completion of a lesson under an enrollment
// and recomputes the enrollment's aggregate progress from scratch. The
// whole sequence runs in a single transaction holding a lock on the
// enrollment row, so concurrent completions for the same enrollment
// serialize instead of racing.
//
// Re-completing a lesson is a no-op. Reaching 100% promotes the
// enrollment to completed, stamps completed_at once and issues the
// certificate. Completed is terminal: later catalog growth never
// demotes the enrollment or its percentage.
func MarkComplete(ctx context.Context, db *sqlx.DB, studentID, enrollmentID, lessonID string) (enrollment.Enrollment, error) {
	var e enrollment.Enrollment

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		var err error
		e, err = enrollment.FetchForUpdate(ctx, tx, enrollmentID)
		if err != nil {
			return err
		}

		if e.StudentID != studentID {
			return ErrNotOwner
		}

		ok, err := course.LessonInCourse(ctx, tx, lessonID, e.CourseID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrLessonNotInCourse
		}

		now := time.Now().UTC()
		lp := LessonProgress{
			EnrollmentID: enrollmentID,
			LessonID:     lessonID,
			Completed:    true,
			CompletedAt:  now,
			CreatedAt:    now,
		}

		inserted, err := Upsert(ctx, tx, lp)
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}

		if e.Status == enrollment.Completed {
			return nil
		}

		total, err := course.CountLessons(ctx, tx, e.CourseID)
		if err != nil {
			return err
		}

		completed, err := CountCompleted(ctx, tx, enrollmentID, e.CourseID)
		if err != nil {
			return err
		}

		e.ProgressPercent = Percent(completed, total)
		if e.ProgressPercent == 100 {
			e.Status = enrollment.Completed
			if e.CompletedAt == nil {
				e.CompletedAt = &now
			}
			certificate.Issue(&e)
		}
		e.UpdatedAt = now

		if err := enrollment.Update(ctx, tx, e); err != nil {
			return err
		}

		e.Version++
		return nil
	})

	if err != nil {
		return enrollment.Enrollment{}, fmt.Errorf("marking lesson[%s] complete for enrollment[%s]: %w", lessonID, enrollmentID, err)
	}

	return e, nil
}
