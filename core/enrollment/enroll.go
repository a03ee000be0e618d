package enrollment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/core/payment"
	"github.com/brightpath/academy/database"
	"github.com/brightpath/academy/validate"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrCourseNotFree is returned when the free path is attempted on a
	// priced course.
	ErrCourseNotFree = errors.New("course requires payment")

	// ErrPaymentNotVerified is returned when no completed payment
	// covering the course price matches the passed identifiers.
	ErrPaymentNotVerified = errors.New("payment could not be verified")
)

// EnrollFree enrolls the student in a course priced at zero. Calling it
// for an already enrolled pair is a no-op that returns the existing
// record: the insert collapses on the unique (student, course) key and
// the row is read back afterwards.
func EnrollFree(ctx context.Context, db *sqlx.DB, studentID string, courseID string) (Enrollment, error) {
	c, err := course.Fetch(ctx, db, courseID)
	if err != nil {
		return Enrollment{}, err
	}

	if c.Price != 0 {
		return Enrollment{}, ErrCourseNotFree
	}

	return enroll(ctx, db, studentID, courseID)
}

// EnrollPaid enrolls the student in a paid course after verifying the
// referenced payment: it must be completed, belong to the same
// (student, course) pair and cover the course price. Like EnrollFree it
// is idempotent; a second call with a different payment leaves the
// existing enrollment untouched while the payment stays on the ledger.
func EnrollPaid(ctx context.Context, db *sqlx.DB, studentID, courseID, paymentID, orderID string) (Enrollment, error) {
	c, err := course.Fetch(ctx, db, courseID)
	if err != nil {
		return Enrollment{}, err
	}

	p, err := payment.FetchCompleted(ctx, db, studentID, courseID, paymentID, orderID)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			return Enrollment{}, ErrPaymentNotVerified
		}
		return Enrollment{}, fmt.Errorf("verifying payment[%s]: %w", paymentID, err)
	}

	if p.Amount < c.Price {
		return Enrollment{}, ErrPaymentNotVerified
	}

	return enroll(ctx, db, studentID, courseID)
}

func enroll(ctx context.Context, db *sqlx.DB, studentID string, courseID string) (Enrollment, error) {
	now := time.Now().UTC()
	e := Enrollment{
		ID:              validate.GenerateID(),
		StudentID:       studentID,
		CourseID:        courseID,
		Status:          Active,
		ProgressPercent: 0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		return Create(ctx, tx, e)
	})
	if err != nil {
		return Enrollment{}, fmt.Errorf("enrolling student[%s] in course[%s]: %w", studentID, courseID, err)
	}

	// Read back the surviving row: either the one just inserted or the
	// pre-existing one the conflict clause preserved.
	e, err = FetchByStudentCourse(ctx, db, studentID, courseID)
	if err != nil {
		return Enrollment{}, fmt.Errorf("fetching enrollment of student[%s] in course[%s]: %w", studentID, courseID, err)
	}

	return e, nil
}
