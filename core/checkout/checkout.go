package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/core/enrollment"
	"github.com/brightpath/academy/core/payment"
	"github.com/brightpath/academy/database"
	"github.com/jmoiron/sqlx"
)

type CheckoutNew struct {
	CourseID string `json:"courseId" validate:"required,uuid4"`
}

// pick validates that the course can actually be checked out: it must
// exist and carry a price. Free courses go through the free enrollment
// path instead.
func pick(ctx context.Context, db *sqlx.DB, courseID string) (course.Course, error) {
	c, err := course.Fetch(ctx, db, courseID)
	if err != nil {
		return course.Course{}, err
	}

	if c.Price == 0 {
		return course.Course{}, errFreeCourse
	}

	return c, nil
}

var errFreeCourse = errors.New("course is free, no checkout needed")

// prepare appends a pending payment bound to the provider's order so
// the capture step can recover the (student, course, amount) triple.
func prepare(ctx context.Context, db *sqlx.DB, studentID string, orderID string, c course.Course) error {
	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		_, err := payment.RecordPending(ctx, tx, studentID, c.ID, orderID, c.Price)
		return err
	})

	if err != nil {
		return fmt.Errorf("preparing payment bound to order[%s] for student[%s]: %w", orderID, studentID, err)
	}
	return nil
}

// fulfill runs once the gateway confirms the charge: it appends the
// completed payment to the ledger and enrolls the student. The ledger
// stays append-only; the pending row is left behind as history.
func fulfill(ctx context.Context, db *sqlx.DB, orderID string) error {
	pend, err := payment.FetchByOrder(ctx, db, orderID, payment.Pending)
	if err != nil {
		return fmt.Errorf("fetching the payment bound to order[%s]: %w", orderID, err)
	}

	done, err := payment.Record(ctx, db, pend.StudentID, pend.CourseID, orderID, pend.Amount)
	if err != nil {
		return fmt.Errorf("recording completed payment for order[%s]: %w", orderID, err)
	}

	if _, err := enrollment.EnrollPaid(ctx, db, done.StudentID, done.CourseID, done.ID, done.OrderID); err != nil {
		return fmt.Errorf("enrolling student[%s] after payment[%s]: %w", done.StudentID, done.ID, err)
	}

	return nil
}
