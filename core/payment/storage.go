package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brightpath/academy/validate"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("payment not found")

func Create(ctx context.Context, db sqlx.ExtContext, p Payment) error {
	const q = `
	INSERT INTO payments
		(payment_id, student_id, course_id, order_id, amount, status, created_at)
	VALUES
		(:payment_id, :student_id, :course_id, :order_id, :amount, :status, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, p); err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	return nil
}

// Record appends a completed payment to the ledger. The gateway has
// already confirmed the charge by the time this runs; no processing
// logic lives here.
func Record(ctx context.Context, db sqlx.ExtContext, studentID, courseID, orderID string, amount int) (Payment, error) {
	return record(ctx, db, studentID, courseID, orderID, amount, Completed)
}

// RecordPending appends a pending payment bound to a provider order.
// It is never consumed by the enrollment ledger, only by the capture
// step that needs to recover the checkout details.
func RecordPending(ctx context.Context, db sqlx.ExtContext, studentID, courseID, orderID string, amount int) (Payment, error) {
	return record(ctx, db, studentID, courseID, orderID, amount, Pending)
}

func record(ctx context.Context, db sqlx.ExtContext, studentID, courseID, orderID string, amount int, status Status) (Payment, error) {
	p := Payment{
		ID:        validate.GenerateID(),
		StudentID: studentID,
		CourseID:  courseID,
		OrderID:   orderID,
		Amount:    amount,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	if err := Create(ctx, db, p); err != nil {
		return Payment{}, err
	}

	return p, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, paymentID string) (Payment, error) {
	const q = `SELECT * FROM payments WHERE payment_id = $1`

	var p Payment
	if err := sqlx.GetContext(ctx, db, &p, q, paymentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, fmt.Errorf("selecting payment[%s]: %w", paymentID, err)
	}

	return p, nil
}

// FetchCompleted returns the completed payment matching the passed
// identifiers, or ErrNotFound when no such payment exists.
func FetchCompleted(ctx context.Context, db sqlx.ExtContext, studentID, courseID, paymentID, orderID string) (Payment, error) {
	const q = `
	SELECT * FROM payments
	WHERE payment_id = $1 AND order_id = $2 AND student_id = $3 AND course_id = $4 AND status = $5`

	var p Payment
	if err := sqlx.GetContext(ctx, db, &p, q, paymentID, orderID, studentID, courseID, Completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, fmt.Errorf("selecting completed payment[%s]: %w", paymentID, err)
	}

	return p, nil
}

// FetchByOrder returns the newest payment with the given provider
// order identifier and status.
func FetchByOrder(ctx context.Context, db sqlx.ExtContext, orderID string, status Status) (Payment, error) {
	const q = `
	SELECT * FROM payments
	WHERE order_id = $1 AND status = $2
	ORDER BY created_at DESC LIMIT 1`

	var p Payment
	if err := sqlx.GetContext(ctx, db, &p, q, orderID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, fmt.Errorf("selecting payment of order[%s]: %w", orderID, err)
	}

	return p, nil
}

func ListByStudent(ctx context.Context, db sqlx.ExtContext, studentID string) ([]Payment, error) {
	const q = `SELECT * FROM payments WHERE student_id = $1 ORDER BY created_at`

	ps := []Payment{}
	if err := sqlx.SelectContext(ctx, db, &ps, q, studentID); err != nil {
		return nil, fmt.Errorf("selecting payments of student[%s]: %w", studentID, err)
	}

	return ps, nil
}
