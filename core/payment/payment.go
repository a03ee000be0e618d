package payment

import "time"

type Status string

const (
	Completed Status = "completed"
	Pending   Status = "pending"
	Failed    Status = "failed"
)

// Payment is an append-only record of a charge confirmed by the
// external gateway. Only completed payments unlock paid enrollments;
// the ledger itself never updates or deletes rows.
type Payment struct {
	ID        string    `json:"id" db:"payment_id"`
	StudentID string    `json:"studentId" db:"student_id"`
	CourseID  string    `json:"courseId" db:"course_id"`
	OrderID   string    `json:"orderId" db:"order_id"`
	Amount    int       `json:"amount" db:"amount"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
