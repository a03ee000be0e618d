package enrollment

import "time"

type Status string

const (
	// Active is the state of a freshly created enrollment. It lasts
	// until every lesson of the course has been completed.
	Active Status = "active"

	// Completed is terminal. Once a student reaches 100% progress the
	// enrollment stays completed even if the course later grows.
	Completed Status = "completed"
)

// Enrollment links one student to one course. At most one row exists
// per (student, course) pair; enroll operations are idempotent against
// the existing row.
type Enrollment struct {
	ID                string     `json:"id" db:"enrollment_id"`
	StudentID         string     `json:"studentId" db:"student_id"`
	CourseID          string     `json:"courseId" db:"course_id"`
	Status            Status     `json:"status" db:"status"`
	ProgressPercent   int        `json:"progressPercent" db:"progress_percent"`
	CertificateIssued bool       `json:"certificateIssued" db:"certificate_issued"`
	CompletedAt       *time.Time `json:"completedAt" db:"completed_at"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
	Version           int        `json:"-" db:"version"`
}

type EnrollmentNew struct {
	CourseID string `json:"courseId" validate:"required,uuid4"`
}
