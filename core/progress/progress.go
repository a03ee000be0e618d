package progress

import "time"

// LessonProgress marks one lesson as completed under one enrollment.
// The (enrollment, lesson) pair is the primary key, so recording the
// same completion twice leaves a single row.
type LessonProgress struct {
	EnrollmentID string    `json:"enrollmentId" db:"enrollment_id"`
	LessonID     string    `json:"lessonId" db:"lesson_id"`
	Completed    bool      `json:"completed" db:"completed"`
	CompletedAt  time.Time `json:"completedAt" db:"completed_at"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Percent derives the progress percentage from completion counts,
// rounding half up. A course with no lessons yields zero rather than a
// division by zero.
func Percent(completed int, total int) int {
	if total <= 0 {
		return 0
	}

	pct := (100*completed + total/2) / total
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
