package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("course not found")

	// ErrHasEnrollments is returned when deleting a course that students
	// are enrolled in. Enrollment history outlives catalog cleanups, so
	// the delete is rejected instead of cascading.
	ErrHasEnrollments = errors.New("course has enrollments")
)

const foreignKeyViolation = "23503"

func Create(ctx context.Context, db sqlx.ExtContext, c Course) error {
	const q = `
	INSERT INTO courses
		(course_id, title, description, duration, level, instructor, instructor_bio,
		image_url, price, published, featured, category, created_at, updated_at)
	VALUES
		(:course_id, :title, :description, :duration, :level, :instructor, :instructor_bio,
		:image_url, :price, :published, :featured, :category, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, c); err != nil {
		return fmt.Errorf("inserting course: %w", err)
	}

	return nil
}

func Update(ctx context.Context, db sqlx.ExtContext, c Course) error {
	const q = `
	UPDATE courses
	SET
		title = :title,
		description = :description,
		duration = :duration,
		level = :level,
		instructor = :instructor,
		instructor_bio = :instructor_bio,
		image_url = :image_url,
		price = :price,
		published = :published,
		featured = :featured,
		category = :category,
		updated_at = :updated_at,
		version = version + 1
	WHERE
		course_id = :course_id AND version = :version`

	res, err := sqlx.NamedExecContext(ctx, db, q, c)
	if err != nil {
		return fmt.Errorf("updating course[%s]: %w", c.ID, err)
	}

	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return fmt.Errorf("updating course[%s]: version conflict", c.ID)
	}

	return nil
}

// Delete removes a course together with its modules and lessons.
// Deleting a course with zero children is not an error; deleting a
// course with live enrollments fails with ErrHasEnrollments.
func Delete(ctx context.Context, db sqlx.ExtContext, courseID string) error {
	const q = `DELETE FROM courses WHERE course_id = $1`

	res, err := db.ExecContext(ctx, q, courseID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return ErrHasEnrollments
		}
		return fmt.Errorf("deleting course[%s]: %w", courseID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, courseID string) (Course, error) {
	const q = `SELECT * FROM courses WHERE course_id = $1`

	var c Course
	if err := sqlx.GetContext(ctx, db, &c, q, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, ErrNotFound
		}
		return Course{}, fmt.Errorf("selecting course[%s]: %w", courseID, err)
	}

	return c, nil
}

func List(ctx context.Context, db sqlx.ExtContext, publishedOnly bool) ([]Course, error) {
	q := `SELECT * FROM courses ORDER BY created_at`
	if publishedOnly {
		q = `SELECT * FROM courses WHERE published ORDER BY created_at`
	}

	cs := []Course{}
	if err := sqlx.SelectContext(ctx, db, &cs, q); err != nil {
		return nil, fmt.Errorf("selecting courses: %w", err)
	}

	return cs, nil
}

// FetchBundle returns a course with its modules and lessons attached,
// both ordered by sort_order with creation order breaking ties.
func FetchBundle(ctx context.Context, db sqlx.ExtContext, courseID string) (Course, error) {
	c, err := Fetch(ctx, db, courseID)
	if err != nil {
		return Course{}, err
	}

	mods, err := ListModules(ctx, db, courseID)
	if err != nil {
		return Course{}, err
	}

	for i, m := range mods {
		les, err := ListLessons(ctx, db, m.ID)
		if err != nil {
			return Course{}, err
		}
		mods[i].Lessons = les
	}

	c.Modules = mods
	return c, nil
}

func CreateModule(ctx context.Context, db sqlx.ExtContext, m Module) error {
	const q = `
	INSERT INTO modules
		(module_id, course_id, title, description, sort_order, created_at, updated_at)
	VALUES
		(:module_id, :course_id, :title, :description, :sort_order, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, m); err != nil {
		return fmt.Errorf("inserting module: %w", err)
	}

	return nil
}

func UpdateModule(ctx context.Context, db sqlx.ExtContext, m Module) error {
	const q = `
	UPDATE modules
	SET
		title = :title,
		description = :description,
		sort_order = :sort_order,
		updated_at = :updated_at
	WHERE
		module_id = :module_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, m); err != nil {
		return fmt.Errorf("updating module[%s]: %w", m.ID, err)
	}

	return nil
}

// DeleteModule removes a module together with its lessons. Deleting a
// module that has no lessons is not an error.
func DeleteModule(ctx context.Context, db sqlx.ExtContext, moduleID string) error {
	const q = `DELETE FROM modules WHERE module_id = $1`

	res, err := db.ExecContext(ctx, q, moduleID)
	if err != nil {
		return fmt.Errorf("deleting module[%s]: %w", moduleID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func FetchModule(ctx context.Context, db sqlx.ExtContext, moduleID string) (Module, error) {
	const q = `SELECT * FROM modules WHERE module_id = $1`

	var m Module
	if err := sqlx.GetContext(ctx, db, &m, q, moduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Module{}, ErrNotFound
		}
		return Module{}, fmt.Errorf("selecting module[%s]: %w", moduleID, err)
	}

	return m, nil
}

func ListModules(ctx context.Context, db sqlx.ExtContext, courseID string) ([]Module, error) {
	const q = `SELECT * FROM modules WHERE course_id = $1 ORDER BY sort_order, created_at`

	ms := []Module{}
	if err := sqlx.SelectContext(ctx, db, &ms, q, courseID); err != nil {
		return nil, fmt.Errorf("selecting modules of course[%s]: %w", courseID, err)
	}

	return ms, nil
}

func CreateLesson(ctx context.Context, db sqlx.ExtContext, l Lesson) error {
	const q = `
	INSERT INTO lessons
		(lesson_id, module_id, title, lesson_type, content, video_url, duration,
		sort_order, preview, created_at, updated_at)
	VALUES
		(:lesson_id, :module_id, :title, :lesson_type, :content, :video_url, :duration,
		:sort_order, :preview, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, l); err != nil {
		return fmt.Errorf("inserting lesson: %w", err)
	}

	return nil
}

func UpdateLesson(ctx context.Context, db sqlx.ExtContext, l Lesson) error {
	const q = `
	UPDATE lessons
	SET
		title = :title,
		lesson_type = :lesson_type,
		content = :content,
		video_url = :video_url,
		duration = :duration,
		sort_order = :sort_order,
		preview = :preview,
		updated_at = :updated_at
	WHERE
		lesson_id = :lesson_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, l); err != nil {
		return fmt.Errorf("updating lesson[%s]: %w", l.ID, err)
	}

	return nil
}

func DeleteLesson(ctx context.Context, db sqlx.ExtContext, lessonID string) error {
	const q = `DELETE FROM lessons WHERE lesson_id = $1`

	res, err := db.ExecContext(ctx, q, lessonID)
	if err != nil {
		return fmt.Errorf("deleting lesson[%s]: %w", lessonID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func FetchLesson(ctx context.Context, db sqlx.ExtContext, lessonID string) (Lesson, error) {
	const q = `SELECT * FROM lessons WHERE lesson_id = $1`

	var l Lesson
	if err := sqlx.GetContext(ctx, db, &l, q, lessonID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lesson{}, ErrNotFound
		}
		return Lesson{}, fmt.Errorf("selecting lesson[%s]: %w", lessonID, err)
	}

	return l, nil
}

func ListLessons(ctx context.Context, db sqlx.ExtContext, moduleID string) ([]Lesson, error) {
	const q = `SELECT * FROM lessons WHERE module_id = $1 ORDER BY sort_order, created_at`

	ls := []Lesson{}
	if err := sqlx.SelectContext(ctx, db, &ls, q, moduleID); err != nil {
		return nil, fmt.Errorf("selecting lessons of module[%s]: %w", moduleID, err)
	}

	return ls, nil
}

// CountLessons returns the number of lessons across all modules of a
// course. Progress percentages are always derived from this count at
// call time.
func CountLessons(ctx context.Context, db sqlx.ExtContext, courseID string) (int, error) {
	const q = `
	SELECT COUNT(*)
	FROM lessons l
	JOIN modules m ON m.module_id = l.module_id
	WHERE m.course_id = $1`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, courseID); err != nil {
		return 0, fmt.Errorf("counting lessons of course[%s]: %w", courseID, err)
	}

	return n, nil
}

// LessonInCourse reports whether the lesson belongs to one of the
// course's modules.
func LessonInCourse(ctx context.Context, db sqlx.ExtContext, lessonID string, courseID string) (bool, error) {
	const q = `
	SELECT COUNT(*)
	FROM lessons l
	JOIN modules m ON m.module_id = l.module_id
	WHERE l.lesson_id = $1 AND m.course_id = $2`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, lessonID, courseID); err != nil {
		return false, fmt.Errorf("matching lesson[%s] against course[%s]: %w", lessonID, courseID, err)
	}

	return n > 0, nil
}
