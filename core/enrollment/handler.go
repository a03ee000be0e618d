package enrollment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/core/claims"
	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/validate"
	"github.com/jmoiron/sqlx"
)

// HandleEnrollFree enrolls the authenticated student in a free course.
func HandleEnrollFree(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("student not authenticated"))
		}

		var en EnrollmentNew
		if err := web.Decode(w, r, &en); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(en); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		e, err := EnrollFree(ctx, db, clm.StudentID, en.CourseID)
		if err != nil {
			switch {
			case errors.Is(err, course.ErrNotFound):
				return weberr.NotFound(err)
			case errors.Is(err, ErrCourseNotFree):
				return weberr.Unprocessable(err, err.Error())
			}
			return fmt.Errorf("enrolling in course[%s]: %w", en.CourseID, err)
		}

		return web.Respond(ctx, w, e, http.StatusCreated)
	}
}

// HandleList returns the authenticated student's enrollments.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("student not authenticated"))
		}

		es, err := ListByStudent(ctx, db, clm.StudentID)
		if err != nil {
			return fmt.Errorf("listing enrollments of student[%s]: %w", clm.StudentID, err)
		}

		return web.Respond(ctx, w, es, http.StatusOK)
	}
}

// HandleListByCourse returns every enrollment of a course. Admin
// reporting only.
func HandleListByCourse(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID := web.Param(r, "course_id")
		if err := validate.CheckID(courseID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed course ID is not valid: %w", err))
		}

		es, err := ListByCourse(ctx, db, courseID)
		if err != nil {
			return fmt.Errorf("listing enrollments of course[%s]: %w", courseID, err)
		}

		return web.Respond(ctx, w, es, http.StatusOK)
	}
}

// HandleShow returns a single enrollment. Students can only read their
// own record; admins can read any.
func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		enrollmentID := web.Param(r, "id")
		if err := validate.CheckID(enrollmentID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed enrollment ID is not valid: %w", err))
		}

		e, err := Fetch(ctx, db, enrollmentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching enrollment[%s]: %w", enrollmentID, err)
		}

		if !claims.IsStudent(ctx, e.StudentID) && !claims.IsAdmin(ctx) {
			return weberr.NotAuthorized(errors.New("students can only access their own enrollments"))
		}

		return web.Respond(ctx, w, e, http.StatusOK)
	}
}

// HandleShowLessonFree returns the content of preview lessons without
// requiring an enrollment, or a session at all.
func HandleShowLessonFree(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		lessonID := web.Param(r, "id")
		if err := validate.CheckID(lessonID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed lesson ID is not valid: %w", err))
		}

		l, err := course.FetchLesson(ctx, db, lessonID)
		if err != nil {
			if errors.Is(err, course.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching lesson[%s]: %w", lessonID, err)
		}

		if !l.Preview {
			return weberr.NotAuthorized(errors.New("lesson requires enrollment"))
		}

		return web.Respond(ctx, w, l, http.StatusOK)
	}
}

// HandleShowLessonFull returns a lesson's full content to students
// enrolled in the owning course. Preview lessons pass regardless.
func HandleShowLessonFull(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("student not authenticated"))
		}

		lessonID := web.Param(r, "id")
		if err := validate.CheckID(lessonID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed lesson ID is not valid: %w", err))
		}

		l, err := course.FetchLesson(ctx, db, lessonID)
		if err != nil {
			if errors.Is(err, course.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching lesson[%s]: %w", lessonID, err)
		}

		if l.Preview {
			return web.Respond(ctx, w, l, http.StatusOK)
		}

		m, err := course.FetchModule(ctx, db, l.ModuleID)
		if err != nil {
			return fmt.Errorf("fetching module[%s]: %w", l.ModuleID, err)
		}

		if _, err := FetchByStudentCourse(ctx, db, clm.StudentID, m.CourseID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotAuthorized(errors.New("lesson requires enrollment"))
			}
			return fmt.Errorf("fetching enrollment of student[%s] in course[%s]: %w", clm.StudentID, m.CourseID, err)
		}

		return web.Respond(ctx, w, l, http.StatusOK)
	}
}
