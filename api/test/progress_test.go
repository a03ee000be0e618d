package test

import (
	"net/http"
	"testing"

	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/core/enrollment"
	"github.com/brightpath/academy/core/progress"
)

func (env *TestEnv) completeLesson(t *testing.T, enrollmentID, lessonID string, wantStatus int) enrollment.Enrollment {
	t.Helper()

	var e enrollment.Enrollment
	var out interface{}
	if wantStatus == http.StatusOK {
		out = &e
	}

	status, err := env.doJSON(http.MethodPut, "/enrollments/"+enrollmentID+"/lessons/"+lessonID+"/complete", nil, out)
	if err != nil {
		t.Fatal(err)
	}
	if status != wantStatus {
		t.Fatalf("completing lesson[%s]: status code %d, want %d", lessonID, status, wantStatus)
	}
	return e
}

func (env *TestEnv) showEnrollment(t *testing.T, enrollmentID string) enrollment.Enrollment {
	t.Helper()

	var e enrollment.Enrollment
	status, err := env.doJSON(http.MethodGet, "/enrollments/"+enrollmentID, nil, &e)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatalf("showing enrollment: status code %d", status)
	}
	return e
}

func TestProgress(t *testing.T) {
	env, err := NewTestEnv(t, "progress_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	if err := env.Login(env.AdminEmail, env.AdminPass); err != nil {
		t.Fatal(err)
	}

	c := env.createCourse(t, course.CourseNew{
		Title:       "Intro to Nonprofit Accounting",
		Description: "Two short lessons",
		Level:       course.Beginner,
		Price:       0,
		Published:   true,
	})
	m := env.createModule(t, c.ID, course.ModuleNew{Title: "Basics", SortOrder: 1})
	l1 := env.createLesson(t, m.ID, course.LessonNew{Title: "Ledgers", Type: course.Video, SortOrder: 1})
	l2 := env.createLesson(t, m.ID, course.LessonNew{Title: "Budgets", Type: course.Text, SortOrder: 2})

	other := env.createCourse(t, course.CourseNew{
		Title:       "Unrelated",
		Description: "Different course entirely",
		Level:       course.Beginner,
		Price:       0,
		Published:   true,
	})
	om := env.createModule(t, other.ID, course.ModuleNew{Title: "Only", SortOrder: 1})
	foreign := env.createLesson(t, om.ID, course.LessonNew{Title: "Elsewhere", Type: course.Text, SortOrder: 1})

	empty := env.createCourse(t, course.CourseNew{
		Title:       "Placeholder",
		Description: "No lessons yet",
		Level:       course.Beginner,
		Price:       0,
		Published:   true,
	})

	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}
	if err := env.Login(env.StudentEmail, env.StudentPass); err != nil {
		t.Fatal(err)
	}

	var e enrollment.Enrollment
	status, err := env.doJSON(http.MethodPost, "/enrollments/free", map[string]string{"courseId": c.ID}, &e)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("enrolling: status code %d", status)
	}
	if e.ProgressPercent != 0 {
		t.Fatalf("progress at enrollment is %d, want 0", e.ProgressPercent)
	}

	// Completing a lesson from another course must not touch anything.
	env.completeLesson(t, e.ID, foreign.ID, http.StatusUnprocessableEntity)
	if got := env.showEnrollment(t, e.ID); got.ProgressPercent != 0 {
		t.Fatalf("foreign lesson moved progress to %d", got.ProgressPercent)
	}

	half := env.completeLesson(t, e.ID, l1.ID, http.StatusOK)
	if half.ProgressPercent != 50 {
		t.Fatalf("progress after one of two lessons is %d, want 50", half.ProgressPercent)
	}
	if half.Status != enrollment.Active {
		t.Fatalf("status at 50%% is %s, want %s", half.Status, enrollment.Active)
	}
	if half.CompletedAt != nil {
		t.Fatal("completion timestamp set before the course is done")
	}

	// Completing the same lesson again changes nothing.
	again := env.completeLesson(t, e.ID, l1.ID, http.StatusOK)
	if again.ProgressPercent != 50 || again.Status != enrollment.Active {
		t.Fatalf("repeated completion moved the enrollment: %d%% %s", again.ProgressPercent, again.Status)
	}

	done := env.completeLesson(t, e.ID, l2.ID, http.StatusOK)
	if done.ProgressPercent != 100 {
		t.Fatalf("progress after all lessons is %d, want 100", done.ProgressPercent)
	}
	if done.Status != enrollment.Completed {
		t.Fatalf("status at 100%% is %s, want %s", done.Status, enrollment.Completed)
	}
	if done.CompletedAt == nil {
		t.Fatal("completion timestamp was not set")
	}
	if !done.CertificateIssued {
		t.Fatal("certificate was not issued on completion")
	}
	completedAt := *done.CompletedAt

	var records []progress.LessonProgress
	if _, err := env.doJSON(http.MethodGet, "/enrollments/"+e.ID+"/progress", nil, &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 progress records, got %d", len(records))
	}

	// Issuing the certificate again is a no-op, not an error.
	var issued enrollment.Enrollment
	status, err = env.doJSON(http.MethodPost, "/enrollments/"+e.ID+"/certificate", nil, &issued)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatalf("re-issuing certificate: status code %d", status)
	}
	if !issued.CertificateIssued {
		t.Fatal("certificate flag lost on re-issue")
	}

	// Growing the course afterwards must not demote the enrollment.
	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}
	if err := env.Login(env.AdminEmail, env.AdminPass); err != nil {
		t.Fatal(err)
	}
	l3 := env.createLesson(t, m.ID, course.LessonNew{Title: "Audits", Type: course.Quiz, SortOrder: 3})
	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}
	if err := env.Login(env.StudentEmail, env.StudentPass); err != nil {
		t.Fatal(err)
	}

	after := env.showEnrollment(t, e.ID)
	if after.Status != enrollment.Completed {
		t.Fatalf("adding a lesson demoted the enrollment to %s", after.Status)
	}
	if after.ProgressPercent != 100 {
		t.Fatalf("adding a lesson moved progress to %d", after.ProgressPercent)
	}
	if after.CompletedAt == nil || !after.CompletedAt.Equal(completedAt) {
		t.Fatal("adding a lesson changed the completion timestamp")
	}

	// Marking the new lesson is accepted but the state stays terminal.
	still := env.completeLesson(t, e.ID, l3.ID, http.StatusOK)
	if still.Status != enrollment.Completed || still.ProgressPercent != 100 {
		t.Fatalf("completed enrollment moved: %d%% %s", still.ProgressPercent, still.Status)
	}

	// A course with no lessons stays at zero.
	var ee enrollment.Enrollment
	status, err = env.doJSON(http.MethodPost, "/enrollments/free", map[string]string{"courseId": empty.ID}, &ee)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("enrolling in empty course: status code %d", status)
	}
	if ee.ProgressPercent != 0 {
		t.Fatalf("empty course progress is %d, want 0", ee.ProgressPercent)
	}

	// Certificates are only for completed enrollments.
	status, err = env.doJSON(http.MethodPost, "/enrollments/"+ee.ID+"/certificate", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("issuing certificate for active enrollment: status code %d, want %d", status, http.StatusUnprocessableEntity)
	}

	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}
}
