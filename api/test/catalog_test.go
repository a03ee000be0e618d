package test

import (
	"net/http"
	"testing"

	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/validate"
	"github.com/google/go-cmp/cmp"
)

// createCourse provisions a course through the admin API. The env's
// client must already hold an admin session.
func (env *TestEnv) createCourse(t *testing.T, cn course.CourseNew) course.Course {
	t.Helper()

	var c course.Course
	status, err := env.doJSON(http.MethodPost, "/courses", cn, &c)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("can't create course: status code %d", status)
	}
	return c
}

func (env *TestEnv) createModule(t *testing.T, courseID string, mn course.ModuleNew) course.Module {
	t.Helper()

	var m course.Module
	status, err := env.doJSON(http.MethodPost, "/courses/"+courseID+"/modules", mn, &m)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("can't create module: status code %d", status)
	}
	return m
}

func (env *TestEnv) createLesson(t *testing.T, moduleID string, ln course.LessonNew) course.Lesson {
	t.Helper()

	var l course.Lesson
	status, err := env.doJSON(http.MethodPost, "/modules/"+moduleID+"/lessons", ln, &l)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("can't create lesson: status code %d", status)
	}
	return l
}

func (env *TestEnv) showCourse(t *testing.T, courseID string, wantStatus int) course.Course {
	t.Helper()

	var c course.Course
	var out interface{}
	if wantStatus == http.StatusOK {
		out = &c
	}

	status, err := env.doJSON(http.MethodGet, "/courses/"+courseID, nil, out)
	if err != nil {
		t.Fatal(err)
	}
	if status != wantStatus {
		t.Fatalf("showing course[%s]: status code %d, want %d", courseID, status, wantStatus)
	}
	return c
}

func TestCatalog(t *testing.T) {
	env, err := NewTestEnv(t, "catalog_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	if err := env.Login(env.AdminEmail, env.AdminPass); err != nil {
		t.Fatal(err)
	}

	c := env.createCourse(t, course.CourseNew{
		Title:       "Community Organizing 101",
		Description: "Grassroots fundamentals",
		Level:       course.Beginner,
		Price:       0,
		Published:   true,
	})

	hidden := env.createCourse(t, course.CourseNew{
		Title:       "Draft Course",
		Description: "Not ready yet",
		Level:       course.Advanced,
		Price:       0,
		Published:   false,
	})

	// Modules are created out of order: listing must come back sorted
	// by sort_order.
	m2 := env.createModule(t, c.ID, course.ModuleNew{Title: "Second", SortOrder: 2})
	m1 := env.createModule(t, c.ID, course.ModuleNew{Title: "First", SortOrder: 1})

	l2 := env.createLesson(t, m1.ID, course.LessonNew{Title: "Outreach", Type: course.Text, SortOrder: 2})
	l1 := env.createLesson(t, m1.ID, course.LessonNew{Title: "Welcome", Type: course.Video, SortOrder: 1})
	lt1 := env.createLesson(t, m2.ID, course.LessonNew{Title: "Tie A", Type: course.Quiz, SortOrder: 5})
	lt2 := env.createLesson(t, m2.ID, course.LessonNew{Title: "Tie B", Type: course.Quiz, SortOrder: 5})

	got := env.showCourse(t, c.ID, http.StatusOK)

	wantModules := []string{m1.ID, m2.ID}
	gotModules := []string{}
	for _, m := range got.Modules {
		gotModules = append(gotModules, m.ID)
	}
	if diff := cmp.Diff(wantModules, gotModules); diff != "" {
		t.Fatalf("module order mismatch (-want +got):\n%s", diff)
	}

	wantLessons := []string{l1.ID, l2.ID}
	gotLessons := []string{}
	for _, l := range got.Modules[0].Lessons {
		gotLessons = append(gotLessons, l.ID)
	}
	if diff := cmp.Diff(wantLessons, gotLessons); diff != "" {
		t.Fatalf("lesson order mismatch (-want +got):\n%s", diff)
	}

	// Equal sort orders fall back to creation order.
	wantTies := []string{lt1.ID, lt2.ID}
	gotTies := []string{}
	for _, l := range got.Modules[1].Lessons {
		gotTies = append(gotTies, l.ID)
	}
	if diff := cmp.Diff(wantTies, gotTies); diff != "" {
		t.Fatalf("tied lesson order mismatch (-want +got):\n%s", diff)
	}

	// Deleting a module takes its lessons with it, silently.
	status, err := env.doJSON(http.MethodDelete, "/modules/"+m2.ID, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusNoContent {
		t.Fatalf("deleting module: status code %d", status)
	}

	got = env.showCourse(t, c.ID, http.StatusOK)
	if len(got.Modules) != 1 {
		t.Fatalf("expected 1 module after delete, got %d", len(got.Modules))
	}

	// Students don't see unpublished courses.
	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}
	if err := env.Login(env.StudentEmail, env.StudentPass); err != nil {
		t.Fatal(err)
	}

	env.showCourse(t, hidden.ID, http.StatusNotFound)

	var listed []course.Course
	status, err = env.doJSON(http.MethodGet, "/courses", nil, &listed)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatalf("listing courses: status code %d", status)
	}
	for _, lc := range listed {
		if lc.ID == hidden.ID {
			t.Fatal("unpublished course leaked into the student listing")
		}
	}

	// An enrolled course cannot be deleted.
	status, err = env.doJSON(http.MethodPost, "/enrollments/free", map[string]string{"courseId": c.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("enrolling: status code %d", status)
	}

	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}
	if err := env.Login(env.AdminEmail, env.AdminPass); err != nil {
		t.Fatal(err)
	}

	status, err = env.doJSON(http.MethodDelete, "/courses/"+c.ID, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusConflict {
		t.Fatalf("deleting an enrolled course: status code %d, want %d", status, http.StatusConflict)
	}

	// A course nobody enrolled in goes away, children and all.
	status, err = env.doJSON(http.MethodDelete, "/courses/"+hidden.ID, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusNoContent {
		t.Fatalf("deleting course: status code %d", status)
	}

	env.showCourse(t, hidden.ID, http.StatusNotFound)

	// Deleting something that isn't there is a 404, not a silent 204.
	for _, path := range []string{
		"/courses/" + validate.GenerateID(),
		"/modules/" + validate.GenerateID(),
		"/lessons/" + validate.GenerateID(),
	} {
		status, err = env.doJSON(http.MethodDelete, path, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if status != http.StatusNotFound {
			t.Fatalf("deleting unknown resource %s: status code %d, want %d", path, status, http.StatusNotFound)
		}
	}

	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}
}
