package test

import (
	"net/http"
	"testing"

	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/core/enrollment"
	"github.com/brightpath/academy/validate"
)

func TestEnrollFree(t *testing.T) {
	env, err := NewTestEnv(t, "enrollment_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	if err := env.Login(env.AdminEmail, env.AdminPass); err != nil {
		t.Fatal(err)
	}

	free := env.createCourse(t, course.CourseNew{
		Title:       "Volunteer Onboarding",
		Description: "Getting started",
		Level:       course.Beginner,
		Price:       0,
		Published:   true,
	})

	paid := env.createCourse(t, course.CourseNew{
		Title:       "Grant Writing Deep Dive",
		Description: "Advanced fundraising",
		Level:       course.Advanced,
		Price:       4999,
		Published:   true,
	})

	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}

	// Enrolling without a session is rejected.
	status, err := env.doJSON(http.MethodPost, "/enrollments/free", map[string]string{"courseId": free.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated enroll: status code %d, want %d", status, http.StatusUnauthorized)
	}

	if err := env.Login(env.StudentEmail, env.StudentPass); err != nil {
		t.Fatal(err)
	}

	var first enrollment.Enrollment
	status, err = env.doJSON(http.MethodPost, "/enrollments/free", map[string]string{"courseId": free.ID}, &first)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("enrolling: status code %d", status)
	}

	if first.Status != enrollment.Active {
		t.Fatalf("fresh enrollment status is %s, want %s", first.Status, enrollment.Active)
	}
	if first.ProgressPercent != 0 {
		t.Fatalf("fresh enrollment progress is %d, want 0", first.ProgressPercent)
	}
	if first.CertificateIssued {
		t.Fatal("fresh enrollment must not have a certificate")
	}

	// Enrolling twice hands back the same record.
	var second enrollment.Enrollment
	status, err = env.doJSON(http.MethodPost, "/enrollments/free", map[string]string{"courseId": free.ID}, &second)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("re-enrolling: status code %d", status)
	}
	if second.ID != first.ID {
		t.Fatalf("re-enroll created a second enrollment %s, want %s", second.ID, first.ID)
	}

	var mine []enrollment.Enrollment
	if _, err := env.doJSON(http.MethodGet, "/enrollments", nil, &mine); err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected exactly 1 enrollment, got %d", len(mine))
	}

	// Paid courses refuse the free path.
	status, err = env.doJSON(http.MethodPost, "/enrollments/free", map[string]string{"courseId": paid.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("free-enrolling a paid course: status code %d, want %d", status, http.StatusUnprocessableEntity)
	}

	// Unknown courses are a 404.
	status, err = env.doJSON(http.MethodPost, "/enrollments/free", map[string]string{"courseId": validate.GenerateID()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusNotFound {
		t.Fatalf("enrolling in unknown course: status code %d, want %d", status, http.StatusNotFound)
	}

	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}

	// Admin reporting sees the course roster.
	if err := env.Login(env.AdminEmail, env.AdminPass); err != nil {
		t.Fatal(err)
	}

	var roster []enrollment.Enrollment
	status, err = env.doJSON(http.MethodGet, "/courses/"+free.ID+"/enrollments", nil, &roster)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatalf("listing course roster: status code %d", status)
	}
	if len(roster) != 1 || roster[0].ID != first.ID {
		t.Fatalf("course roster mismatch: got %d enrollments", len(roster))
	}

	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}
}
