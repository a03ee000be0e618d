package test

import (
	"net/http"
	"testing"

	"github.com/brightpath/academy/core/student"
)

func TestAuth(t *testing.T) {
	env, err := NewTestEnv(t, "auth_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	signup := student.StudentSignup{
		FirstName:       "Nadia",
		LastName:        "Osei",
		Email:           "nadia@example.com",
		Password:        "correct-horse-battery",
		PasswordConfirm: "correct-horse-battery",
	}

	var s student.Student
	status, err := env.doJSON(http.MethodPost, "/auth/signup", signup, &s)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated {
		t.Fatalf("signup: status code %d", status)
	}
	if s.Email != signup.Email {
		t.Fatalf("signup returned email %q, want %q", s.Email, signup.Email)
	}

	// Signup logs the student in right away.
	var current student.Student
	status, err = env.doJSON(http.MethodGet, "/students/current", nil, &current)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatalf("current student after signup: status code %d", status)
	}
	if current.ID != s.ID {
		t.Fatalf("current student is %s, want %s", current.ID, s.ID)
	}

	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}

	// Same email again is refused.
	status, err = env.doJSON(http.MethodPost, "/auth/signup", signup, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate signup: status code %d, want %d", status, http.StatusUnprocessableEntity)
	}

	// Emails are matched exactly, so a different casing is a distinct
	// account as far as lookup is concerned.
	status, err = env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"email":    "Nadia@example.com",
		"password": signup.Password,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusUnauthorized {
		t.Fatalf("login with re-cased email: status code %d, want %d", status, http.StatusUnauthorized)
	}

	status, err = env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"email":    signup.Email,
		"password": "wrong-password-here",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusUnauthorized {
		t.Fatalf("login with wrong password: status code %d, want %d", status, http.StatusUnauthorized)
	}

	if err := env.Login(signup.Email, signup.Password); err != nil {
		t.Fatal(err)
	}

	if err := env.Logout(); err != nil {
		t.Fatal(err)
	}

	// After logout the session is gone.
	status, err = env.doJSON(http.MethodGet, "/students/current", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusUnauthorized {
		t.Fatalf("current student after logout: status code %d, want %d", status, http.StatusUnauthorized)
	}
}
