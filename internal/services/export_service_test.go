package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
)

func TestExportRoster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	teacher := env.registerUser(t, "teacher@example.com", "Ms. Rivera", models.RoleTeacher)
	course := env.createCourse(t, teacher.ID, "Capstone")

	ben := env.registerUser(t, "ben@example.com", "Ben", models.RoleStudent)
	amy := env.registerUser(t, "amy@example.com", "Amy", models.RoleStudent)
	for _, u := range []*models.User{ben, amy} {
		env.joinCourse(t, u.ID, course.JoinCode)
		if _, err := env.services.Profile().Save(ctx, u.ID, course.ID, &SaveProfileRequest{
			Major: "Engineering",
		}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	f, err := env.services.Export().ExportRoster(ctx, course, "")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Roster")
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][1] != "Email" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	// Rows follow search order, owner display name ascending.
	if rows[1][0] != "Amy" || rows[2][0] != "Ben" {
		t.Errorf("unexpected row order: %v / %v", rows[1], rows[2])
	}
	if rows[1][1] != "amy@example.com" {
		t.Errorf("email = %q, want amy@example.com", rows[1][1])
	}
}

func TestExportRosterFiltered(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	teacher := env.registerUser(t, "teacher@example.com", "Ms. Rivera", models.RoleTeacher)
	course := env.createCourse(t, teacher.ID, "Capstone")

	student := env.registerUser(t, "student@example.com", "Sam", models.RoleStudent)
	env.joinCourse(t, student.ID, course.JoinCode)
	if _, err := env.services.Profile().Save(ctx, student.ID, course.ID, &SaveProfileRequest{
		Major: "Design",
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	f, err := env.services.Export().ExportRoster(ctx, course, "nomatch")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Roster")
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
