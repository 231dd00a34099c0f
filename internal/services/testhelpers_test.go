package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SAP-F-2025/classroom-intro-service/internal/events"
	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-intro-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

// testEnv wires a full service manager against an in-memory database so
// service behavior, including unique-constraint handling, is exercised for
// real instead of against hand-written repository stubs.
type testEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	services  ServiceManager
	publisher *events.MockEventPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	publisher := events.NewMockEventPublisher(logger)

	sm := NewServiceManager(db, repo, logger, validator.New(), publisher)

	t.Cleanup(func() {
		repo.Close()
	})

	return &testEnv{
		db:        db,
		repo:      repo,
		services:  sm,
		publisher: publisher,
	}
}

func (e *testEnv) registerUser(t *testing.T, email, name string, role models.UserRole) *models.User {
	t.Helper()

	user, err := e.services.Auth().Register(context.Background(), &RegisterRequest{
		Email:       email,
		Password:    "secret-pass",
		DisplayName: name,
		Role:        role,
	})
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return user
}

func (e *testEnv) createCourse(t *testing.T, teacherID uint, name string) *models.Course {
	t.Helper()

	course, err := e.services.Course().Create(context.Background(), teacherID, &CreateCourseRequest{Name: name})
	if err != nil {
		t.Fatalf("failed to create course %q: %v", name, err)
	}
	return course
}

func (e *testEnv) joinCourse(t *testing.T, studentID uint, code string) *models.Course {
	t.Helper()

	course, err := e.services.Enrollment().JoinCourse(context.Background(), studentID, &JoinCourseRequest{JoinCode: code})
	if err != nil {
		t.Fatalf("failed to join with code %s: %v", code, err)
	}
	return course
}
