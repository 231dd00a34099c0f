package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/classroom-intro-service/internal/events"
	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *enrollmentService) JoinCourse(ctx context.Context, studentID uint, req *JoinCourseRequest) (*models.Course, error) {
	if errs := s.validator.GetBusinessValidator().ValidateJoinCourse(req); len(errs) > 0 {
		return nil, errs
	}

	code := strings.ToUpper(strings.TrimSpace(req.JoinCode))

	course, err := s.repo.Course().GetByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to resolve join code: %w", err)
	}

	enrollment := &models.Enrollment{
		UserID:   studentID,
		CourseID: course.ID,
	}

	// No check-then-insert: the composite unique index decides, so two
	// racing joins of the same pair leave exactly one row behind.
	if err := s.repo.Enrollment().Create(ctx, enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("Student enrolled", "user_id", studentID, "course_id", course.ID)
	publishEvent(ctx, s.publisher, s.logger, events.Event{
		Type:     events.EventStudentEnrolled,
		UserID:   studentID,
		CourseID: course.ID,
	})

	return course, nil
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, studentID, courseID uint) (bool, error) {
	count, err := s.repo.Enrollment().CountByUserAndCourse(ctx, studentID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return count > 0, nil
}
