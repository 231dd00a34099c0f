package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/classroom-intro-service/internal/events"
	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

// joinCodeAttempts bounds how often Create retries after a join-code
// collision before reporting the creation as failed.
const joinCodeAttempts = 5

type courseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) CourseService {
	return &courseService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// generateJoinCode derives an 8-character uppercase code from a fast hash
// of the current time plus randomness. Uniqueness is not guaranteed here;
// the database's unique index catches collisions and Create retries.
func generateJoinCode() string {
	seed := fmt.Sprintf("%d%d", time.Now().UnixNano(), rand.Int64())
	sum := md5.Sum([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:models.JoinCodeLength]
}

func (s *courseService) Create(ctx context.Context, teacherID uint, req *CreateCourseRequest) (*models.Course, error) {
	if errs := s.validator.GetBusinessValidator().ValidateCreateCourse(req); len(errs) > 0 {
		return nil, errs
	}

	name := strings.TrimSpace(req.Name)

	for attempt := 1; attempt <= joinCodeAttempts; attempt++ {
		course := &models.Course{
			Name:      name,
			JoinCode:  generateJoinCode(),
			TeacherID: teacherID,
		}

		err := s.repo.Course().Create(ctx, course)
		if err == nil {
			s.logger.Info("Course created",
				"course_id", course.ID,
				"teacher_id", teacherID,
				"join_code", course.JoinCode)
			publishEvent(ctx, s.publisher, s.logger, events.Event{
				Type:     events.EventCourseCreated,
				UserID:   teacherID,
				CourseID: course.ID,
			})
			return course, nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("Join code collision, retrying",
				"attempt", attempt,
				"teacher_id", teacherID)
			continue
		}

		s.logger.Error("Course creation failed", "error", err, "teacher_id", teacherID)
		return nil, ErrCourseCreationFailed
	}

	return nil, ErrCourseCreationFailed
}

func (s *courseService) ResolveJoinCode(ctx context.Context, code string) (*models.Course, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	course, err := s.repo.Course().GetByJoinCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to resolve join code: %w", err)
	}
	return course, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *courseService) GetOwned(ctx context.Context, id, teacherID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetOwned(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get owned course: %w", err)
	}
	return course, nil
}

func (s *courseService) ListForTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	return s.repo.Course().ListByTeacher(ctx, teacherID)
}

func (s *courseService) ListForStudent(ctx context.Context, studentID uint) ([]*repositories.CourseWithTeacher, error) {
	return s.repo.Course().ListByStudent(ctx, studentID)
}
