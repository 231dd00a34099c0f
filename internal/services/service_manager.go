package services

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/classroom-intro-service/internal/events"
	"github.com/SAP-F-2025/classroom-intro-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

type serviceManager struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher

	authService       AuthService
	courseService     CourseService
	enrollmentService EnrollmentService
	profileService    ProfileService
	exportService     ExportService
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(
	db *gorm.DB,
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	publisher events.EventPublisher,
) ServiceManager {
	sm := &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}

	sm.authService = NewAuthService(repo, logger, validator)
	sm.courseService = NewCourseService(repo, logger, validator, publisher)
	sm.enrollmentService = NewEnrollmentService(repo, logger, validator, publisher)
	sm.profileService = NewProfileService(repo, logger, validator, publisher)
	sm.exportService = NewExportService(repo, logger)

	return sm
}

func (sm *serviceManager) Auth() AuthService             { return sm.authService }
func (sm *serviceManager) Course() CourseService         { return sm.courseService }
func (sm *serviceManager) Enrollment() EnrollmentService { return sm.enrollmentService }
func (sm *serviceManager) Profile() ProfileService       { return sm.profileService }
func (sm *serviceManager) Export() ExportService         { return sm.exportService }

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	return sm.repo.Ping(ctx)
}

// publishEvent emits an activity event without letting a broker failure
// leak into the request path. The write has already committed by the time
// this runs.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event events.Event) {
	if publisher == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
