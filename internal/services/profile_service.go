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

type profileService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewProfileService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) ProfileService {
	return &profileService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *profileService) Save(ctx context.Context, userID, courseID uint, req *SaveProfileRequest) (*models.Profile, error) {
	if errs := s.validator.GetBusinessValidator().ValidateSaveProfile(req); len(errs) > 0 {
		return nil, errs
	}

	profile := &models.Profile{
		UserID:        userID,
		CourseID:      courseID,
		PreferredName: strings.TrimSpace(req.PreferredName),
		Pronouns:      strings.TrimSpace(req.Pronouns),
		Major:         strings.TrimSpace(req.Major),
		Goals:         strings.TrimSpace(req.Goals),
		FunFact:       strings.TrimSpace(req.FunFact),
		LearningNeeds: strings.TrimSpace(req.LearningNeeds),
	}

	if err := s.repo.Profile().Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("Profile saved", "user_id", userID, "course_id", courseID)
	publishEvent(ctx, s.publisher, s.logger, events.Event{
		Type:     events.EventProfileSaved,
		UserID:   userID,
		CourseID: courseID,
	})

	return profile, nil
}

func (s *profileService) GetForStudent(ctx context.Context, userID, courseID uint) (*models.Profile, error) {
	profile, err := s.repo.Profile().GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A missing profile just means the form starts out blank.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Search(ctx context.Context, courseID uint, query string) ([]*repositories.ProfileWithOwner, error) {
	results, err := s.repo.Profile().SearchByCourse(ctx, courseID, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	return results, nil
}
