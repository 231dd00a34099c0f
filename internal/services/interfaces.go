package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use business validator types
type AuthRequest = validator.AuthRequest
type CreateCourseRequest = validator.CreateCourseRequest
type JoinCourseRequest = validator.JoinCourseRequest
type SaveProfileRequest = validator.SaveProfileRequest

// RegisterRequest carries a resolved registration: the role has already
// been parsed into the two-variant enum.
type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	Role        models.UserRole
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Register creates a user with a bcrypt-hashed password. A duplicate
	// email yields ErrEmailTaken; the first user's record is untouched.
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)

	// Authenticate verifies credentials against the stored hash.
	// Unknown email and wrong password both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

type CourseService interface {
	// Create generates a join code and persists the course, retrying a
	// bounded number of times on code collision before giving up with
	// ErrCourseCreationFailed.
	Create(ctx context.Context, teacherID uint, req *CreateCourseRequest) (*models.Course, error)

	// ResolveJoinCode uppercases the input and resolves it to a course,
	// or ErrCourseNotFound.
	ResolveJoinCode(ctx context.Context, code string) (*models.Course, error)

	GetByID(ctx context.Context, id uint) (*models.Course, error)

	// GetOwned resolves a course only for its owning teacher; any other
	// (id, teacher) combination yields ErrCourseNotFound.
	GetOwned(ctx context.Context, id, teacherID uint) (*models.Course, error)

	ListForTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error)
	ListForStudent(ctx context.Context, studentID uint) ([]*repositories.CourseWithTeacher, error)
}

type EnrollmentService interface {
	// JoinCourse resolves the join code and links the student to the
	// course. An unknown code yields ErrCourseNotFound, a repeat join
	// ErrAlreadyEnrolled; the unique constraint decides the winner when
	// two joins race.
	JoinCourse(ctx context.Context, studentID uint, req *JoinCourseRequest) (*models.Course, error)

	// IsEnrolled reports whether the student has joined the course.
	IsEnrolled(ctx context.Context, studentID, courseID uint) (bool, error)
}

type ProfileService interface {
	// Save trims all six fields and upserts the one profile row for
	// (user, course). Last write wins.
	Save(ctx context.Context, userID, courseID uint, req *SaveProfileRequest) (*models.Profile, error)

	// GetForStudent returns the student's profile for the course, or
	// (nil, nil) when none has been saved yet.
	GetForStudent(ctx context.Context, userID, courseID uint) (*models.Profile, error)

	// Search lists the course's profiles matching the query, ordered by
	// owner display name. An empty query matches everything.
	Search(ctx context.Context, courseID uint, query string) ([]*repositories.ProfileWithOwner, error)
}

type ExportService interface {
	// ExportRoster renders the course's submitted profiles (optionally
	// filtered like Search) as an Excel workbook.
	ExportRoster(ctx context.Context, course *models.Course, query string) (*excelize.File, error)
}

// ServiceManager provides access to all services
type ServiceManager interface {
	Auth() AuthService
	Course() CourseService
	Enrollment() EnrollmentService
	Profile() ProfileService
	Export() ExportService

	HealthCheck(ctx context.Context) error
}
