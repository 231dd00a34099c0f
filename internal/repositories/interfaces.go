package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
)

// ===== SHARED PROJECTION STRUCTS =====

// CourseWithTeacher is the student-facing course listing row, joined with
// the owning teacher's display name.
type CourseWithTeacher struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	JoinCode    string    `json:"join_code"`
	TeacherID   uint      `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProfileWithOwner is a profile row joined with its owning user, as shown
// to teachers in the course roster view.
type ProfileWithOwner struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	CourseID      uint      `json:"course_id"`
	PreferredName string    `json:"preferred_name"`
	Pronouns      string    `json:"pronouns"`
	Major         string    `json:"major"`
	Goals         string    `json:"goals"`
	FunFact       string    `json:"fun_fact"`
	LearningNeeds string    `json:"learning_needs"`
	UpdatedAt     time.Time `json:"updated_at"`

	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	// Create persists a new user. A duplicate email surfaces as
	// gorm.ErrDuplicatedKey.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByEmail looks up by the stored, case-sensitive email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type CourseRepository interface {
	// Create persists a new course. A join-code collision surfaces as
	// gorm.ErrDuplicatedKey.
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	// GetByJoinCode expects an already-normalized (uppercase) code.
	GetByJoinCode(ctx context.Context, code string) (*models.Course, error)
	// GetOwned retrieves a course only when it belongs to the given teacher.
	GetOwned(ctx context.Context, id, teacherID uint) (*models.Course, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error)
	ListByStudent(ctx context.Context, studentID uint) ([]*CourseWithTeacher, error)
}

type EnrollmentRepository interface {
	// Create inserts the (user, course) link. The composite unique index
	// rejects a second insert with gorm.ErrDuplicatedKey.
	Create(ctx context.Context, enrollment *models.Enrollment) error
	CountByUserAndCourse(ctx context.Context, userID, courseID uint) (int64, error)
}

type ProfileRepository interface {
	// Upsert writes the profile in a single conflict-aware statement keyed
	// on the (user_id, course_id) unique index.
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Profile, error)
	// SearchByCourse returns the course's profiles whose owner name, owner
	// email, preferred name or major contains query as a case-insensitive
	// substring, ordered by owner display name. An empty query matches all.
	SearchByCourse(ctx context.Context, courseID uint, query string) ([]*ProfileWithOwner, error)
}

// Repository is the main repository manager interface
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Enrollment() EnrollmentRepository
	Profile() ProfileRepository

	Ping(ctx context.Context) error
	Close() error
}
