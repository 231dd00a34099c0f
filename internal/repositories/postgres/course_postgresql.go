package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/classroom-intro-service/internal/cache"
	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create persists a new course. A join-code collision violates the unique
// index and comes back as gorm.ErrDuplicatedKey, unwrapped so the caller
// can retry with a fresh code.
func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	return c.db.WithContext(ctx).Create(course).Error
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}

// GetByJoinCode retrieves a course by its normalized join code with caching.
// Courses are immutable after creation, so positive hits stay valid for the
// full cache TTL. Misses are not cached.
func (c *CoursePostgreSQL) GetByJoinCode(ctx context.Context, code string) (*models.Course, error) {
	cacheKey := fmt.Sprintf("code:%s", code)
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		if err := c.db.WithContext(ctx).First(&dbCourse, "join_code = ?", code).Error; err != nil {
			return nil, err
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

// GetOwned retrieves a course only when the given teacher owns it.
func (c *CoursePostgreSQL) GetOwned(ctx context.Context, id, teacherID uint) (*models.Course, error) {
	var course models.Course
	err := c.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		First(&course).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owned course: %w", err)
	}
	return &course, nil
}

func (c *CoursePostgreSQL) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error) {
	var courses []*models.Course
	err := c.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher courses: %w", err)
	}
	return courses, nil
}

// ListByStudent returns the courses a student is enrolled in, joined with
// the owning teacher's display name.
func (c *CoursePostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*repositories.CourseWithTeacher, error) {
	var rows []*repositories.CourseWithTeacher
	err := c.db.WithContext(ctx).
		Table("courses AS c").
		Select("c.id, c.name, c.join_code, c.teacher_id, c.created_at, u.display_name AS teacher_name").
		Joins("JOIN course_enrollments ce ON ce.course_id = c.id").
		Joins("JOIN users u ON u.id = c.teacher_id").
		Where("ce.user_id = ?", studentID).
		Order("ce.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list student courses: %w", err)
	}
	return rows, nil
}
