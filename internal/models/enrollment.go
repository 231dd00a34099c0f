package models

import (
	"time"
)

// Enrollment links a student to a course. The composite unique index is the
// serialization point for concurrent join attempts: at most one row per
// (user, course) pair can ever exist.
type Enrollment struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}

func (Enrollment) TableName() string {
	return "course_enrollments"
}
