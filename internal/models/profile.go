package models

import (
	"time"
)

// Profile is a student's free-text "about me" record for one course.
// One row per (user, course); saves overwrite in place.
type Profile struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_profiles_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_profiles_user_course"`

	PreferredName string `json:"preferred_name" gorm:"type:text"`
	Pronouns      string `json:"pronouns" gorm:"type:text"`
	Major         string `json:"major" gorm:"type:text"`
	Goals         string `json:"goals" gorm:"type:text"`
	FunFact       string `json:"fun_fact" gorm:"type:text"`
	LearningNeeds string `json:"learning_needs" gorm:"type:text"`

	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}

func (Profile) TableName() string {
	return "student_profiles"
}

// AllModels lists every entity for idempotent schema creation at startup.
func AllModels() []any {
	return []any{
		&User{},
		&Course{},
		&Enrollment{},
		&Profile{},
	}
}
