package models

import (
	"time"
)

// JoinCodeLength is the length of the human-typable course join code.
const JoinCodeLength = 8

type Course struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null;size:200"`
	JoinCode string `json:"join_code" gorm:"uniqueIndex;not null;size:8"`

	TeacherID uint      `json:"teacher_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Teacher User `json:"-" gorm:"foreignKey:TeacherID"`
}

func (Course) TableName() string {
	return "courses"
}
