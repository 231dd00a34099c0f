package validator

// AuthRequest carries the combined login-or-register form. DisplayName and
// Role are only consulted when the submission falls through to
// registration; a blank DisplayName means "login only".
type AuthRequest struct {
	Email       string `form:"email" json:"email" validate:"required,email,max=255"`
	Password    string `form:"password" json:"password" validate:"required,max=255"`
	DisplayName string `form:"name" json:"name" validate:"omitempty,max=100"`
	Role        string `form:"role" json:"role" validate:"omitempty,account_role"`
}

// CreateCourseRequest creates a course owned by the submitting teacher.
type CreateCourseRequest struct {
	Name string `form:"course_name" json:"name" validate:"required,max=200"`
}

// JoinCourseRequest enrolls the submitting student via a join code. The
// code is normalized to uppercase before lookup, so any casing is accepted
// here.
type JoinCourseRequest struct {
	JoinCode string `form:"join_code" json:"join_code" validate:"required,max=32"`
}

// SaveProfileRequest carries the six free-text profile fields. All are
// optional; values are trimmed before storage and an empty string is a
// valid stored value.
type SaveProfileRequest struct {
	PreferredName string `form:"preferred_name" json:"preferred_name" validate:"max=200"`
	Pronouns      string `form:"pronouns" json:"pronouns" validate:"max=100"`
	Major         string `form:"major" json:"major" validate:"max=200"`
	Goals         string `form:"goals" json:"goals" validate:"max=2000"`
	FunFact       string `form:"fun_fact" json:"fun_fact" validate:"max=2000"`
	LearningNeeds string `form:"learning_needs" json:"learning_needs" validate:"max=2000"`
}
