package services

import "errors"

// Expected service errors. All of these are recovered at the handler
// boundary into a redirect or an inline message; anything else wrapping up
// from the persistence layer is treated as an internal failure.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable to the caller so
	// login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken signals a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrCourseNotFound signals an unknown course id or join code.
	ErrCourseNotFound = errors.New("course not found")

	// ErrAlreadyEnrolled signals a second join of the same course.
	ErrAlreadyEnrolled = errors.New("already enrolled in course")

	// ErrCourseCreationFailed signals a join-code collision that survived
	// all retries, or any other write failure while creating a course.
	ErrCourseCreationFailed = errors.New("course creation failed")
)
