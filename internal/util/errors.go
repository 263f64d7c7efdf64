package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateIdentity = errors.New("username or email already exists")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrAlreadyEnrolled   = errors.New("already enrolled in this course")
	ErrCourseNotFound    = errors.New("course not found")
)
