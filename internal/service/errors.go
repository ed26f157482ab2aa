package service

import "errors"

// Sentinel errors shared across services. Handlers translate them into the
// HTTP error taxonomy; conflict errors carry the specific uniqueness
// violation so the response can name it.
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrLectureNotFound    = errors.New("lecture not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	ErrAlreadySubmitted = errors.New("assignment already submitted")
	ErrAlreadyReviewed  = errors.New("you have already reviewed this course")
	ErrAlreadyEnrolled  = errors.New("you are already enrolled in this course")
	ErrNotEnrolled      = errors.New("you must be enrolled in this course")
	ErrEmailTaken       = errors.New("email is already registered")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
