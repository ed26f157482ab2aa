package dto

import (
	"time"

	"github.com/collegecoursera/api/internal/models"
)

// EnrollmentResponse serializes an enrollment with its course summary.
type EnrollmentResponse struct {
	ID         uint           `json:"id"`
	StudentID  uint           `json:"student_id"`
	CourseID   uint           `json:"course_id"`
	FinalGrade *float64       `json:"final_grade"`
	EnrolledAt time.Time      `json:"enrolled_at"`
	Course     CourseResponse `json:"course"`
}

// NewEnrollmentResponse converts an Enrollment model into a DTO.
func NewEnrollmentResponse(enrollment models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         enrollment.ID,
		StudentID:  enrollment.StudentID,
		CourseID:   enrollment.CourseID,
		FinalGrade: enrollment.FinalGrade,
		EnrolledAt: enrollment.EnrolledAt,
		Course:     NewCourseResponse(enrollment.Course, 0),
	}
}

// NewEnrollmentResponseSlice converts enrollment models into DTOs.
func NewEnrollmentResponseSlice(enrollments []models.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, NewEnrollmentResponse(enrollment))
	}
	return responses
}

// EnrollmentProgressResponse reports lecture completion within a course.
type EnrollmentProgressResponse struct {
	EnrollmentID      uint    `json:"enrollment_id"`
	CourseID          uint    `json:"course_id"`
	TotalLectures     int64   `json:"total_lectures"`
	CompletedLectures int64   `json:"completed_lectures"`
	ProgressPercent   float64 `json:"progress_percent"`
}
