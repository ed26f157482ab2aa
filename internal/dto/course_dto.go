package dto

import (
	"time"

	"github.com/collegecoursera/api/internal/models"
)

// CourseCreateRequest is the payload for publishing a course.
type CourseCreateRequest struct {
	Title            string   `json:"title" validate:"required,min=3,max=255"`
	Description      string   `json:"description" validate:"required,min=10"`
	DepartmentOrClub string   `json:"department_or_club" validate:"required,min=2,max=255"`
	Tags             []string `json:"tags" validate:"omitempty,dive,min=1"`
}

// CourseUpdateRequest is the payload for editing a course.
type CourseUpdateRequest struct {
	Title            *string  `json:"title" validate:"omitempty,min=3,max=255"`
	Description      *string  `json:"description" validate:"omitempty,min=10"`
	DepartmentOrClub *string  `json:"department_or_club" validate:"omitempty,min=2,max=255"`
	Tags             []string `json:"tags" validate:"omitempty,dive,min=1"`
}

// CourseListFilter describes the query parameters for the course catalogue.
type CourseListFilter struct {
	Page       int      `query:"page"`
	Limit      int      `query:"limit"`
	Search     string   `query:"search"`
	Tags       []string `query:"tags"`
	Department string   `query:"department"`
	SortBy     string   `query:"sortBy" validate:"omitempty,oneof=created_at title average_rating total_ratings"`
	SortOrder  string   `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// CourseSearchFilter describes the dedicated search endpoint parameters.
type CourseSearchFilter struct {
	Query             string   `query:"q"`
	Tags              []string `query:"tags"`
	Department        string   `query:"department"`
	MinRating         *float64 `query:"minRating" validate:"omitempty,gte=0,lte=5"`
	IsProfessorCourse *bool    `query:"isProfessorCourse"`
}

// CourseResponse is the catalogue projection of a course.
type CourseResponse struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	DepartmentOrClub  string    `json:"department_or_club"`
	IsProfessorCourse bool      `json:"is_professor_course"`
	AverageRating     float64   `json:"average_rating"`
	TotalRatings      int       `json:"total_ratings"`
	EnrollmentCount   int64     `json:"enrollment_count"`
	Creator           UserLite  `json:"creator"`
	Tags              []string  `json:"tags"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CourseDetailResponse adds the module tree to the catalogue projection.
type CourseDetailResponse struct {
	CourseResponse
	Modules []ModuleResponse `json:"modules"`
	Reviews []ReviewResponse `json:"reviews"`
}

// NewCourseResponse converts a Course model into its catalogue projection.
func NewCourseResponse(course models.Course, enrollmentCount int64) CourseResponse {
	tags := make([]string, 0, len(course.Tags))
	for _, tag := range course.Tags {
		tags = append(tags, tag.TagName)
	}

	return CourseResponse{
		ID:                course.ID,
		Title:             course.Title,
		Description:       course.Description,
		DepartmentOrClub:  course.DepartmentOrClub,
		IsProfessorCourse: course.IsProfessorCourse,
		AverageRating:     course.AverageRating,
		TotalRatings:      course.TotalRatings,
		EnrollmentCount:   enrollmentCount,
		Creator:           NewUserLite(course.Creator),
		Tags:              tags,
		CreatedAt:         course.CreatedAt,
		UpdatedAt:         course.UpdatedAt,
	}
}

// NewCourseDetailResponse converts a fully loaded course including modules.
func NewCourseDetailResponse(course models.Course, enrollmentCount int64) CourseDetailResponse {
	detail := CourseDetailResponse{
		CourseResponse: NewCourseResponse(course, enrollmentCount),
		Modules:        NewModuleResponseSlice(course.Modules),
		Reviews:        NewReviewResponseSlice(course.Reviews),
	}

	return detail
}
