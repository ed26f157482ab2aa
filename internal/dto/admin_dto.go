package dto

import "github.com/collegecoursera/api/internal/models"

// AdminUserFilter describes the admin user-listing query parameters.
type AdminUserFilter struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Role   string `query:"role" validate:"omitempty,oneof=student professor admin"`
}

// AdminUpdateRoleRequest toggles a user's role flags.
type AdminUpdateRoleRequest struct {
	IsProfessor *bool `json:"is_professor"`
	IsAdmin     *bool `json:"is_admin"`
}

// AdminUpdateFinalGradeRequest sets the final grade on an enrollment.
type AdminUpdateFinalGradeRequest struct {
	FinalGrade float64 `json:"finalGrade" validate:"gte=0,lte=100"`
}

// AdminUserResponse extends the public user projection with counts.
type AdminUserResponse struct {
	UserResponse
	CreatedCourseCount int64 `json:"created_course_count"`
	EnrollmentCount    int64 `json:"enrollment_count"`
}

// NewAdminUserResponse builds the admin user projection.
func NewAdminUserResponse(user models.User, createdCourses, enrollments int64) AdminUserResponse {
	return AdminUserResponse{
		UserResponse:       NewUserResponse(user),
		CreatedCourseCount: createdCourses,
		EnrollmentCount:    enrollments,
	}
}

// PlatformStats is the aggregate snapshot shown on the admin overview.
type PlatformStats struct {
	TotalUsers       int64   `json:"totalUsers"`
	TotalCourses     int64   `json:"totalCourses"`
	TotalEnrollments int64   `json:"totalEnrollments"`
	TotalReviews     int64   `json:"totalReviews"`
	AverageRating    float64 `json:"averageRating"`
	ProfessorCourses int64   `json:"professorCourses"`
	StudentCourses   int64   `json:"studentCourses"`
}

// DepartmentCount groups course totals by department.
type DepartmentCount struct {
	DepartmentOrClub string `json:"department_or_club" gorm:"column:department_or_club"`
	Count            int64  `json:"count"`
}

// CourseStats breaks down the course catalogue for admins.
type CourseStats struct {
	TotalCourses        int64             `json:"totalCourses"`
	CoursesByDepartment []DepartmentCount `json:"coursesByDepartment"`
	TopRatedCourses     []CourseResponse  `json:"topRatedCourses"`
}

// RoleCount groups users by role flags.
type RoleCount struct {
	IsProfessor bool  `json:"is_professor"`
	IsAdmin     bool  `json:"is_admin"`
	Count       int64 `json:"count"`
}

// UserStats breaks down the user base for admins.
type UserStats struct {
	TotalUsers  int64       `json:"totalUsers"`
	UsersByRole []RoleCount `json:"usersByRole"`
	ActiveUsers int64       `json:"activeUsers"`
}

// CourseEnrollmentCount groups enrollment totals by course.
type CourseEnrollmentCount struct {
	CourseID uint  `json:"course_id"`
	Count    int64 `json:"count"`
}

// EnrollmentStats breaks down enrollments for admins.
type EnrollmentStats struct {
	TotalEnrollments    int64                   `json:"totalEnrollments"`
	EnrollmentsByCourse []CourseEnrollmentCount `json:"enrollmentsByCourse"`
	AverageFinalGrade   float64                 `json:"averageFinalGrade"`
}
