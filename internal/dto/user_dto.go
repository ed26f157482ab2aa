package dto

// ProfileUpdateRequest edits the caller's own profile.
type ProfileUpdateRequest struct {
	FullName          *string  `json:"full_name" validate:"omitempty,min=2,max=255"`
	ProfilePictureURL *string  `json:"profile_picture_url" validate:"omitempty,url"`
	Interests         []string `json:"interests" validate:"omitempty,dive,min=1"`
}

// DashboardResponse aggregates the caller's activity in one projection.
type DashboardResponse struct {
	User            UserResponse         `json:"user"`
	EnrolledCourses []EnrollmentResponse `json:"enrolled_courses"`
	CreatedCourses  []CourseResponse     `json:"created_courses"`
	Submissions     []SubmissionResponse `json:"submissions"`
	Reviews         []ReviewResponse     `json:"reviews"`
	CacheHit        bool                 `json:"-"`
}
