package dto

import (
	"time"

	"github.com/collegecoursera/api/internal/models"
)

// ReviewCreateRequest is the payload for rating a course.
type ReviewCreateRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// ReviewUpdateRequest edits an existing review; the rating stays mandatory
// so an update can never leave a review without one.
type ReviewUpdateRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// ReviewResponse serializes a review with its author summary.
type ReviewResponse struct {
	ID        uint      `json:"id"`
	CourseID  uint      `json:"course_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Student   UserLite  `json:"student"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReviewResponse converts a Review model into a DTO.
func NewReviewResponse(review models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		CourseID:  review.CourseID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Student:   NewUserLite(review.Student),
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// NewReviewResponseSlice converts review models into DTOs.
func NewReviewResponseSlice(reviews []models.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, NewReviewResponse(review))
	}
	return responses
}
