package dto

import (
	"time"

	"github.com/collegecoursera/api/internal/models"
)

// CommentCreateRequest posts a comment or a threaded reply on a course.
type CommentCreateRequest struct {
	CommentText     string `json:"commentText" validate:"required,min=1,max=4000"`
	ParentCommentID *uint  `json:"parentCommentId" validate:"omitempty,gt=0"`
}

// CommentUpdateRequest edits a comment's text.
type CommentUpdateRequest struct {
	CommentText string `json:"commentText" validate:"required,min=1,max=4000"`
}

// CommentResponse serializes a comment with its author and replies.
type CommentResponse struct {
	ID              uint              `json:"id"`
	CourseID        uint              `json:"course_id"`
	ParentCommentID *uint             `json:"parent_comment_id"`
	CommentText     string            `json:"comment_text"`
	Student         UserLite          `json:"student"`
	Replies         []CommentResponse `json:"replies,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewCommentResponse converts a Comment model including one reply level.
func NewCommentResponse(comment models.Comment) CommentResponse {
	replies := make([]CommentResponse, 0, len(comment.Replies))
	for _, reply := range comment.Replies {
		replies = append(replies, NewCommentResponse(reply))
	}

	return CommentResponse{
		ID:              comment.ID,
		CourseID:        comment.CourseID,
		ParentCommentID: comment.ParentCommentID,
		CommentText:     comment.CommentText,
		Student:         NewUserLite(comment.Student),
		Replies:         replies,
		CreatedAt:       comment.CreatedAt,
		UpdatedAt:       comment.UpdatedAt,
	}
}

// NewCommentResponseSlice converts comment models into DTOs.
func NewCommentResponseSlice(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, NewCommentResponse(comment))
	}
	return responses
}
