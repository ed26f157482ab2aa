package dto

import "github.com/collegecoursera/api/internal/models"

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	FullName    string   `json:"full_name" validate:"required,min=2"`
	IsProfessor bool     `json:"is_professor"`
	Interests   []string `json:"interests" validate:"omitempty,dive,min=1"`
}

// LoginRequest is the payload for credential-based login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse bundles the authenticated user with a signed token.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse is the public projection of a user account.
type UserResponse struct {
	ID                uint     `json:"id"`
	Email             string   `json:"email"`
	FullName          string   `json:"full_name"`
	ProfilePictureURL string   `json:"profile_picture_url"`
	IsProfessor       bool     `json:"is_professor"`
	IsAdmin           bool     `json:"is_admin"`
	Interests         []string `json:"interests"`
}

// NewUserResponse converts a User model into its public projection.
func NewUserResponse(user models.User) UserResponse {
	interests := make([]string, 0, len(user.Interests))
	for _, interest := range user.Interests {
		interests = append(interests, interest.TagName)
	}

	return UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		FullName:          user.FullName,
		ProfilePictureURL: user.ProfilePictureURL,
		IsProfessor:       user.IsProfessor,
		IsAdmin:           user.IsAdmin,
		Interests:         interests,
	}
}

// UserLite summarizes a user inside nested responses.
type UserLite struct {
	ID                uint   `json:"id"`
	FullName          string `json:"full_name"`
	ProfilePictureURL string `json:"profile_picture_url"`
	IsProfessor       bool   `json:"is_professor"`
}

// NewUserLite builds the nested user summary.
func NewUserLite(user models.User) UserLite {
	return UserLite{
		ID:                user.ID,
		FullName:          user.FullName,
		ProfilePictureURL: user.ProfilePictureURL,
		IsProfessor:       user.IsProfessor,
	}
}
