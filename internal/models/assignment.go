package models

import "time"

// Assignment is a multiple-choice assessment attached to a module.
type Assignment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ModuleID    uint       `gorm:"not null;index" json:"module_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	OrderIndex  int        `gorm:"not null;default:0" json:"order_index"`
	Questions   []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Option labels for multiple-choice questions.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// ValidOption reports whether label is one of the four answer options.
func ValidOption(label string) bool {
	switch label {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Question holds four answer options and the designated correct one.
type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AssignmentID  uint      `gorm:"not null;index" json:"assignment_id"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	OptionA       string    `gorm:"size:512;not null" json:"option_a"`
	OptionB       string    `gorm:"size:512;not null" json:"option_b"`
	OptionC       string    `gorm:"size:512;not null" json:"option_c"`
	OptionD       string    `gorm:"size:512;not null" json:"option_d"`
	CorrectOption string    `gorm:"size:1;not null" json:"correct_option"`
	OrderIndex    int       `gorm:"not null;default:0" json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
