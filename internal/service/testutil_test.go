package service

import (
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserInterest{},
		&models.Course{},
		&models.CourseTag{},
		&models.Module{},
		&models.Lecture{},
		&models.Assignment{},
		&models.Question{},
		&models.Submission{},
		&models.Answer{},
		&models.Enrollment{},
		&models.LectureCompletion{},
		&models.Review{},
		&models.Comment{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x", FullName: "Test User"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, creatorID uint) models.Course {
	t.Helper()

	course := models.Course{
		Title:            "Distributed Systems",
		Description:      "Consensus, replication and failure models.",
		DepartmentOrClub: "Computer Science",
		CreatorID:        creatorID,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedEnrollment(t *testing.T, db *gorm.DB, studentID, courseID uint) models.Enrollment {
	t.Helper()

	enrollment := models.Enrollment{StudentID: studentID, CourseID: courseID}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}
