package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/models"
	"github.com/collegecoursera/api/internal/repository"
)

func newEnrollmentService(db *gorm.DB) EnrollmentService {
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewContentRepository(db),
		testLogger(),
	)
}

func seedLectures(t *testing.T, db *gorm.DB, courseID uint, count int) []models.Lecture {
	t.Helper()

	module := models.Module{CourseID: courseID, Title: "Week 1"}
	require.NoError(t, db.Create(&module).Error)

	lectures := make([]models.Lecture, 0, count)
	for i := 0; i < count; i++ {
		lecture := models.Lecture{ModuleID: module.ID, Title: "Lecture", OrderIndex: i}
		require.NoError(t, db.Create(&lecture).Error)
		lectures = append(lectures, lecture)
	}
	return lectures
}

func TestEnroll(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)

	svc := newEnrollmentService(db)

	enrollment, err := svc.Enroll(context.Background(), guard.Identity{UserID: student.ID}, course.ID)
	require.NoError(t, err)
	require.Equal(t, course.ID, enrollment.CourseID)
	require.Equal(t, student.ID, enrollment.StudentID)
}

func TestEnrollTwiceRejected(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)

	svc := newEnrollmentService(db)
	caller := guard.Identity{UserID: student.ID}
	ctx := context.Background()

	_, err := svc.Enroll(ctx, caller, course.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, caller, course.ID)
	require.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")

	svc := newEnrollmentService(db)

	_, err := svc.Enroll(context.Background(), guard.Identity{UserID: student.ID}, 999)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCompleteLectureTracksProgress(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	lectures := seedLectures(t, db, course.ID, 4)
	seedEnrollment(t, db, student.ID, course.ID)

	svc := newEnrollmentService(db)
	caller := guard.Identity{UserID: student.ID}
	ctx := context.Background()

	progress, err := svc.CompleteLecture(ctx, caller, lectures[0].ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), progress.TotalLectures)
	require.Equal(t, int64(1), progress.CompletedLectures)
	require.Equal(t, 25.0, progress.ProgressPercent)

	// Completing the same lecture again is a no-op.
	progress, err = svc.CompleteLecture(ctx, caller, lectures[0].ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), progress.CompletedLectures)

	progress, err = svc.CompleteLecture(ctx, caller, lectures[1].ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), progress.CompletedLectures)
	require.Equal(t, 50.0, progress.ProgressPercent)
}

func TestCompleteLectureRequiresEnrollment(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	lectures := seedLectures(t, db, course.ID, 1)

	svc := newEnrollmentService(db)

	_, err := svc.CompleteLecture(context.Background(), guard.Identity{UserID: student.ID}, lectures[0].ID)
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestProgressWithoutLectures(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	seedEnrollment(t, db, student.ID, course.ID)

	svc := newEnrollmentService(db)

	progress, err := svc.Progress(context.Background(), guard.Identity{UserID: student.ID}, course.ID)
	require.NoError(t, err)
	require.Zero(t, progress.TotalLectures)
	require.Zero(t, progress.ProgressPercent)
}
