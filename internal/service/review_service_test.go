package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/repository"
)

func newReviewService(db *gorm.DB) ReviewService {
	reviews := repository.NewReviewRepository(db)
	courses := repository.NewCourseRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	aggregator := NewRatingAggregator(reviews, courses, testLogger())
	return NewReviewService(reviews, courses, enrollments, aggregator, testValidator(), testLogger())
}

func TestReviewCreateRequiresEnrollment(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)

	svc := newReviewService(db)
	caller := guard.Identity{UserID: student.ID}

	_, err := svc.Create(context.Background(), caller, course.ID, dto.ReviewCreateRequest{Rating: 5})
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestReviewCreateUpdatesCourseRating(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	seedEnrollment(t, db, student.ID, course.ID)

	svc := newReviewService(db)
	caller := guard.Identity{UserID: student.ID}

	review, err := svc.Create(context.Background(), caller, course.ID, dto.ReviewCreateRequest{Rating: 4, Comment: "solid"})
	require.NoError(t, err)
	require.Equal(t, 4, review.Rating)

	average, total := courseRating(t, db, course.ID)
	require.Equal(t, 4.0, average)
	require.Equal(t, 1, total)
}

func TestReviewCreateRejectsDuplicate(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	seedEnrollment(t, db, student.ID, course.ID)

	svc := newReviewService(db)
	caller := guard.Identity{UserID: student.ID}
	ctx := context.Background()

	_, err := svc.Create(ctx, caller, course.ID, dto.ReviewCreateRequest{Rating: 5})
	require.NoError(t, err)

	_, err = svc.Create(ctx, caller, course.ID, dto.ReviewCreateRequest{Rating: 3})
	require.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewUpdateByNonAuthorReadsAsNotFound(t *testing.T) {
	db := openTestDB(t)
	author := seedUser(t, db, "author@test.edu")
	stranger := seedUser(t, db, "stranger@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	seedEnrollment(t, db, author.ID, course.ID)

	svc := newReviewService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, guard.Identity{UserID: author.ID}, course.ID, dto.ReviewCreateRequest{Rating: 5})
	require.NoError(t, err)

	_, err = svc.Update(ctx, guard.Identity{UserID: stranger.ID}, created.ID, dto.ReviewUpdateRequest{Rating: 1})
	require.ErrorIs(t, err, guard.ErrNotFound)
}

func TestReviewDeleteResetsRatingWhenLast(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	seedEnrollment(t, db, student.ID, course.ID)

	svc := newReviewService(db)
	caller := guard.Identity{UserID: student.ID}
	ctx := context.Background()

	created, err := svc.Create(ctx, caller, course.ID, dto.ReviewCreateRequest{Rating: 5})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, caller, created.ID))

	average, total := courseRating(t, db, course.ID)
	require.Zero(t, average)
	require.Zero(t, total)
}

func TestReviewDeleteByAdminReadsAsNotFound(t *testing.T) {
	db := openTestDB(t)
	author := seedUser(t, db, "author@test.edu")
	admin := seedUser(t, db, "admin@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	seedEnrollment(t, db, author.ID, course.ID)

	svc := newReviewService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, guard.Identity{UserID: author.ID}, course.ID, dto.ReviewCreateRequest{Rating: 5})
	require.NoError(t, err)

	err = svc.Delete(ctx, guard.Identity{UserID: admin.ID, IsAdmin: true}, created.ID)
	require.ErrorIs(t, err, guard.ErrNotFound)

	average, total := courseRating(t, db, course.ID)
	require.Equal(t, 5.0, average)
	require.Equal(t, 1, total)
}

func TestReviewCreateSanitizesComment(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	seedEnrollment(t, db, student.ID, course.ID)

	svc := newReviewService(db)
	caller := guard.Identity{UserID: student.ID}

	review, err := svc.Create(context.Background(), caller, course.ID, dto.ReviewCreateRequest{
		Rating:  4,
		Comment: `great <script>alert("x")</script>course`,
	})
	require.NoError(t, err)
	require.NotContains(t, review.Comment, "<script>")
	require.Contains(t, review.Comment, "great")
}
