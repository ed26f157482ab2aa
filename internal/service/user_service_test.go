package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/repository"
)

func newUserService(t *testing.T, db *gorm.DB) (UserService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewReviewRepository(db),
		client,
		time.Minute,
		testValidator(),
		testLogger(),
	)
	return svc, mr
}

func TestDashboardCachesSecondRead(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	seedEnrollment(t, db, student.ID, course.ID)

	svc, _ := newUserService(t, db)
	caller := guard.Identity{UserID: student.ID}
	ctx := context.Background()

	first, err := svc.Dashboard(ctx, caller)
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Len(t, first.EnrolledCourses, 1)

	second, err := svc.Dashboard(ctx, caller)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Len(t, second.EnrolledCourses, 1)
}

func TestUpdateProfileInvalidatesDashboard(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")

	svc, mr := newUserService(t, db)
	caller := guard.Identity{UserID: student.ID}
	ctx := context.Background()

	_, err := svc.Dashboard(ctx, caller)
	require.NoError(t, err)
	require.True(t, mr.Exists(dashboardCacheKey(student.ID)))

	name := "Renamed Student"
	updated, err := svc.UpdateProfile(ctx, caller, dto.ProfileUpdateRequest{FullName: &name})
	require.NoError(t, err)
	require.Equal(t, "Renamed Student", updated.FullName)
	require.False(t, mr.Exists(dashboardCacheKey(student.ID)))

	fresh, err := svc.Dashboard(ctx, caller)
	require.NoError(t, err)
	require.False(t, fresh.CacheHit)
	require.Equal(t, "Renamed Student", fresh.User.FullName)
}

func TestUpdateProfileReplacesInterests(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")

	svc, _ := newUserService(t, db)
	caller := guard.Identity{UserID: student.ID}

	updated, err := svc.UpdateProfile(context.Background(), caller, dto.ProfileUpdateRequest{
		Interests: []string{"databases", "networking"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"databases", "networking"}, updated.Interests)
}
