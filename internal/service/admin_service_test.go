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

func newAdminService(db *gorm.DB) AdminService {
	return NewAdminService(
		repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewStatsRepository(db),
		testValidator(),
		testLogger(),
	)
}

func TestAdminOperationsRequireAdminRole(t *testing.T) {
	db := openTestDB(t)
	student := seedUser(t, db, "student@test.edu")

	svc := newAdminService(db)
	caller := guard.Identity{UserID: student.ID}
	ctx := context.Background()

	_, _, err := svc.ListUsers(ctx, caller, dto.AdminUserFilter{})
	require.ErrorIs(t, err, guard.ErrForbidden)

	_, err = svc.PlatformStats(ctx, caller)
	require.ErrorIs(t, err, guard.ErrForbidden)

	err = svc.DeleteCourse(ctx, caller, 1)
	require.ErrorIs(t, err, guard.ErrForbidden)
}

func TestAdminUpdateUserRole(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@test.edu")
	target := seedUser(t, db, "target@test.edu")

	svc := newAdminService(db)
	caller := guard.Identity{UserID: admin.ID, IsAdmin: true}

	professor := true
	updated, err := svc.UpdateUserRole(context.Background(), caller, target.ID, dto.AdminUpdateRoleRequest{IsProfessor: &professor})
	require.NoError(t, err)
	require.True(t, updated.IsProfessor)
	require.False(t, updated.IsAdmin)
}

func TestAdminUpdateFinalGrade(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@test.edu")
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)
	enrollment := seedEnrollment(t, db, student.ID, course.ID)

	svc := newAdminService(db)
	caller := guard.Identity{UserID: admin.ID, IsAdmin: true}

	updated, err := svc.UpdateFinalGrade(context.Background(), caller, enrollment.ID, dto.AdminUpdateFinalGradeRequest{FinalGrade: 92.5})
	require.NoError(t, err)
	require.NotNil(t, updated.FinalGrade)
	require.Equal(t, 92.5, *updated.FinalGrade)
}

func TestAdminPlatformStats(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@test.edu")
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, student.ID)
	seedEnrollment(t, db, admin.ID, course.ID)

	svc := newAdminService(db)
	caller := guard.Identity{UserID: admin.ID, IsAdmin: true}

	stats, err := svc.PlatformStats(context.Background(), caller)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalUsers)
	require.Equal(t, int64(1), stats.TotalCourses)
	require.Equal(t, int64(1), stats.TotalEnrollments)
}

func TestAdminListUsersFiltersByRole(t *testing.T) {
	db := openTestDB(t)
	admin := seedUser(t, db, "admin@test.edu")
	professor := seedUser(t, db, "prof@test.edu")
	require.NoError(t, db.Model(&professor).Update("is_professor", true).Error)
	seedUser(t, db, "student@test.edu")

	svc := newAdminService(db)
	caller := guard.Identity{UserID: admin.ID, IsAdmin: true}

	users, pagination, err := svc.ListUsers(context.Background(), caller, dto.AdminUserFilter{Role: "professor"})
	require.NoError(t, err)
	require.Equal(t, int64(1), pagination.Total)
	require.Len(t, users, 1)
	require.Equal(t, "prof@test.edu", users[0].Email)
}
