package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/models"
)

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	app, db := newTestApp(t)
	student := seedUser(t, db, "student@test.edu")

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/admin/stats", student.ID, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "admin access required", envelope.Message)

	resp, envelope = doRequest(t, app, http.MethodGet, "/api/admin/stats", 0, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminStatsAndUserManagement(t *testing.T) {
	app, db := newTestApp(t)
	admin := seedUser(t, db, "admin@test.edu")
	require.NoError(t, db.Model(&admin).Update("is_admin", true).Error)
	target := seedUser(t, db, "target@test.edu")
	seedCourse(t, db, target.ID)

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/admin/stats", admin.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats dto.PlatformStats
	require.NoError(t, json.Unmarshal(envelope.Data, &stats))
	require.Equal(t, int64(2), stats.TotalUsers)
	require.Equal(t, int64(1), stats.TotalCourses)

	professor := true
	resp, envelope = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", target.ID), admin.ID, dto.AdminUpdateRoleRequest{IsProfessor: &professor})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated dto.UserResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &updated))
	require.True(t, updated.IsProfessor)

	var stored models.User
	require.NoError(t, db.First(&stored, target.ID).Error)
	require.True(t, stored.IsProfessor)
}

func TestAdminFinalGrade(t *testing.T) {
	app, db := newTestApp(t)
	admin := seedUser(t, db, "admin@test.edu")
	require.NoError(t, db.Model(&admin).Update("is_admin", true).Error)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)

	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	resp, envelope := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/admin/enrollments/%d/grade", enrollment.ID), admin.ID, dto.AdminUpdateFinalGradeRequest{FinalGrade: 88})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var graded dto.EnrollmentResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &graded))
	require.NotNil(t, graded.FinalGrade)
	require.Equal(t, 88.0, *graded.FinalGrade)
}
