package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collegecoursera/api/internal/dto"
)

func TestCatalogueReadableWithoutAuth(t *testing.T) {
	app, db := newTestApp(t)
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/courses", 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope.Success)

	var courses []dto.CourseResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &courses))
	require.Len(t, courses, 1)

	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/courses/%d", course.ID), 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/courses/%d/reviews", course.ID), 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/courses/%d/comments", course.ID), 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/courses/%d/modules", course.ID), 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCourseWritesRequireAuth(t *testing.T) {
	app, db := newTestApp(t)
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/courses", 0, dto.CourseCreateRequest{
		Title:            "Operating Systems",
		Description:      "Processes, scheduling and memory management.",
		DepartmentOrClub: "Computer Science",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", course.ID), 0, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
