package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collegecoursera/api/internal/dto"
)

func TestReviewFlow(t *testing.T) {
	app, db := newTestApp(t)
	student := seedUser(t, db, "student@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)

	reviewsTarget := fmt.Sprintf("/api/courses/%d/reviews", course.ID)
	payload := dto.ReviewCreateRequest{Rating: 5, Comment: "excellent pacing"}

	// Reviewing before enrolling is refused.
	resp, envelope := doRequest(t, app, http.MethodPost, reviewsTarget, student.ID, payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "you must be enrolled in this course", envelope.Message)

	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", course.ID), student.ID, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope = doRequest(t, app, http.MethodPost, reviewsTarget, student.ID, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.ReviewResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &created))
	require.Equal(t, 5, created.Rating)
	require.Equal(t, student.ID, created.Student.ID)

	// One review per student per course.
	resp, envelope = doRequest(t, app, http.MethodPost, reviewsTarget, student.ID, payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "you have already reviewed this course", envelope.Message)

	// The list is public and paginated.
	resp, envelope = doRequest(t, app, http.MethodGet, reviewsTarget, 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, envelope.Pagination)
	require.Equal(t, int64(1), envelope.Pagination.Total)

	var reviews []dto.ReviewResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &reviews))
	require.Len(t, reviews, 1)

	// The course rating reflects the new review.
	resp, envelope = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/courses/%d", course.ID), 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail dto.CourseDetailResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &detail))
	require.Equal(t, 5.0, detail.AverageRating)
	require.Equal(t, 1, detail.TotalRatings)
}

func TestReviewUpdateByNonAuthor(t *testing.T) {
	app, db := newTestApp(t)
	author := seedUser(t, db, "author@test.edu")
	stranger := seedUser(t, db, "stranger@test.edu")
	course := seedCourse(t, db, seedUser(t, db, "creator@test.edu").ID)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", course.ID), author.ID, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/reviews", course.ID), author.ID, dto.ReviewCreateRequest{Rating: 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.ReviewResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &created))

	// Someone else's review reads as missing.
	resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/reviews/%d", created.ID), stranger.ID, dto.ReviewUpdateRequest{Rating: 1})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
