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

func newContentService(db *gorm.DB) ContentService {
	return NewContentService(repository.NewContentRepository(db), repository.NewCourseRepository(db), testValidator(), testLogger())
}

func TestContentTreeCreation(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner@test.edu")
	course := seedCourse(t, db, owner.ID)

	svc := newContentService(db)
	caller := guard.Identity{UserID: owner.ID}
	ctx := context.Background()

	module, err := svc.CreateModule(ctx, caller, dto.ModuleCreateRequest{CourseID: course.ID, Title: "Week 1"})
	require.NoError(t, err)

	lecture, err := svc.CreateLecture(ctx, caller, module.ID, dto.LectureCreateRequest{Title: "Intro"})
	require.NoError(t, err)
	require.Equal(t, module.ID, lecture.ModuleID)

	assignment, err := svc.CreateAssignment(ctx, caller, module.ID, dto.AssignmentCreateRequest{Title: "Quiz 1"})
	require.NoError(t, err)

	question, err := svc.CreateQuestion(ctx, caller, assignment.ID, dto.QuestionCreateRequest{
		QuestionText:  "Which layer does TCP live in?",
		OptionA:       "Transport",
		OptionB:       "Network",
		OptionC:       "Link",
		OptionD:       "Application",
		CorrectOption: "A",
	})
	require.NoError(t, err)
	require.Equal(t, assignment.ID, question.AssignmentID)

	modules, err := svc.ListModules(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	require.Len(t, modules[0].Lectures, 1)
	require.Len(t, modules[0].Assignments, 1)
	require.Len(t, modules[0].Assignments[0].Questions, 1)
}

func TestContentMutationByNonOwnerReadsAsNotFound(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner@test.edu")
	stranger := seedUser(t, db, "stranger@test.edu")
	course := seedCourse(t, db, owner.ID)

	svc := newContentService(db)
	ctx := context.Background()

	module, err := svc.CreateModule(ctx, guard.Identity{UserID: owner.ID}, dto.ModuleCreateRequest{CourseID: course.ID, Title: "Week 1"})
	require.NoError(t, err)

	_, err = svc.CreateLecture(ctx, guard.Identity{UserID: stranger.ID}, module.ID, dto.LectureCreateRequest{Title: "Intruder"})
	require.ErrorIs(t, err, guard.ErrNotFound)

	title := "Renamed"
	_, err = svc.UpdateModule(ctx, guard.Identity{UserID: stranger.ID}, module.ID, dto.ModuleUpdateRequest{Title: &title})
	require.ErrorIs(t, err, guard.ErrNotFound)
}

func TestCreateModuleForUnknownCourse(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner@test.edu")

	svc := newContentService(db)

	_, err := svc.CreateModule(context.Background(), guard.Identity{UserID: owner.ID}, dto.ModuleCreateRequest{CourseID: 999, Title: "Orphan"})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestGetAssignmentHidesAnswerKey(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner@test.edu")
	course := seedCourse(t, db, owner.ID)
	assignment := seedAssignment(t, db, course.ID, "C")

	svc := newContentService(db)

	response, err := svc.GetAssignment(context.Background(), guard.Identity{UserID: owner.ID}, assignment.ID)
	require.NoError(t, err)
	require.Len(t, response.Questions, 1)
	require.Equal(t, "c", response.Questions[0].OptionC)
}
