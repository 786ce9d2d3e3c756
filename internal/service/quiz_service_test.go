package service

import (
	"testing"

	"eduscore_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuizValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	_, err := svc.CreateQuiz(f.teacher.ID, CreateQuizReq{CourseID: f.course.ID})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = svc.CreateQuiz(f.teacher.ID, CreateQuizReq{Title: "Orphan"})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestCreateQuizRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	_, err := svc.CreateQuiz(f.student.ID, CreateQuizReq{CourseID: f.course.ID, Title: "Not mine"})
	assert.ErrorIs(t, err, util.ErrNotCourseOwner)
}

func TestCreateQuizDefaultsTimeLimit(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	quiz, err := svc.CreateQuiz(f.teacher.ID, CreateQuizReq{CourseID: f.course.ID, Title: "Defaults"})
	require.NoError(t, err)
	assert.Equal(t, 10, quiz.TimeLimit)
	assert.False(t, quiz.IsPublished)
	assert.Zero(t, quiz.TotalMarks)
}

func TestAddQuestionDerivesTotalMarks(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	quiz, err := svc.CreateQuiz(f.teacher.ID, CreateQuizReq{CourseID: f.course.ID, Title: "Totals"})
	require.NoError(t, err)

	_, err = svc.AddQuestion(f.teacher.ID, quiz.ID, AddQuestionReq{Text: "Q1", CorrectOption: "a", Marks: 2})
	require.NoError(t, err)
	q2, err := svc.AddQuestion(f.teacher.ID, quiz.ID, AddQuestionReq{Text: "Q2", CorrectOption: "B"})
	require.NoError(t, err)

	// omitted marks default to 1, labels are stored normalized
	assert.Equal(t, 1, q2.Marks)
	assert.Equal(t, "B", q2.CorrectOption)

	stored, err := f.quizzes.FindByID(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TotalMarks)
}

func TestAddQuestionRejectsBadLabel(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	quiz, err := svc.CreateQuiz(f.teacher.ID, CreateQuizReq{CourseID: f.course.ID, Title: "Labels"})
	require.NoError(t, err)

	_, err = svc.AddQuestion(f.teacher.ID, quiz.ID, AddQuestionReq{Text: "Q", CorrectOption: "E"})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = svc.AddQuestion(f.teacher.ID, quiz.ID, AddQuestionReq{Text: "Q", CorrectOption: "  "})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestQuestionsFreezeAfterFirstAttempt(t *testing.T) {
	f := newFixture(t)
	quiz, _ := f.seedQuiz(t)

	_, err := f.attemptService().SubmitAttempt(f.student.ID, quiz.ID, map[uint]string{})
	require.NoError(t, err)

	_, err = f.quizService().AddQuestion(f.teacher.ID, quiz.ID, AddQuestionReq{Text: "Late", CorrectOption: "A"})
	assert.ErrorIs(t, err, util.ErrQuizHasAttempts)
}

func TestPublishRequiresAuthor(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	quiz, err := svc.CreateQuiz(f.teacher.ID, CreateQuizReq{CourseID: f.course.ID, Title: "Mine"})
	require.NoError(t, err)

	err = svc.Publish(f.student.ID, quiz.ID)
	assert.ErrorIs(t, err, util.ErrNotQuizAuthor)

	err = svc.Publish(f.teacher.ID, quiz.ID)
	require.NoError(t, err)

	stored, err := f.quizzes.FindByID(quiz.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPublished)
}

func TestGetQuizForStudentGuards(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	quiz, err := svc.CreateQuiz(f.teacher.ID, CreateQuizReq{CourseID: f.course.ID, Title: "Hidden"})
	require.NoError(t, err)

	_, err = svc.GetQuizForStudent(f.student.ID, quiz.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotPublished)

	require.NoError(t, svc.Publish(f.teacher.ID, quiz.ID))

	outsider := f.newStudent(t, "outsider@example.com", false)
	_, err = svc.GetQuizForStudent(outsider.ID, quiz.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, err = svc.GetQuizForStudent(f.student.ID, 9999)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestGetQuizForStudentStripsAnswerKey(t *testing.T) {
	f := newFixture(t)
	quiz, questions := f.seedQuiz(t)

	view, err := f.quizService().GetQuizForStudent(f.student.ID, quiz.ID)
	require.NoError(t, err)

	assert.Nil(t, view.ExistingAttemptID)
	require.Len(t, view.Questions, len(questions))
	for i, q := range view.Questions {
		assert.Equal(t, questions[i].ID, q.ID)
		assert.Equal(t, questions[i].Marks, q.Marks)
	}
	assert.Equal(t, 4, view.TotalMarks)
}

func TestGetQuizForStudentShortCircuitsExistingAttempt(t *testing.T) {
	f := newFixture(t)
	quiz, _ := f.seedQuiz(t)

	result, err := f.attemptService().SubmitAttempt(f.student.ID, quiz.ID, map[uint]string{})
	require.NoError(t, err)

	view, err := f.quizService().GetQuizForStudent(f.student.ID, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, view.ExistingAttemptID)
	assert.Equal(t, result.Attempt.ID, *view.ExistingAttemptID)
	assert.Empty(t, view.Questions)
}

func TestListCourseQuizzesForStudent(t *testing.T) {
	f := newFixture(t)
	quiz, _ := f.seedQuiz(t)

	// an unpublished quiz stays invisible
	_, err := f.quizService().CreateQuiz(f.teacher.ID, CreateQuizReq{CourseID: f.course.ID, Title: "Draft"})
	require.NoError(t, err)

	rows, err := f.quizService().ListCourseQuizzesForStudent(f.student.ID, f.course.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, quiz.ID, rows[0].ID)
	assert.Nil(t, rows[0].AttemptID)

	result, err := f.attemptService().SubmitAttempt(f.student.ID, quiz.ID, map[uint]string{})
	require.NoError(t, err)

	rows, err = f.quizService().ListCourseQuizzesForStudent(f.student.ID, f.course.ID)
	require.NoError(t, err)
	require.NotNil(t, rows[0].AttemptID)
	assert.Equal(t, result.Attempt.ID, *rows[0].AttemptID)
}

func TestDeleteQuizCascades(t *testing.T) {
	f := newFixture(t)
	quiz, _ := f.seedQuiz(t)

	_, err := f.attemptService().SubmitAttempt(f.student.ID, quiz.ID, map[uint]string{1: "A"})
	require.NoError(t, err)

	require.NoError(t, f.quizService().DeleteQuiz(f.teacher.ID, quiz.ID))

	_, err = f.quizzes.FindByID(quiz.ID)
	assert.Error(t, err)

	questions, err := f.quizzes.ListQuestions(quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, questions)
}
