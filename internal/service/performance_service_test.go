package service

import (
	"testing"
	"time"

	"eduscore_backend/internal/model"
	"eduscore_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) performanceService() *PerformanceService {
	return NewPerformanceService(f.attempts, f.quizzes, f.courses, f.materials, 10)
}

// seedScoredAttempt stores a published quiz plus one submitted attempt at
// the given score, submitted at the given time.
func (f *fixture) seedScoredAttempt(t *testing.T, title string, score float64, submittedAt time.Time) *model.QuizAttempt {
	t.Helper()

	quiz := &model.Quiz{
		CourseID:    f.course.ID,
		Title:       title,
		TotalMarks:  100,
		TimeLimit:   10,
		CreatedByID: f.teacher.ID,
		IsPublished: true,
	}
	require.NoError(t, f.quizzes.Create(quiz))

	attempt := &model.QuizAttempt{
		QuizID:      quiz.ID,
		StudentID:   f.student.ID,
		StartedAt:   submittedAt,
		SubmittedAt: &submittedAt,
		Score:       score,
		TotalMarks:  100,
		IsSubmitted: true,
	}
	require.NoError(t, f.attempts.CreateWithAnswers(attempt, nil))
	return attempt
}

func TestStudentCourseStatsEmpty(t *testing.T) {
	f := newFixture(t)

	stats, err := f.performanceService().StudentCourseStats(f.student.ID, f.course.ID)
	require.NoError(t, err)

	assert.Zero(t, stats.Highest)
	assert.Zero(t, stats.Lowest)
	assert.Zero(t, stats.Average)
	assert.NotNil(t, stats.History)
	assert.Empty(t, stats.History)
}

func TestStudentCourseStatsAggregates(t *testing.T) {
	f := newFixture(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.seedScoredAttempt(t, "Quiz One", 88, base)
	f.seedScoredAttempt(t, "Quiz Two", 92, base.Add(time.Hour))
	latest := f.seedScoredAttempt(t, "Quiz Three", 75, base.Add(2*time.Hour))

	stats, err := f.performanceService().StudentCourseStats(f.student.ID, f.course.ID)
	require.NoError(t, err)

	assert.Equal(t, 92.0, stats.Highest)
	assert.Equal(t, 75.0, stats.Lowest)
	assert.Equal(t, 85.0, stats.Average)

	require.Len(t, stats.History, 3)
	assert.Equal(t, latest.ID, stats.History[0].AttemptID)
	assert.Equal(t, "Quiz Three", stats.History[0].QuizTitle)
	assert.Equal(t, util.DefaultAttemptFeedback, stats.History[0].Feedback)
}

func TestStudentCourseStatsRounding(t *testing.T) {
	f := newFixture(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.seedScoredAttempt(t, "Quiz One", 1, base)
	f.seedScoredAttempt(t, "Quiz Two", 1, base.Add(time.Hour))
	f.seedScoredAttempt(t, "Quiz Three", 2, base.Add(2*time.Hour))

	stats, err := f.performanceService().StudentCourseStats(f.student.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.33, stats.Average)
}

func TestStudentCourseStatsScopedToCourse(t *testing.T) {
	f := newFixture(t)

	other := &model.Course{Title: "History", Code: "HIST01", TeacherID: f.teacher.ID}
	require.NoError(t, f.courses.Create(other))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.seedScoredAttempt(t, "Math Quiz", 90, base)

	stats, err := f.performanceService().StudentCourseStats(f.student.ID, other.ID)
	require.NoError(t, err)
	assert.Empty(t, stats.History)
}

func TestTeacherOverview(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.materials.Create(&model.Material{CourseID: f.course.ID, Title: "Syllabus", FileURL: "/uploads/syllabus.pdf"}))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.seedScoredAttempt(t, "Quiz One", 88, base)
	f.seedScoredAttempt(t, "Quiz Two", 92, base.Add(time.Hour))
	f.seedScoredAttempt(t, "Quiz Three", 75, base.Add(2*time.Hour))

	overview, err := f.performanceService().TeacherOverview(f.teacher.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), overview.CourseCount)
	assert.Equal(t, int64(1), overview.StudentCount)
	assert.Equal(t, int64(3), overview.QuizCount)
	assert.Equal(t, int64(1), overview.MaterialCount)
	assert.Equal(t, 85.0, overview.AverageScore)

	require.Len(t, overview.RecentAttempts, 3)
	assert.Equal(t, "Quiz Three", overview.RecentAttempts[0].QuizTitle)
	assert.Equal(t, "Alan Turing", overview.RecentAttempts[0].StudentName)
	assert.Equal(t, "alan@example.com", overview.RecentAttempts[0].StudentEmail)
}

func TestTeacherOverviewEmpty(t *testing.T) {
	f := newFixture(t)

	other := &model.User{FirstName: "New", Email: "new-teacher@example.com", Password: "x", Role: model.Teacher}
	require.NoError(t, f.users.Create(other))

	overview, err := f.performanceService().TeacherOverview(other.ID)
	require.NoError(t, err)

	assert.Zero(t, overview.CourseCount)
	assert.Zero(t, overview.AverageScore)
	assert.Empty(t, overview.RecentAttempts)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 85.0, round2(85.0))
	assert.Equal(t, 1.33, round2(4.0/3.0))
	assert.Equal(t, 66.67, round2(200.0/3.0))
}
