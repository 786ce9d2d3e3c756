package repository

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eduscore_backend/internal/model"
	"eduscore_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var repoDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", atomic.AddInt64(&repoDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// one connection keeps sqlite from returning busy errors under
	// concurrent writers; contention then surfaces as constraint errors
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func submittedAttempt(quizID, studentID uint, score float64) *model.QuizAttempt {
	now := time.Now()
	return &model.QuizAttempt{
		QuizID:      quizID,
		StudentID:   studentID,
		StartedAt:   now,
		SubmittedAt: &now,
		Score:       score,
		TotalMarks:  10,
		IsSubmitted: true,
	}
}

func TestCreateWithAnswersUniquePerQuizAndStudent(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	first := submittedAttempt(1, 1, 8)
	require.NoError(t, repo.CreateWithAnswers(first, []model.StudentAnswer{
		{QuestionID: 1, IsCorrect: true},
		{QuestionID: 2},
	}))

	// same student, same quiz: the composite index rejects the second row
	err := repo.CreateWithAnswers(submittedAttempt(1, 1, 3), nil)
	assert.ErrorIs(t, err, ErrDuplicateAttempt)

	// different student or different quiz is fine
	require.NoError(t, repo.CreateWithAnswers(submittedAttempt(1, 2, 5), nil))
	require.NoError(t, repo.CreateWithAnswers(submittedAttempt(2, 1, 5), nil))

	stored, err := repo.FindByQuizAndStudent(1, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, 8.0, stored.Score)
}

func TestCreateWithAnswersRollsBackTogether(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	require.NoError(t, repo.CreateWithAnswers(submittedAttempt(1, 1, 8), nil))

	// the duplicate attempt insert fails before any answer row lands
	err := repo.CreateWithAnswers(submittedAttempt(1, 1, 3), []model.StudentAnswer{
		{QuestionID: 1, IsCorrect: true},
	})
	require.ErrorIs(t, err, ErrDuplicateAttempt)

	var count int64
	require.NoError(t, db.Model(&model.StudentAnswer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateWithAnswersAssignsAttemptID(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	attempt := submittedAttempt(7, 7, 2)
	answers := []model.StudentAnswer{{QuestionID: 1}, {QuestionID: 2, IsCorrect: true}}
	require.NoError(t, repo.CreateWithAnswers(attempt, answers))

	stored, err := repo.ListAnswers(attempt.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, row := range stored {
		assert.Equal(t, attempt.ID, row.AttemptID)
	}
}

func TestCreateWithAnswersConcurrentSubmissions(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	const workers = 8
	var created, duplicated int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.CreateWithAnswers(submittedAttempt(3, 3, 6), nil)
			switch {
			case err == nil:
				atomic.AddInt64(&created, 1)
			case err == ErrDuplicateAttempt:
				atomic.AddInt64(&duplicated, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), created)
	assert.Equal(t, int64(workers-1), duplicated)
}

func TestListRecentByTeacherOrdersAndLimits(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	teacher := model.User{FirstName: "T", Email: "t@example.com", Password: "x", Role: model.Teacher}
	require.NoError(t, db.Create(&teacher).Error)
	student := model.User{FirstName: "S", Email: "s@example.com", Password: "x", Role: model.Student}
	require.NoError(t, db.Create(&student).Error)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		quiz := model.Quiz{Title: fmt.Sprintf("Quiz %d", i), CreatedByID: teacher.ID, IsPublished: true}
		require.NoError(t, db.Create(&quiz).Error)

		at := base.Add(time.Duration(i) * time.Hour)
		attempt := submittedAttempt(quiz.ID, student.ID, float64(i))
		attempt.SubmittedAt = &at
		require.NoError(t, repo.CreateWithAnswers(attempt, nil))
	}

	recent, err := repo.ListRecentByTeacher(teacher.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Quiz 2", recent[0].Quiz.Title)
	assert.Equal(t, "Quiz 1", recent[1].Quiz.Title)
	assert.Equal(t, "S", recent[0].Student.FirstName)
}

func TestAverageScoreByTeacher(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	teacher := model.User{FirstName: "T", Email: "t2@example.com", Password: "x", Role: model.Teacher}
	require.NoError(t, db.Create(&teacher).Error)

	// no attempts yet: zero, not an error
	avg, err := repo.AverageScoreByTeacher(teacher.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)

	quiz := model.Quiz{Title: "Quiz", CreatedByID: teacher.ID, IsPublished: true}
	require.NoError(t, db.Create(&quiz).Error)
	require.NoError(t, repo.CreateWithAnswers(submittedAttempt(quiz.ID, 1, 88), nil))
	require.NoError(t, repo.CreateWithAnswers(submittedAttempt(quiz.ID, 2, 92), nil))

	avg, err = repo.AverageScoreByTeacher(teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, avg)
}
