package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"eduscore_backend/internal/model"
	"eduscore_backend/internal/repository"
	"eduscore_backend/pkg/database"
	"eduscore_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database with the full schema. Each
// call gets its own named shared-cache instance so parallel tests do not
// see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

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

// fixture wires the repositories against a test database and seeds the
// usual cast: a teacher, an enrolled student, and the teacher's course.
type fixture struct {
	db        *gorm.DB
	users     *repository.UserRepository
	courses   *repository.CourseRepository
	materials *repository.MaterialRepository
	quizzes   *repository.QuizRepository
	attempts  *repository.AttemptRepository

	teacher *model.User
	student *model.User
	course  *model.Course
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	f := &fixture{
		db:        db,
		users:     repository.NewUserRepository(db),
		courses:   repository.NewCourseRepository(db),
		materials: repository.NewMaterialRepository(db),
		quizzes:   repository.NewQuizRepository(db),
		attempts:  repository.NewAttemptRepository(db),
	}

	f.teacher = &model.User{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "x", Role: model.Teacher}
	require.NoError(t, f.users.Create(f.teacher))

	f.student = &model.User{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Password: "x", Role: model.Student}
	require.NoError(t, f.users.Create(f.student))

	f.course = &model.Course{Title: "Mathematics", Code: "MATH42", TeacherID: f.teacher.ID}
	require.NoError(t, f.courses.Create(f.course))
	require.NoError(t, f.courses.CreateEnrollment(&model.Enrollment{StudentID: f.student.ID, CourseID: f.course.ID}))

	return f
}

func (f *fixture) newStudent(t *testing.T, email string, enroll bool) *model.User {
	t.Helper()

	u := &model.User{FirstName: "Extra", Email: email, Password: "x", Role: model.Student}
	require.NoError(t, f.users.Create(u))
	if enroll {
		require.NoError(t, f.courses.CreateEnrollment(&model.Enrollment{StudentID: u.ID, CourseID: f.course.ID}))
	}
	return u
}

func (f *fixture) quizService() *QuizService {
	return NewQuizService(f.quizzes, f.attempts, f.courses)
}

func (f *fixture) attemptService() *AttemptService {
	return NewAttemptService(f.attempts, f.quizzes, f.courses)
}

// seedQuiz builds a published two-question quiz: Q1 worth 2 marks with
// correct option A, Q2 worth 2 marks with correct option C.
func (f *fixture) seedQuiz(t *testing.T) (*model.Quiz, []model.Question) {
	t.Helper()

	svc := f.quizService()
	quiz, err := svc.CreateQuiz(f.teacher.ID, CreateQuizReq{CourseID: f.course.ID, Title: "Algebra Basics"})
	require.NoError(t, err)

	_, err = svc.AddQuestion(f.teacher.ID, quiz.ID, AddQuestionReq{
		Text:          "What is the purpose of algebra?",
		OptionA:       "To solve equations",
		OptionB:       "To cook food",
		OptionC:       "To play games",
		OptionD:       "To measure liquids",
		CorrectOption: "A",
		Marks:         2,
	})
	require.NoError(t, err)

	_, err = svc.AddQuestion(f.teacher.ID, quiz.ID, AddQuestionReq{
		Text:          "Which shape has 4 equal sides?",
		OptionA:       "Triangle",
		OptionB:       "Circle",
		OptionC:       "Square",
		OptionD:       "Hexagon",
		CorrectOption: "C",
		Marks:         2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Publish(f.teacher.ID, quiz.ID))

	quizRow, err := f.quizzes.FindByID(quiz.ID)
	require.NoError(t, err)
	questions, err := f.quizzes.ListQuestions(quiz.ID)
	require.NoError(t, err)
	return quizRow, questions
}
