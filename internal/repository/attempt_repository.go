package repository

import (
	"errors"
	"strings"

	"eduscore_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// ErrDuplicateAttempt signals that the (quiz, student) unique index
// rejected the insert: another attempt already exists, possibly written
// by a racing request a moment ago.
var ErrDuplicateAttempt = errors.New("attempt already exists for this quiz and student")

func (r *AttemptRepository) FindByQuizAndStudent(quizID, studentID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("quiz_id = ? AND student_id = ?", quizID, studentID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Preload("Quiz").First(&attempt, id).Error
	return &attempt, err
}

func (r *AttemptRepository) ListAnswers(attemptID uint) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	err := r.DB.Preload("Question").
		Where("attempt_id = ?", attemptID).
		Order("question_id asc").
		Find(&answers).Error
	return answers, err
}

// CreateWithAnswers persists the attempt and its per-question answer rows
// as one unit. The existence check done before grading and this insert are
// not atomic relative to other requests; the unique index is. When two
// submissions race, exactly one insert succeeds and the loser gets
// ErrDuplicateAttempt to recover from by re-reading.
func (r *AttemptRepository) CreateWithAnswers(attempt *model.QuizAttempt, answers []model.StudentAnswer) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].AttemptID = attempt.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && isDuplicateErr(err) {
		return ErrDuplicateAttempt
	}
	return err
}

// ListByStudentAndCourse returns the student's submitted attempts on the
// course's quizzes, newest submission first, quiz preloaded for titles.
func (r *AttemptRepository) ListByStudentAndCourse(studentID, courseID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Preload("Quiz").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quiz_attempts.student_id = ? AND quizzes.course_id = ? AND quiz_attempts.is_submitted = ?", studentID, courseID, true).
		Order("quiz_attempts.submitted_at desc").
		Find(&attempts).Error
	return attempts, err
}

// ListRecentByTeacher feeds the teacher activity stream.
func (r *AttemptRepository) ListRecentByTeacher(teacherID uint, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Preload("Quiz").Preload("Student").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quizzes.created_by_id = ? AND quiz_attempts.is_submitted = ?", teacherID, true).
		Order("quiz_attempts.submitted_at desc").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) AverageScoreByTeacher(teacherID uint) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.QuizAttempt{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quizzes.created_by_id = ? AND quiz_attempts.is_submitted = ?", teacherID, true).
		Select("AVG(quiz_attempts.score)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// isDuplicateErr covers gorm's translated error plus the raw messages of
// the MySQL and SQLite drivers.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
