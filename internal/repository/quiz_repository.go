package repository

import (
	"eduscore_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) SetPublished(quizID uint, published bool) error {
	return r.DB.Model(&model.Quiz{}).
		Where("id = ?", quizID).
		Update("is_published", published).Error
}

// ListByTeacher returns the teacher's quizzes newest-first, with their
// course preloaded for display.
func (r *QuizRepository) ListByTeacher(teacherID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Course").
		Where("created_by_id = ?", teacherID).
		Order("created_at desc").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListPublishedByCourse(courseID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("course_id = ? AND is_published = ?", courseID, true).
		Order("created_at desc").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) CountByTeacher(teacherID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("created_by_id = ?", teacherID).Count(&count).Error
	return count, err
}

func (r *QuizRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

// ListQuestions returns the quiz's questions in creation order; display
// and grading both rely on this ordering being stable.
func (r *QuizRepository) ListQuestions(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Order("id asc").Find(&questions).Error
	return questions, err
}

// RecomputeTotalMarks re-derives quiz.total_marks from the question rows.
func (r *QuizRepository) RecomputeTotalMarks(quizID uint) error {
	return r.DB.Model(&model.Quiz{}).
		Where("id = ?", quizID).
		Update("total_marks", gorm.Expr(
			"(SELECT COALESCE(SUM(marks), 0) FROM questions WHERE quiz_id = ? AND deleted_at IS NULL)", quizID,
		)).Error
}

func (r *QuizRepository) CountAttempts(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

// Delete removes the quiz and everything hanging off it in one transaction.
func (r *QuizRepository) Delete(quizID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var attemptIDs []uint
		if err := tx.Model(&model.QuizAttempt{}).Where("quiz_id = ?", quizID).Pluck("id", &attemptIDs).Error; err != nil {
			return err
		}
		if len(attemptIDs) > 0 {
			if err := tx.Where("attempt_id IN ?", attemptIDs).Delete(&model.StudentAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizAttempt{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, quizID).Error
	})
}
