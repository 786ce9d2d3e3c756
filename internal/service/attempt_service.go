package service

import (
	"errors"
	"fmt"
	"time"

	"eduscore_backend/internal/model"
	"eduscore_backend/internal/repository"
	"eduscore_backend/internal/util"
	"eduscore_backend/pkg/logger"
	"eduscore_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AttemptService struct {
	AttemptRepo *repository.AttemptRepository
	QuizRepo    *repository.QuizRepository
	Courses     OwnershipChecker
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, quizRepo *repository.QuizRepository, courses OwnershipChecker) *AttemptService {
	return &AttemptService{AttemptRepo: attemptRepo, QuizRepo: quizRepo, Courses: courses}
}

// SubmitResult reports the stored attempt plus whether this call created
// it; a resubmission returns the original attempt with Created=false.
type SubmitResult struct {
	Attempt *model.QuizAttempt `json:"attempt"`
	Created bool               `json:"created"`
}

// SubmitAttempt grades and persists a student's one attempt at a quiz.
// Resubmission is idempotent: whoever lost the race, or retried, gets the
// already-stored attempt back rather than an error.
func (s *AttemptService) SubmitAttempt(studentID, quizID uint, answers map[uint]string) (*SubmitResult, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}

	enrolled, err := s.Courses.IsEnrolled(studentID, quiz.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	// Fast path: attempt already stored, return it unchanged.
	if existing, err := s.AttemptRepo.FindByQuizAndStudent(quizID, studentID); err == nil {
		monitoring.AttemptsSubmitted.WithLabelValues("duplicate").Inc()
		return &SubmitResult{Attempt: existing}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", util.ErrPersistence, err)
	}

	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	graded := Grade(questions, answers)

	now := time.Now()
	attempt := &model.QuizAttempt{
		QuizID:      quizID,
		StudentID:   studentID,
		StartedAt:   now,
		SubmittedAt: &now,
		Score:       float64(graded.ScoreEarned),
		TotalMarks:  graded.TotalPossible,
		IsSubmitted: true,
	}

	rows := make([]model.StudentAnswer, len(graded.PerQuestion))
	for i, qr := range graded.PerQuestion {
		rows[i] = model.StudentAnswer{
			QuestionID: qr.QuestionID,
			IsCorrect:  qr.IsCorrect,
		}
		if qr.Selected != "" {
			selected := qr.Selected
			rows[i].SelectedOption = &selected
		}
	}

	err = s.AttemptRepo.CreateWithAnswers(attempt, rows)
	if errors.Is(err, repository.ErrDuplicateAttempt) {
		// A concurrent submission won the unique index; hand back the winner.
		winner, ferr := s.AttemptRepo.FindByQuizAndStudent(quizID, studentID)
		if ferr != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrPersistence, ferr)
		}
		logger.Log.Info("concurrent quiz submission recovered",
			zap.Uint("quizId", quizID),
			zap.Uint("studentId", studentID),
			zap.Uint("attemptId", winner.ID))
		monitoring.AttemptsSubmitted.WithLabelValues("raced").Inc()
		return &SubmitResult{Attempt: winner}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrPersistence, err)
	}

	monitoring.AttemptsSubmitted.WithLabelValues("created").Inc()
	return &SubmitResult{Attempt: attempt, Created: true}, nil
}

// AttemptDetail is an attempt with its per-question answer rows.
type AttemptDetail struct {
	Attempt *model.QuizAttempt    `json:"attempt"`
	Answers []model.StudentAnswer `json:"answers"`
}

// GetAttempt returns the full attempt for its student or for the teacher
// who authored the quiz; everyone else is refused.
func (s *AttemptService) GetAttempt(attemptID uint, actorID uint, role model.UserRole) (*AttemptDetail, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}

	allowed := attempt.StudentID == actorID || role == model.Admin
	if !allowed && attempt.Quiz != nil && attempt.Quiz.CreatedByID == actorID && role == model.Teacher {
		allowed = true
	}
	if !allowed {
		return nil, util.ErrUnauthorized
	}

	answers, err := s.AttemptRepo.ListAnswers(attemptID)
	if err != nil {
		return nil, err
	}
	return &AttemptDetail{Attempt: attempt, Answers: answers}, nil
}
