package service

import (
	"strings"

	"eduscore_backend/internal/model"
)

// QuestionResult is the graded outcome for a single question. Selected is
// empty when the student left the question blank.
type QuestionResult struct {
	QuestionID uint   `json:"questionId"`
	Selected   string `json:"selected"`
	IsCorrect  bool   `json:"isCorrect"`
	Marks      int    `json:"marks"`
}

// GradeResult is what the grading engine produces for one submission.
type GradeResult struct {
	ScoreEarned   int              `json:"scoreEarned"`
	TotalPossible int              `json:"totalPossible"`
	PerQuestion   []QuestionResult `json:"perQuestion"`
}

// NormalizeLabel uppercases and trims an option label once at the
// boundary; all comparisons afterwards are exact.
func NormalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

func validLabel(label string) bool {
	switch label {
	case model.OptionA, model.OptionB, model.OptionC, model.OptionD:
		return true
	}
	return false
}

// Grade scores a submission against the quiz's question set. It is pure:
// no clock, no storage, no randomness. A question missing from answers is
// blank and never correct. There is no partial credit and no penalty, and
// the quiz time limit plays no part here.
func Grade(questions []model.Question, answers map[uint]string) GradeResult {
	result := GradeResult{
		PerQuestion: make([]QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		result.TotalPossible += q.Marks

		qr := QuestionResult{
			QuestionID: q.ID,
			Marks:      q.Marks,
		}

		if raw, ok := answers[q.ID]; ok {
			selected := NormalizeLabel(raw)
			if selected != "" {
				qr.Selected = selected
				qr.IsCorrect = selected == NormalizeLabel(q.CorrectOption)
			}
		}

		if qr.IsCorrect {
			result.ScoreEarned += q.Marks
		}

		result.PerQuestion = append(result.PerQuestion, qr)
	}

	return result
}
