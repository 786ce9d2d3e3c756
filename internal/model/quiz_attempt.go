package model

import "time"

// QuizAttempt records a student's single graded pass over a quiz. The
// composite unique index is the authority for the one-attempt-per-student
// rule; application checks are only a fast path in front of it.
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID      uint       `gorm:"uniqueIndex:idx_attempt_quiz_student;type:bigint unsigned" json:"quizId"`
	Quiz        *Quiz      `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	StudentID   uint       `gorm:"uniqueIndex:idx_attempt_quiz_student;type:bigint unsigned" json:"studentId"`
	Student     *User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	SubmittedAt *time.Time `json:"submittedAt"`
	Score       float64    `gorm:"default:0" json:"score"`
	TotalMarks  int        `gorm:"default:0" json:"totalMarks"` // snapshot at submission time
	IsSubmitted bool       `gorm:"default:false" json:"isSubmitted"`
	Feedback    string     `gorm:"type:text" json:"feedback"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// StudentAnswer is one row per question of the quiz, written atomically
// with its attempt and never mutated afterwards. SelectedOption is nil
// when the question was left blank.
type StudentAnswer struct {
	BaseModel
	AttemptID      uint      `gorm:"index;type:bigint unsigned" json:"attemptId"`
	QuestionID     uint      `gorm:"index;type:bigint unsigned" json:"questionId"`
	Question       *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedOption *string   `gorm:"size:1" json:"selectedOption"`
	IsCorrect      bool      `gorm:"default:false" json:"isCorrect"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}
