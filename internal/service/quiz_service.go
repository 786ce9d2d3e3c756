package service

import (
	"errors"

	"eduscore_backend/internal/model"
	"eduscore_backend/internal/repository"
	"eduscore_backend/internal/util"

	"gorm.io/gorm"
)

// OwnershipChecker is the narrow slice of the course subsystem the quiz
// domain needs; CourseRepository satisfies it.
type OwnershipChecker interface {
	IsOwner(teacherID, courseID uint) (bool, error)
	IsEnrolled(studentID, courseID uint) (bool, error)
}

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	Courses     OwnershipChecker
}

func NewQuizService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, courses OwnershipChecker) *QuizService {
	return &QuizService{QuizRepo: quizRepo, AttemptRepo: attemptRepo, Courses: courses}
}

type CreateQuizReq struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TimeLimit   int    `json:"timeLimit"`
}

func (s *QuizService) CreateQuiz(teacherID uint, req CreateQuizReq) (*model.Quiz, error) {
	if req.Title == "" {
		return nil, util.Validationf("title is required")
	}
	if req.CourseID == 0 {
		return nil, util.Validationf("course is required")
	}
	if req.TimeLimit < 0 {
		return nil, util.Validationf("time limit must be positive")
	}

	owns, err := s.Courses.IsOwner(teacherID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, util.ErrNotCourseOwner
	}

	quiz := &model.Quiz{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
		CreatedByID: teacherID,
	}
	if quiz.TimeLimit == 0 {
		quiz.TimeLimit = 10
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

type AddQuestionReq struct {
	Text          string `json:"text"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectOption string `json:"correctOption"`
	Marks         int    `json:"marks"`
}

// AddQuestion appends a question to the teacher's quiz and re-derives the
// quiz total. Questions are frozen once any attempt references the quiz.
func (s *QuizService) AddQuestion(teacherID, quizID uint, req AddQuestionReq) (*model.Question, error) {
	quiz, err := s.findOwnedQuiz(teacherID, quizID)
	if err != nil {
		return nil, err
	}

	if req.Text == "" {
		return nil, util.Validationf("question text is required")
	}
	correct := NormalizeLabel(req.CorrectOption)
	if correct == "" {
		return nil, util.Validationf("correct option is required")
	}
	if !validLabel(correct) {
		return nil, util.Validationf("correct option must be one of A, B, C or D")
	}
	marks := req.Marks
	if marks == 0 {
		marks = 1
	}
	if marks < 0 {
		return nil, util.Validationf("marks must be positive")
	}

	attempts, err := s.QuizRepo.CountAttempts(quiz.ID)
	if err != nil {
		return nil, err
	}
	if attempts > 0 {
		return nil, util.ErrQuizHasAttempts
	}

	question := &model.Question{
		QuizID:        quiz.ID,
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: correct,
		Marks:         marks,
	}

	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	if err := s.QuizRepo.RecomputeTotalMarks(quiz.ID); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) ListQuestions(quizID uint) ([]model.Question, error) {
	return s.QuizRepo.ListQuestions(quizID)
}

func (s *QuizService) Publish(teacherID, quizID uint) error {
	if _, err := s.findOwnedQuiz(teacherID, quizID); err != nil {
		return err
	}
	return s.QuizRepo.SetPublished(quizID, true)
}

func (s *QuizService) DeleteQuiz(teacherID, quizID uint) error {
	if _, err := s.findOwnedQuiz(teacherID, quizID); err != nil {
		return err
	}
	return s.QuizRepo.Delete(quizID)
}

func (s *QuizService) ListTeacherQuizzes(teacherID uint) ([]model.Quiz, error) {
	return s.QuizRepo.ListByTeacher(teacherID)
}

func (s *QuizService) GetQuizForTeacher(teacherID, quizID uint) (*model.Quiz, []model.Question, error) {
	quiz, err := s.findOwnedQuiz(teacherID, quizID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.QuizRepo.ListQuestions(quizID)
	return quiz, questions, err
}

// StudentQuestion is a question stripped of its answer key.
type StudentQuestion struct {
	ID      uint   `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
	OptionC string `json:"optionC"`
	OptionD string `json:"optionD"`
	Marks   int    `json:"marks"`
}

// StudentQuizView is what a student sees before submitting. When an
// attempt already exists the caller should redirect to its result instead
// of rendering the question sheet.
type StudentQuizView struct {
	ID                uint              `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	TimeLimit         int               `json:"timeLimit"`
	TotalMarks        int               `json:"totalMarks"`
	Questions         []StudentQuestion `json:"questions"`
	ExistingAttemptID *uint             `json:"existingAttemptId,omitempty"`
}

// GetQuizForStudent checks enrollment and returns the question sheet minus
// correct options; an existing attempt short-circuits into a pointer to it.
func (s *QuizService) GetQuizForStudent(studentID, quizID uint) (*StudentQuizView, error) {
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

	view := &StudentQuizView{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		TimeLimit:   quiz.TimeLimit,
		TotalMarks:  quiz.TotalMarks,
	}

	if existing, err := s.AttemptRepo.FindByQuizAndStudent(quizID, studentID); err == nil {
		id := existing.ID
		view.ExistingAttemptID = &id
		return view, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}
	view.Questions = make([]StudentQuestion, len(questions))
	for i, q := range questions {
		view.Questions[i] = StudentQuestion{
			ID:      q.ID,
			Text:    q.Text,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
			Marks:   q.Marks,
		}
	}
	return view, nil
}

// CourseQuizRow is one row of the student's course quiz list.
type CourseQuizRow struct {
	model.Quiz
	AttemptID *uint `json:"attemptId,omitempty"`
}

func (s *QuizService) ListCourseQuizzesForStudent(studentID, courseID uint) ([]CourseQuizRow, error) {
	enrolled, err := s.Courses.IsEnrolled(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	quizzes, err := s.QuizRepo.ListPublishedByCourse(courseID)
	if err != nil {
		return nil, err
	}

	rows := make([]CourseQuizRow, len(quizzes))
	for i, quiz := range quizzes {
		rows[i] = CourseQuizRow{Quiz: quiz}
		if attempt, err := s.AttemptRepo.FindByQuizAndStudent(quiz.ID, studentID); err == nil {
			id := attempt.ID
			rows[i].AttemptID = &id
		}
	}
	return rows, nil
}

func (s *QuizService) findOwnedQuiz(teacherID, quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.CreatedByID != teacherID {
		return nil, util.ErrNotQuizAuthor
	}
	return quiz, nil
}
