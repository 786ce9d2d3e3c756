package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eduscore_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// QuizDraftService stages AI-generated quizzes between the generate and
// save steps. A draft is an explicit short-lived entity keyed by a random
// token the caller carries; Redis TTL retires abandoned drafts.
type QuizDraftService struct {
	Redis   *redis.Client
	Quizzes *QuizService
	TTL     time.Duration
}

func NewQuizDraftService(rdb *redis.Client, quizzes *QuizService, ttlMinutes int) *QuizDraftService {
	return &QuizDraftService{
		Redis:   rdb,
		Quizzes: quizzes,
		TTL:     time.Duration(ttlMinutes) * time.Minute,
	}
}

type DraftQuestion struct {
	Text          string `json:"text"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectOption string `json:"correctOption"`
	Marks         int    `json:"marks"`
}

type QuizDraft struct {
	Token     string          `json:"token"`
	CourseID  uint            `json:"courseId"`
	TeacherID uint            `json:"teacherId"`
	Title     string          `json:"title"`
	Questions []DraftQuestion `json:"questions"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type GenerateDraftReq struct {
	CourseID       uint   `json:"courseId" binding:"required"`
	TotalQuestions int    `json:"totalQuestions"`
	Difficulty     string `json:"difficulty"`
	MaterialIDs    []uint `json:"materialIds"`
}

// GenerateDraft produces a draft quiz for the teacher's course and stages
// it under a fresh token. The generator itself is a stand-in that yields a
// fixed question set shaped exactly like manual authoring.
func (s *QuizDraftService) GenerateDraft(ctx context.Context, teacherID uint, req GenerateDraftReq) (*QuizDraft, error) {
	owns, err := s.Quizzes.Courses.IsOwner(teacherID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, util.ErrNotCourseOwner
	}

	draft := &QuizDraft{
		Token:     uuid.New().String(),
		CourseID:  req.CourseID,
		TeacherID: teacherID,
		Title:     "AI Generated Quiz",
		Questions: mockGeneratedQuestions(req.TotalQuestions),
		ExpiresAt: time.Now().Add(s.TTL),
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	if err := s.Redis.Set(ctx, draftKey(draft.Token), payload, s.TTL).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrPersistence, err)
	}
	return draft, nil
}

// GetDraft returns the staged draft; only its creator may read it.
func (s *QuizDraftService) GetDraft(ctx context.Context, teacherID uint, token string) (*QuizDraft, error) {
	payload, err := s.Redis.Get(ctx, draftKey(token)).Bytes()
	if err == redis.Nil {
		return nil, util.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrPersistence, err)
	}

	var draft QuizDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, err
	}
	if draft.TeacherID != teacherID {
		return nil, util.ErrUnauthorized
	}
	return &draft, nil
}

type SaveDraftReq struct {
	Token string `json:"token" binding:"required"`
	Title string `json:"title"`
}

// SaveDraft turns the staged draft into a real quiz with questions, then
// discards the draft so the token cannot be replayed.
func (s *QuizDraftService) SaveDraft(ctx context.Context, teacherID uint, req SaveDraftReq) (*QuizDraft, uint, error) {
	draft, err := s.GetDraft(ctx, teacherID, req.Token)
	if err != nil {
		return nil, 0, err
	}

	title := req.Title
	if title == "" {
		title = draft.Title
	}

	quiz, err := s.Quizzes.CreateQuiz(teacherID, CreateQuizReq{
		CourseID:    draft.CourseID,
		Title:       title,
		Description: "AI Generated Quiz",
	})
	if err != nil {
		return nil, 0, err
	}

	for _, q := range draft.Questions {
		if _, err := s.Quizzes.AddQuestion(teacherID, quiz.ID, AddQuestionReq{
			Text:          q.Text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: q.CorrectOption,
			Marks:         q.Marks,
		}); err != nil {
			return nil, 0, err
		}
	}

	s.Redis.Del(ctx, draftKey(req.Token))
	return draft, quiz.ID, nil
}

func draftKey(token string) string {
	return "quiz_draft:" + token
}

// mockGeneratedQuestions stands in for the external generator. The output
// shape is identical to manual authoring so the save path needs no special
// casing.
func mockGeneratedQuestions(count int) []DraftQuestion {
	pool := []DraftQuestion{
		{
			Text:          "What is the purpose of algebra?",
			OptionA:       "To solve equations",
			OptionB:       "To cook food",
			OptionC:       "To play games",
			OptionD:       "To measure liquids",
			CorrectOption: "A",
			Marks:         2,
		},
		{
			Text:          "Which shape has 4 equal sides?",
			OptionA:       "Triangle",
			OptionB:       "Circle",
			OptionC:       "Square",
			OptionD:       "Hexagon",
			CorrectOption: "C",
			Marks:         2,
		},
	}
	if count <= 0 || count > len(pool) {
		return pool
	}
	return pool[:count]
}
