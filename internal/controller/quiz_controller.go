package controller

import (
	"eduscore_backend/internal/service"
	"eduscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service      *service.QuizService
	DraftService *service.QuizDraftService
}

func NewQuizController(svc *service.QuizService, drafts *service.QuizDraftService) *QuizController {
	return &QuizController{Service: svc, DraftService: drafts}
}

// @Summary Create a quiz on a course
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateQuizReq true "quiz payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.CreateQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.CreateQuiz(user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// @Summary List the teacher's quizzes
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	quizzes, err := c.Service.ListTeacherQuizzes(user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// @Summary Quiz detail with questions and answer key
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	quizID := util.MustParseUint(ctx.Param("id"))

	quiz, questions, err := c.Service.GetQuizForTeacher(user.UserID, quizID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"quiz": quiz, "questions": questions})
}

// @Summary Add a question to a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Param body body service.AddQuestionReq true "question payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	quizID := util.MustParseUint(ctx.Param("id"))

	var req service.AddQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.AddQuestion(user.UserID, quizID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary Publish a quiz so students can take it
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id}/publish [post]
func (c *QuizController) PublishQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	quizID := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.Publish(user.UserID, quizID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"published": true})
}

// @Summary Delete a quiz and everything under it
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	quizID := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.DeleteQuiz(user.UserID, quizID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary Generate an AI quiz draft for a course
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.GenerateDraftReq true "generation payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/quizzes/drafts [post]
func (c *QuizController) GenerateDraft(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.GenerateDraftReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, err := c.DraftService.GenerateDraft(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, draft)
}

// @Summary Preview a staged quiz draft
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param token path string true "draft token"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/drafts/{token} [get]
func (c *QuizController) GetDraft(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	draft, err := c.DraftService.GetDraft(ctx.Request.Context(), user.UserID, ctx.Param("token"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, draft)
}

// @Summary Save a staged draft as a real quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SaveDraftReq true "save payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/quizzes/drafts/save [post]
func (c *QuizController) SaveDraft(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.SaveDraftReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, quizID, err := c.DraftService.SaveDraft(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"quizId": quizID, "draft": draft})
}
