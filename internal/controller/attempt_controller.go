package controller

import (
	"net/http"

	"eduscore_backend/internal/service"
	"eduscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
	QuizService    *service.QuizService
}

func NewAttemptController(attemptService *service.AttemptService, quizService *service.QuizService) *AttemptController {
	return &AttemptController{AttemptService: attemptService, QuizService: quizService}
}

// @Summary List a course's published quizzes with the student's attempt state
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/student/courses/{courseId}/quizzes [get]
func (c *AttemptController) ListCourseQuizzes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	rows, err := c.QuizService.ListCourseQuizzesForStudent(user.UserID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary Question sheet for taking a quiz
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/student/quizzes/{id} [get]
func (c *AttemptController) GetQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	quizID := util.MustParseUint(ctx.Param("id"))

	view, err := c.QuizService.GetQuizForStudent(user.UserID, quizID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type submitAttemptReq struct {
	// Answers maps question id to the selected option label; omitted
	// questions count as blank.
	Answers map[uint]string `json:"answers"`
}

// @Summary Submit answers for a quiz
// @Tags attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 201 {object} util.Response
// @Router /api/student/quizzes/{id}/submit [post]
func (c *AttemptController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	quizID := util.MustParseUint(ctx.Param("id"))

	var req submitAttemptReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitAttempt(user.UserID, quizID, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if result.Created {
		util.Created(ctx, result)
		return
	}
	ctx.JSON(http.StatusOK, util.Response{Code: http.StatusOK, Message: "Attempt already submitted", Data: result})
}

// @Summary Attempt result with per-question answers
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	attemptID := util.MustParseUint(ctx.Param("id"))

	detail, err := c.AttemptService.GetAttempt(attemptID, user.UserID, user.Role)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
