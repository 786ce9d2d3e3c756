package controller

import (
	"eduscore_backend/internal/service"
	"eduscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	Service *service.MaterialService
}

func NewMaterialController(svc *service.MaterialService) *MaterialController {
	return &MaterialController{Service: svc}
}

// @Summary Upload a material file to a course
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses/{courseId}/materials [post]
func (c *MaterialController) Upload(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	title := ctx.PostForm("title")
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	material, err := c.Service.Upload(ctx.Request.Context(), user.UserID, courseID, title, header)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// @Summary List a course's materials (teacher)
// @Tags materials
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{courseId}/materials [get]
func (c *MaterialController) ListForTeacher(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	materials, err := c.Service.ListForTeacher(user.UserID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// @Summary List a course's materials (student)
// @Tags materials
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/student/courses/{courseId}/materials [get]
func (c *MaterialController) ListForStudent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	materials, err := c.Service.ListForStudent(user.UserID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}
