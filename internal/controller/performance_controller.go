package controller

import (
	"eduscore_backend/internal/service"
	"eduscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PerformanceController struct {
	Service *service.PerformanceService
}

func NewPerformanceController(svc *service.PerformanceService) *PerformanceController {
	return &PerformanceController{Service: svc}
}

// @Summary Student's score summary and attempt history for a course
// @Tags performance
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/student/courses/{courseId}/performance [get]
func (c *PerformanceController) StudentCourseStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("courseId"))

	stats, err := c.Service.StudentCourseStats(user.UserID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Teacher dashboard: counts, class average and recent activity
// @Tags performance
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/overview [get]
func (c *PerformanceController) TeacherOverview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	overview, err := c.Service.TeacherOverview(user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
