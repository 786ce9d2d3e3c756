package app

import (
	"eduscore_backend/docs"
	"eduscore_backend/internal/config"
	"eduscore_backend/internal/middleware"
	"eduscore_backend/internal/model"
	"eduscore_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// Attempt results are visible to the owning student and the quiz
		// author; the service decides, so no role gate here.
		authGroup.GET("/attempts/:id", c.attempt.GetAttempt)

		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/student")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/courses", c.course.ListStudentCourses)
		student.POST("/courses/join", c.course.JoinCourse)
		student.GET("/courses/:courseId/materials", c.material.ListForStudent)
		student.GET("/courses/:courseId/quizzes", c.attempt.ListCourseQuizzes)
		student.GET("/courses/:courseId/performance", c.performance.StudentCourseStats)

		student.GET("/quizzes/:id", c.attempt.GetQuiz)
		student.POST("/quizzes/:id/submit", c.attempt.SubmitQuiz)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/overview", c.performance.TeacherOverview)

		teacher.POST("/courses", c.course.CreateCourse)
		teacher.GET("/courses", c.course.ListTeacherCourses)
		teacher.POST("/courses/:courseId/materials", c.material.Upload)
		teacher.GET("/courses/:courseId/materials", c.material.ListForTeacher)

		teacher.POST("/quizzes", c.quiz.CreateQuiz)
		teacher.GET("/quizzes", c.quiz.ListQuizzes)
		teacher.POST("/quizzes/drafts", c.quiz.GenerateDraft)
		teacher.POST("/quizzes/drafts/save", c.quiz.SaveDraft)
		teacher.GET("/quizzes/drafts/:token", c.quiz.GetDraft)
		teacher.GET("/quizzes/:id", c.quiz.GetQuiz)
		teacher.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		teacher.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		teacher.POST("/quizzes/:id/publish", c.quiz.PublishQuiz)
	}
}
