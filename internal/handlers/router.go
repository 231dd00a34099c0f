package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/services"
	"github.com/SAP-F-2025/classroom-intro-service/internal/sessions"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	dashboardHandler *DashboardHandler
	courseHandler    *CourseHandler
	profileHandler   *ProfileHandler

	serviceManager services.ServiceManager
	store          *sessions.Store
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	store *sessions.Store,
	v *validator.Validator,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), store, v, logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Course(), logger),
		courseHandler:    NewCourseHandler(serviceManager.Course(), serviceManager.Enrollment(), logger),
		profileHandler: NewProfileHandler(
			serviceManager.Course(),
			serviceManager.Enrollment(),
			serviceManager.Profile(),
			serviceManager.Export(),
			logger,
		),
		serviceManager: serviceManager,
		store:          store,
	}
}

// SetupRoutes sets up all page and form routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(SessionMiddleware(hm.store))

	router.GET("/", func(c *gin.Context) {
		if CurrentSession(c) != nil {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
	})

	// Auth pages
	router.GET("/login", RedirectIfAuthenticated(), hm.authHandler.ShowLogin)
	router.POST("/auth", RedirectIfAuthenticated(), hm.authHandler.Authenticate)
	router.POST("/logout", hm.authHandler.Logout)

	// Everything below needs a live session
	authed := router.Group("")
	authed.Use(RequireAuth())
	{
		authed.GET("/dashboard", hm.dashboardHandler.ShowDashboard)

		// Teacher-only pages
		teacher := authed.Group("")
		teacher.Use(RequireRole(models.RoleTeacher))
		{
			teacher.POST("/courses", hm.courseHandler.CreateCourse)
			teacher.GET("/courses/:id/profiles", hm.profileHandler.ViewProfiles)
			teacher.GET("/courses/:id/profiles/export", hm.profileHandler.ExportProfiles)
		}

		// Student-only pages
		student := authed.Group("")
		student.Use(RequireRole(models.RoleStudent))
		{
			student.POST("/courses/join", hm.courseHandler.JoinCourse)
			student.GET("/courses/:id/profile", hm.profileHandler.ShowProfileForm)
			student.POST("/courses/:id/profile", hm.profileHandler.SaveProfile)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "classroom-intro-service",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "classroom-intro-service",
		})
	})
}
