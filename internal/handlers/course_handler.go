package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/classroom-intro-service/internal/services"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
}

func NewCourseHandler(courseService services.CourseService, enrollmentService services.EnrollmentService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:       NewBaseHandler(logger),
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// CreateCourse handles the teacher's create-course form.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	session := CurrentSession(c)

	var req services.CreateCourseRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectDashboardError(c, "Course name is required.")
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), session.UserID, &req)
	if err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			redirectDashboardError(c, verrs.Error())
		case errors.Is(err, services.ErrCourseCreationFailed):
			redirectDashboardError(c, "Could not create the course. Please try again.")
		default:
			h.logger.Error("Course creation failed", "error", err, "user_id", session.UserID)
			redirectDashboardError(c, "Could not create the course. Please try again.")
		}
		return
	}

	h.LogRequest(c, "Course created")
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/dashboard?created=%d", course.ID))
}

// JoinCourse handles the student's join-by-code form.
func (h *CourseHandler) JoinCourse(c *gin.Context) {
	session := CurrentSession(c)

	var req services.JoinCourseRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectDashboardError(c, "Join code is required.")
		return
	}

	course, err := h.enrollmentService.JoinCourse(c.Request.Context(), session.UserID, &req)
	if err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			redirectDashboardError(c, verrs.Error())
		case errors.Is(err, services.ErrCourseNotFound):
			redirectDashboardError(c, "No course found for that join code.")
		case errors.Is(err, services.ErrAlreadyEnrolled):
			redirectDashboardError(c, "You are already enrolled in that course.")
		default:
			h.logger.Error("Join failed", "error", err, "user_id", session.UserID)
			redirectDashboardError(c, "Could not join the course. Please try again.")
		}
		return
	}

	h.LogRequest(c, "Student joined course")
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/dashboard?joined=%d", course.ID))
}

func redirectDashboardError(c *gin.Context, message string) {
	c.Redirect(http.StatusSeeOther, "/dashboard?error="+url.QueryEscape(message))
}
