package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/services"
)

type DashboardHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewDashboardHandler(courseService services.CourseService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

// ShowDashboard renders the role-specific landing page: teachers see the
// courses they own plus a create form, students see their enrollments plus
// a join form.
func (h *DashboardHandler) ShowDashboard(c *gin.Context) {
	session := CurrentSession(c)
	ctx := c.Request.Context()

	data := gin.H{
		"Name":  session.DisplayName,
		"Role":  session.Role,
		"Error": c.Query("error"),
	}

	if session.Role == models.RoleTeacher {
		courses, err := h.courseService.ListForTeacher(ctx, session.UserID)
		if err != nil {
			h.logger.Error("Failed to list teacher courses", "error", err, "user_id", session.UserID)
			c.String(http.StatusInternalServerError, "failed to load dashboard")
			return
		}
		data["Courses"] = courses

		// A just-created course gets a banner with its join code.
		if id, err := strconv.ParseUint(c.Query("created"), 10, 64); err == nil {
			if course, err := h.courseService.GetOwned(ctx, uint(id), session.UserID); err == nil {
				data["Created"] = course
			}
		}

		c.HTML(http.StatusOK, "dashboard_teacher.html", data)
		return
	}

	enrollments, err := h.courseService.ListForStudent(ctx, session.UserID)
	if err != nil {
		h.logger.Error("Failed to list enrollments", "error", err, "user_id", session.UserID)
		c.String(http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	data["Enrollments"] = enrollments

	if id, err := strconv.ParseUint(c.Query("joined"), 10, 64); err == nil {
		if course, err := h.courseService.GetByID(ctx, uint(id)); err == nil {
			data["Joined"] = course
		}
	}

	c.HTML(http.StatusOK, "dashboard_student.html", data)
}
