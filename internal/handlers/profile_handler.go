package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/services"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

type ProfileHandler struct {
	BaseHandler
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
	profileService    services.ProfileService
	exportService     services.ExportService
}

func NewProfileHandler(
	courseService services.CourseService,
	enrollmentService services.EnrollmentService,
	profileService services.ProfileService,
	exportService services.ExportService,
	logger *slog.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:       NewBaseHandler(logger),
		courseService:     courseService,
		enrollmentService: enrollmentService,
		profileService:    profileService,
		exportService:     exportService,
	}
}

// courseIDParam parses the :id path segment.
func courseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// enrolledCourse resolves the course and verifies the student belongs to
// it; anything off sends the student back to the dashboard.
func (h *ProfileHandler) enrolledCourse(c *gin.Context) (*models.Course, bool) {
	session := CurrentSession(c)

	courseID, ok := courseIDParam(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		c.Abort()
		return nil, false
	}

	ctx := c.Request.Context()
	course, err := h.courseService.GetByID(ctx, courseID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		c.Abort()
		return nil, false
	}

	enrolled, err := h.enrollmentService.IsEnrolled(ctx, session.UserID, course.ID)
	if err != nil {
		h.logger.Error("Enrollment check failed", "error", err, "user_id", session.UserID)
		c.String(http.StatusInternalServerError, "failed to load course")
		c.Abort()
		return nil, false
	}
	if !enrolled {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		c.Abort()
		return nil, false
	}

	return course, true
}

// ownedCourse resolves the course only when the requesting teacher owns it.
func (h *ProfileHandler) ownedCourse(c *gin.Context) (*models.Course, bool) {
	session := CurrentSession(c)

	courseID, ok := courseIDParam(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		c.Abort()
		return nil, false
	}

	course, err := h.courseService.GetOwned(c.Request.Context(), courseID, session.UserID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		c.Abort()
		return nil, false
	}

	return course, true
}

// ShowProfileForm renders the student's intro form for one course,
// prefilled from any earlier save.
func (h *ProfileHandler) ShowProfileForm(c *gin.Context) {
	session := CurrentSession(c)

	course, ok := h.enrolledCourse(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetForStudent(c.Request.Context(), session.UserID, course.ID)
	if err != nil {
		h.logger.Error("Failed to load profile", "error", err, "user_id", session.UserID)
		c.String(http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		profile = &models.Profile{}
	}

	c.HTML(http.StatusOK, "profile_form.html", gin.H{
		"Name":    session.DisplayName,
		"Course":  course,
		"Profile": profile,
		"Saved":   c.Query("saved") == "1",
		"Error":   c.Query("error"),
	})
}

// SaveProfile upserts the student's intro for the course.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	session := CurrentSession(c)

	course, ok := h.enrolledCourse(c)
	if !ok {
		return
	}

	var req services.SaveProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, profileFormPath(course.ID)+"?error="+url.QueryEscape("Invalid form submission."))
		return
	}

	if _, err := h.profileService.Save(c.Request.Context(), session.UserID, course.ID, &req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.Redirect(http.StatusSeeOther, profileFormPath(course.ID)+"?error="+url.QueryEscape(verrs.Error()))
			return
		}
		h.logger.Error("Profile save failed", "error", err, "user_id", session.UserID)
		c.Redirect(http.StatusSeeOther, profileFormPath(course.ID)+"?error="+url.QueryEscape("Could not save. Please try again."))
		return
	}

	h.LogRequest(c, "Profile saved")
	c.Redirect(http.StatusSeeOther, profileFormPath(course.ID)+"?saved=1")
}

// ViewProfiles renders the teacher's searchable list of submitted intros.
func (h *ProfileHandler) ViewProfiles(c *gin.Context) {
	session := CurrentSession(c)

	course, ok := h.ownedCourse(c)
	if !ok {
		return
	}

	query := c.Query("search")
	profiles, err := h.profileService.Search(c.Request.Context(), course.ID, query)
	if err != nil {
		h.logger.Error("Profile search failed", "error", err, "course_id", course.ID)
		c.String(http.StatusInternalServerError, "failed to load profiles")
		return
	}

	c.HTML(http.StatusOK, "view_profiles.html", gin.H{
		"Name":     session.DisplayName,
		"Course":   course,
		"Profiles": profiles,
		"Search":   query,
	})
}

// ExportProfiles streams the course roster as an Excel workbook, honoring
// the same search filter as the list page.
func (h *ProfileHandler) ExportProfiles(c *gin.Context) {
	course, ok := h.ownedCourse(c)
	if !ok {
		return
	}

	f, err := h.exportService.ExportRoster(c.Request.Context(), course, c.Query("search"))
	if err != nil {
		h.logger.Error("Roster export failed", "error", err, "course_id", course.ID)
		c.String(http.StatusInternalServerError, "failed to export roster")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("roster-%d.xlsx", course.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("Roster write failed", "error", err, "course_id", course.ID)
	}
}

func profileFormPath(courseID uint) string {
	return fmt.Sprintf("/courses/%d/profile", courseID)
}
