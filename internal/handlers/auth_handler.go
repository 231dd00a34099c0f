package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/services"
	"github.com/SAP-F-2025/classroom-intro-service/internal/sessions"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	store       *sessions.Store
	validator   *validator.Validator
}

func NewAuthHandler(authService services.AuthService, store *sessions.Store, v *validator.Validator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		store:       store,
		validator:   v,
	}
}

// ShowLogin renders the combined login-or-register form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Authenticate handles the single auth form: an existing email+password
// logs in; an unknown or failed login with a display name filled in falls
// through to registration.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req services.AuthRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLoginError(c, "Please fill in email and password.")
		return
	}

	if errs := h.validator.GetBusinessValidator().ValidateAuth(&req); len(errs) > 0 {
		h.renderLoginError(c, errs.Error())
		return
	}

	ctx := c.Request.Context()

	user, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Error("Authentication failed", "error", err)
			h.renderLoginError(c, "Something went wrong. Please try again.")
			return
		}

		// No account match. Register when the form carries a name,
		// otherwise it is a plain failed login.
		if strings.TrimSpace(req.DisplayName) == "" {
			h.renderLoginError(c, "Invalid email or password.")
			return
		}

		user, err = h.authService.Register(ctx, &services.RegisterRequest{
			Email:       req.Email,
			Password:    req.Password,
			DisplayName: strings.TrimSpace(req.DisplayName),
			Role:        models.UserRole(req.Role),
		})
		if err != nil {
			if errors.Is(err, services.ErrEmailTaken) {
				// The email exists but the password was wrong.
				h.renderLoginError(c, "Invalid email or password.")
				return
			}
			h.logger.Error("Registration failed", "error", err)
			h.renderLoginError(c, "Something went wrong. Please try again.")
			return
		}
		h.LogRequest(c, "New account registered")
	}

	token, err := h.store.Create(ctx, &sessions.Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
	if err != nil {
		h.logger.Error("Session creation failed", "error", err)
		h.renderLoginError(c, "Something went wrong. Please try again.")
		return
	}

	c.SetCookie(SessionCookieName, token, 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		if err := h.store.Delete(c.Request.Context(), token); err != nil {
			h.logger.Warn("Session delete failed", "error", err)
		}
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) renderLoginError(c *gin.Context, message string) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Error": message})
}
