package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/middleware"
	"github.com/guttosm/college-order-service/internal/service"
)

// AuthHandler provides HTTP handlers for admin authentication.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/admin/login requests.
//
// @Summary      Admin login
// @Description  Authenticates the store administrator and returns a JWT access token for the admin routes.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      503 {object} dto.ErrorResponse "Admin login not configured"
// @Router       /api/v1/admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.LoginRequest](c)
	if err != nil {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			builder.ErrorWithMessage(http.StatusBadRequest, validationErr.Error(), err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ls := loggingService(c)
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			if ls != nil {
				middleware.AuditLogError(ls, c, "login_failed", "Failed login attempt", err, map[string]interface{}{
					"username": req.Username,
				})
			}
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
		case errors.Is(err, service.ErrAdminDisabled):
			builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyAdminDisabled, err)
		default:
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	c.Set(middleware.AdminSubjectKey, resp.Subject)
	if ls := loggingService(c); ls != nil {
		middleware.AuditLog(ls, c, "login", "Admin logged in", nil)
	}
	builder.SuccessOK(resp)
}
