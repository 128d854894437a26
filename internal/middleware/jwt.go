// Package middleware provides JWT authentication middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/logger"
	"github.com/guttosm/college-order-service/internal/service"
)

const (
	// AdminSubjectKey holds the authenticated administrator name.
	AdminSubjectKey = "admin_subject"
	// AdminClaimsKey holds the validated *dto.Claims.
	AdminClaimsKey = "admin_claims"
)

// JWTAuth guards the admin routes. The token comes from a
// "Bearer <token>" Authorization header; the scheme is case-insensitive.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}
		if token == "" {
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Warn().Err(err).
				Str("request_id", GetRequestID(c)).
				Str("ip", c.ClientIP()).
				Msg("Rejected admin token")
			abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(AdminSubjectKey, claims.Username)
		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}

// bearerToken extracts the token. A missing header yields ("", true) so
// the caller reports it as required rather than invalid.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", true
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// GetAdminSubject returns the administrator authenticated on this request, if any.
func GetAdminSubject(c *gin.Context) string {
	if v, exists := c.Get(AdminSubjectKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
