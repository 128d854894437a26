package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/i18n"
)

// abortWithKey stops the chain with a translated error body carrying the
// request ID.
func abortWithKey(c *gin.Context, status int, code, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(code, message).WithRequestID(GetRequestID(c)))
}
