package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RafaelMendes244/RMPedidos/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func TooManyRequests(c *gin.Context, msg string) {
	c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": apperr.UserMessage(err)})
}

// Error maps an apperr kind to its HTTP status. Anything without a kind
// is treated as unexpected and answered with a generic 500.
func Error(c *gin.Context, err error) {
	msg := apperr.UserMessage(err)
	switch apperr.KindOf(err) {
	case apperr.Validation, apperr.BusinessRule:
		BadRequest(c, msg)
	case apperr.NotFound:
		NotFound(c, msg)
	case apperr.Conflict:
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": msg})
	case apperr.Throttled:
		TooManyRequests(c, msg)
	case apperr.Forbidden:
		Forbidden(c, msg)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": msg})
	}
}
