// internal/utils/response.go
package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medolina/medolina-backend/internal/i18n"
)

// Responses follow one envelope: {"success": true, ...payload} on the happy
// path and {"success": false, "error": "..."} on every failure.

func SuccessResponse(c *gin.Context, data gin.H) {
	respond(c, http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data gin.H) {
	respond(c, http.StatusCreated, data)
}

func respond(c *gin.Context, status int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

func BadRequestResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid)
	}
	ErrorResponse(c, http.StatusBadRequest, message)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func NotFoundResponse(c *gin.Context, key string) {
	ErrorResponse(c, http.StatusNotFound, i18n.T(GetLangFromContext(c), key))
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, message)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, message)
}

// TooManyRequestsResponse reports a rate-limit rejection with a Retry-After
// hint in seconds.
func TooManyRequestsResponse(c *gin.Context, retryAfterSeconds int) {
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	ErrorResponse(c, http.StatusTooManyRequests,
		i18n.T(GetLangFromContext(c), i18n.KeyRateLimitExceeded))
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid),
		"details": errors,
	})
}

// PaginatedResponse attaches pagination metadata both as headers and a meta
// object next to the payload.
func PaginatedResponse(c *gin.Context, data gin.H, page, limit, total, totalPages int) {
	c.Header("X-Total-Count", strconv.Itoa(total))
	c.Header("X-Page", strconv.Itoa(page))
	c.Header("X-Per-Page", strconv.Itoa(limit))
	c.Header("X-Total-Pages", strconv.Itoa(totalPages))

	data["meta"] = gin.H{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": totalPages,
	}
	respond(c, http.StatusOK, data)
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "bs"
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}
