package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nami21/support-portal/internal/observability"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// statusForCode maps application error codes onto HTTP statuses.
func statusForCode(code contextutils.ErrorCode) int {
	switch code {
	case contextutils.ErrorCodeInvalidInput,
		contextutils.ErrorCodeMissingRequired,
		contextutils.ErrorCodeValidationFailed:
		return http.StatusBadRequest
	case contextutils.ErrorCodeUnauthorized,
		contextutils.ErrorCodeInvalidCredentials,
		contextutils.ErrorCodeSessionExpired:
		return http.StatusUnauthorized
	case contextutils.ErrorCodeForbidden,
		contextutils.ErrorCodeAccountInactive:
		return http.StatusForbidden
	case contextutils.ErrorCodeRecordNotFound:
		return http.StatusNotFound
	case contextutils.ErrorCodeRecordExists,
		contextutils.ErrorCodeConflict:
		return http.StatusConflict
	case contextutils.ErrorCodeServiceUnavailable,
		contextutils.ErrorCodeStorageConnection,
		contextutils.ErrorCodeChatProviderUnavailable:
		return http.StatusServiceUnavailable
	case contextutils.ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the error as a JSON response with an appropriate HTTP
// status. Server-side failures are logged and replaced with a generic
// message so internals never leak to clients.
func RespondError(c *gin.Context, logger *observability.Logger, err error) {
	code := contextutils.GetErrorCode(err)
	status := statusForCode(code)

	_ = c.Error(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed", err, map[string]interface{}{
			"http.path":   c.Request.URL.Path,
			"http.method": c.Request.Method,
		})
		message = "Internal server error"
	}

	c.JSON(status, gin.H{
		"error": message,
		"code":  string(code),
	})
}

// respondBindError reports a request body that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Invalid request: " + err.Error(),
		"code":  string(contextutils.ErrorCodeValidationFailed),
	})
}
