package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bid-reconciler/internal/trackingerrors"
	"bid-reconciler/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, trackingerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, trackingerrors.ErrCompanyNotFound):
		return http.StatusNotFound, "company not found"
	case errors.Is(err, trackingerrors.ErrBidSettled):
		return http.StatusConflict, "bid already settled"
	case errors.Is(err, trackingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, trackingerrors.ErrAutoCheckDisabled):
		return http.StatusUnprocessableEntity, "auto-checking disabled for company"
	case errors.Is(err, trackingerrors.ErrConfiguration):
		return http.StatusUnprocessableEntity, "company configuration incomplete"
	case errors.Is(err, trackingerrors.ErrDecryptionFailed):
		return http.StatusUnprocessableEntity, "stored credentials unreadable"
	case errors.Is(err, trackingerrors.ErrAuthenticationFailed):
		return http.StatusBadGateway, "auction site rejected login"
	case errors.Is(err, trackingerrors.ErrChallengeDetected):
		return http.StatusBadGateway, "auction site challenge, manual intervention required"
	case errors.Is(err, trackingerrors.ErrTransientNetwork):
		return http.StatusBadGateway, "auction site unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ParsePagination reads ?page= and ?limit=, falling back to page 1 and defaultLimit
// and capping limit at maxLimit
func ParsePagination(c *gin.Context, defaultLimit, maxLimit int) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
