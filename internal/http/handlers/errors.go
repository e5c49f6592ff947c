package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/movalearn/movalearn-backend/internal/http/response"
	"github.com/movalearn/movalearn-backend/internal/services"
)

// respondServiceError translates service sentinel errors to HTTP codes.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrEmailTaken):
		response.RespondError(c, http.StatusConflict, "email_taken", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
	case errors.Is(err, services.ErrInvalidToken):
		response.RespondError(c, http.StatusUnauthorized, "invalid_token", err)
	case errors.Is(err, services.ErrInvalidInput):
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, services.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, "forbidden", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
