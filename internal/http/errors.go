package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipebook/internal/domain"
)

type apiError struct {
	status  int
	message string
}

type errorResponse struct {
	Error string `json:"error"`
}

var (
	errMissingCredentials = apiError{http.StatusBadRequest, "Username and password required"}
	errUsernameTaken      = apiError{http.StatusConflict, "Username already taken"}
	errInvalidCredentials = apiError{http.StatusUnauthorized, "Invalid credentials"}
	errUnauthorized       = apiError{http.StatusUnauthorized, "Unauthorized"}
	errInvalidRecipe      = apiError{http.StatusUnprocessableEntity, "Invalid recipe data"}
	errInternal           = apiError{http.StatusInternalServerError, "internal server error"}
)

func writeError(c *gin.Context, e apiError) {
	c.AbortWithStatusJSON(e.status, errorResponse{Error: e.message})
}

// fail maps err onto the response. onValidation decides how the current
// operation reports domain.ErrValidation; an empty message falls back to the
// validation detail.
func (h *Handler) fail(c *gin.Context, err error, onValidation apiError) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		if onValidation.message == "" {
			onValidation.message = validationDetail(err)
		}
		writeError(c, onValidation)
	case errors.Is(err, domain.ErrConflict):
		writeError(c, errUsernameTaken)
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(c, errInvalidCredentials)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(c, errUnauthorized)
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.WithError(err).
		WithField("method", c.Request.Method).
		WithField("route", c.FullPath()).
		Error("unhandled error")
	writeError(c, errInternal)
}

func validationDetail(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	if msg == "" {
		return domain.ErrValidation.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
