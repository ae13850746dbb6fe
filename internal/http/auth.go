package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipebook/internal/domain"
	"recipebook/internal/metrics"
	"recipebook/internal/service"
)

type signupRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// An unparsable body is treated like one with every field missing, so each
// operation answers with its own validation status.

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		writeError(c, errMissingCredentials)
		return
	}

	user, err := h.users.Signup(c.Request.Context(), service.SignupInput{
		Username: req.Username,
		Password: req.Password,
		ImageURL: req.ImageURL,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			metrics.SignupsTotal.WithLabelValues("conflict").Inc()
		case errors.Is(err, domain.ErrValidation):
			metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		}
		h.fail(c, err, apiError{status: http.StatusBadRequest})
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		h.internalError(c, err)
		return
	}
	metrics.SignupsTotal.WithLabelValues("created").Inc()
	h.logger.WithField("user_id", user.ID).Info("user signed up")
	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		writeError(c, errInvalidCredentials)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		h.fail(c, err, errInvalidCredentials)
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		h.internalError(c, err)
		return
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) logout(c *gin.Context) {
	if token := h.sessionToken(c); token != "" {
		if err := h.sessions.Terminate(c.Request.Context(), token); err != nil {
			h.logger.WithError(err).Warn("terminate session")
		}
	}
	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (h *Handler) checkSession(c *gin.Context) {
	token := h.sessionToken(c)
	userID, err := h.sessions.CurrentUserID(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			c.Status(http.StatusNoContent)
			return
		}
		h.internalError(c, err)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if err := h.sessions.Terminate(c.Request.Context(), token); err != nil {
				h.logger.WithError(err).Warn("terminate orphaned session")
			}
			h.clearSessionCookie(c)
			c.Status(http.StatusNoContent)
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}
