package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"recipebook/internal/domain"
	"recipebook/internal/metrics"
)

const userIDKey = "session.user_id"

// observe logs every request and records it in the request metrics.
func (h *Handler) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		entry := h.logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"route":     route,
			"status":    status,
			"latency":   latency.String(),
			"client_ip": c.ClientIP(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// requireSession resolves the caller's session and stores the user id on the
// context. Requests without a live session stop here with 401.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := h.sessions.CurrentUserID(c.Request.Context(), h.sessionToken(c))
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				writeError(c, errUnauthorized)
				return
			}
			h.internalError(c, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func sessionUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func (h *Handler) sessionToken(c *gin.Context) string {
	token, err := c.Cookie(h.cookie.Name)
	if err != nil {
		return ""
	}
	return token
}

// startSession replaces any session the caller presented with a new one
// bound to userID.
func (h *Handler) startSession(c *gin.Context, userID int64) error {
	if old := h.sessionToken(c); old != "" {
		if err := h.sessions.Terminate(c.Request.Context(), old); err != nil {
			h.logger.WithError(err).Warn("terminate previous session")
		}
	}

	token, expiresAt, err := h.sessions.Establish(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
	return nil
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}
