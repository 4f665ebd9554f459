package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authdomain "github.com/Apurer/delivery-console/internal/domains/auth/domain"
	apierrors "github.com/Apurer/delivery-console/internal/shared/errors"
)

const sessionKey = "console.session"

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(c.Request.Context(), level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// recovered answers panics with a problem document on JSON endpoints and a plain 500 elsewhere.
func (con *Console) recovered(c *gin.Context, err any) {
	con.logger.ErrorContext(c.Request.Context(), "panic serving console request",
		slog.String("path", c.Request.URL.Path),
		slog.Any("panic", err),
	)
	if strings.HasPrefix(c.Request.URL.Path, "/home/store") || wantsJSON(c) {
		apierrors.Respond(c, apierrors.ErrInternal)
		c.Abort()
		return
	}
	c.AbortWithStatus(http.StatusInternalServerError)
}

// requireSession resolves the session cookie. Pages without a live session are
// sent to the login page; JSON endpoints answer 401.
func (con *Console) requireSession(jsonAPI bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(con.cookieName)
		session, err := con.auth.Session(c.Request.Context(), id)
		if err != nil {
			con.clearCookie(c)
			if jsonAPI {
				apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("login required"))
				c.Abort()
				return
			}
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *authdomain.Session {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := value.(*authdomain.Session)
	return session
}

func (con *Console) setCookie(c *gin.Context, session *authdomain.Session) {
	maxAge := int(time.Until(session.ExpiresAt) / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(con.cookieName, session.ID, maxAge, "/", "", con.cookieSecure, true)
}

func (con *Console) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(con.cookieName, "", -1, "/", "", con.cookieSecure, true)
}

// flash queues an alert for the next rendered page of the session.
func (con *Console) flash(c *gin.Context, message string) {
	session := sessionFrom(c)
	if session == nil {
		return
	}
	if err := con.auth.Flash(c.Request.Context(), session.ID, message); err != nil {
		con.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "failed to queue alert", slog.String("error", err.Error()))
	}
}

func (con *Console) takeFlashes(c *gin.Context) []string {
	session := sessionFrom(c)
	if session == nil {
		return nil
	}
	flashes, err := con.auth.TakeFlashes(c.Request.Context(), session.ID)
	if err != nil {
		con.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "failed to read alerts", slog.String("error", err.Error()))
	}
	return flashes
}

// logDegraded records a read failure that the page renders around.
func (con *Console) logDegraded(ctx context.Context, what string, err error) {
	if err == nil {
		return
	}
	con.logger.LogAttrs(ctx, slog.LevelWarn, what+" unavailable, rendering empty", slog.String("error", err.Error()))
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
