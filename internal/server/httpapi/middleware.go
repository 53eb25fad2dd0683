package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfkeeper/shelfkeeper/internal/session"
)

const (
	// SessionCookieName is the cookie that carries the signed session state.
	SessionCookieName = "shelfkeeper_session"

	sessionKey = "shelfkeeper.session"
)

// sessionWriter injects the Set-Cookie header immediately before the response
// is first written. Handlers mutate the session and then render the body;
// the cookie must carry the final session state, and it has to be in the
// header map before the first body write flushes headers to the client.
type sessionWriter struct {
	gin.ResponseWriter
	writeCookie func(http.Header)
	emitted     bool
}

func (w *sessionWriter) emit() {
	if w.emitted {
		return
	}
	w.emitted = true
	w.writeCookie(w.Header())
}

func (w *sessionWriter) WriteHeader(code int) {
	w.emit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) WriteHeaderNow() {
	w.emit()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.emit()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	w.emit()
	return w.ResponseWriter.WriteString(s)
}

// sessionMiddleware decodes the session cookie into a Session, makes it
// available to handlers, and arranges for the (possibly mutated) session to
// be written back as a fresh cookie with the response. An unreadable or
// tampered cookie is replaced with an anonymous session rather than rejected.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := &session.Session{}
		if raw, err := c.Cookie(SessionCookieName); err == nil {
			if decoded, err := s.codec.Decode(raw); err == nil {
				sess = decoded
			}
		}
		c.Set(sessionKey, sess)

		w := &sessionWriter{
			ResponseWriter: c.Writer,
			writeCookie: func(h http.Header) {
				value, err := s.codec.Encode(sess)
				if err != nil {
					s.logger.Error(c.Request.Context(), "session cookie encode failed", "error", err)
					return
				}
				cookie := &http.Cookie{
					Name:     SessionCookieName,
					Value:    value,
					Path:     "/",
					HttpOnly: true,
					Secure:   s.secureCookie,
					SameSite: http.SameSiteStrictMode,
				}
				h.Add("Set-Cookie", cookie.String())
			},
		}
		c.Writer = w

		c.Next()

		// Responses without a body still get the cookie.
		w.emit()
	}
}

// requireAuth rejects requests whose session is not authenticated. The
// session is reset on rejection so stale client state does not linger.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if !sess.IsAuthenticated() {
			sess.Clear()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "NOT_AUTHENTICATED",
				"message": "log in to access this resource",
			})
			return
		}
		c.Next()
	}
}

// currentSession returns the request's session. The session middleware always
// installs one, so a missing entry is a programming error.
func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		panic("httpapi: session middleware not installed")
	}
	return v.(*session.Session)
}
