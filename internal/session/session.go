// Package session tracks per-client authentication state between requests.
//
// A Session is a plain value with two states, Anonymous and Authenticated,
// plus a cached pending verification code that bridges registration and the
// first login. The value is independent of any transport; CookieCodec turns
// it into a signed cookie for the HTTP layer.
package session

// Session is the per-client state. The zero value is an anonymous session.
type Session struct {
	authenticated bool
	username      string
	pendingCode   string
}

// New returns an empty, unauthenticated session.
func New() *Session {
	return &Session{}
}

// StartAuthenticated transitions the session to the authenticated state for
// the given principal.
func (s *Session) StartAuthenticated(username string) {
	s.authenticated = true
	s.username = username
}

// Clear resets the session to the anonymous state. Used on explicit logout
// and whenever a protected operation is reached without authentication.
func (s *Session) Clear() {
	*s = Session{}
}

// CachePendingCode stores a freshly issued verification code so an
// immediately following login does not need the email round-trip.
func (s *Session) CachePendingCode(code string) {
	s.pendingCode = code
}

// ConsumePendingCode returns the cached code, if any, and removes it.
func (s *Session) ConsumePendingCode() (string, bool) {
	if s.pendingCode == "" {
		return "", false
	}
	code := s.pendingCode
	s.pendingCode = ""
	return code, true
}

// IsAuthenticated reports whether the session carries an authenticated
// principal.
func (s *Session) IsAuthenticated() bool {
	return s.authenticated
}

// CurrentUsername returns the authenticated principal's username, or the
// empty string for an anonymous session.
func (s *Session) CurrentUsername() string {
	if !s.authenticated {
		return ""
	}
	return s.username
}
