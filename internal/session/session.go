// Package session holds the authenticated identity of one CLI invocation and
// persists it between invocations through a marker file.
package session

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/yukikurage/todo-cli/internal/models"
)

// Session is the explicit authentication state passed to every task operation.
// The zero value is logged out.
type Session struct {
	user *models.User
}

// New returns a session authenticated as user. A nil user yields a logged-out session.
func New(user *models.User) *Session {
	return &Session{user: user}
}

// CurrentUser returns the authenticated user, or nil.
func (s *Session) CurrentUser() *models.User {
	if s == nil {
		return nil
	}
	return s.user
}

// IsLoggedIn reports whether a user is authenticated.
func (s *Session) IsLoggedIn() bool {
	return s.CurrentUser() != nil
}

// UserID returns the authenticated user's id, or 0.
func (s *Session) UserID() uint64 {
	if u := s.CurrentUser(); u != nil {
		return u.ID
	}
	return 0
}

// SetUser authenticates the session as user.
func (s *Session) SetUser(user *models.User) {
	s.user = user
}

// Clear logs the session out.
func (s *Session) Clear() {
	s.user = nil
}

// UserFinder looks users up by username.
type UserFinder interface {
	FindByUsername(username string) (*models.User, error)
}

// Restore builds the session for this invocation from the marker. A missing,
// unreadable, or stale marker yields a logged-out session; Restore never fails.
func Restore(marker *Marker, users UserFinder, logger *log.Logger) *Session {
	username, err := marker.Read()
	if err != nil {
		if !errors.Is(err, ErrNoMarker) && logger != nil {
			logger.Warn("ignoring unreadable session marker", "path", marker.Path(), "err", err)
		}
		return &Session{}
	}

	user, err := users.FindByUsername(username)
	if err != nil {
		if logger != nil {
			logger.Warn("ignoring session marker", "username", username, "err", err)
		}
		return &Session{}
	}

	return New(user)
}
