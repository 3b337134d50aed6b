package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"plume/internal/config"
	"plume/internal/core"
)

const sessionName = "plume_session"

// Sessions is cookie-backed authentication state. It only knows how to map a
// request to a user; who may do what is decided by the handlers and the
// content mutator.
type Sessions struct {
	Logger *slog.Logger
	Config *config.Config
	Users  core.UserRepository

	store *sessions.CookieStore
}

func (s *Sessions) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "web.Sessions")

	s.store = sessions.NewCookieStore([]byte(s.Config.SessionSecret))
	s.store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return nil
}

func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// CurrentUser resolves the request's session to a user. A missing or stale
// session is an anonymous viewer, not an error.
func (s *Sessions) CurrentUser(r *http.Request) (core.User, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return core.User{}, false
	}

	userID, ok := session.Values["user_id"].(uint)
	if !ok {
		return core.User{}, false
	}

	user, err := s.Users.GetByID(r.Context(), userID)
	if err != nil {
		return core.User{}, false
	}

	return user, true
}
