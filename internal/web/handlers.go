package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"plume/internal/config"
	"plume/internal/content"
	"plume/internal/core"
	"plume/internal/feed"
	"plume/internal/follow"
	"plume/internal/pagecache"
)

// Handlers serves the whole route surface. It owns no state of its own,
// everything is delegated to the injected services and repositories.
type Handlers struct {
	Logger *slog.Logger
	Config *config.Config

	Feed     *feed.Composer
	Graph    *follow.Graph
	Mutator  *content.Mutator
	Users    core.UserRepository
	Groups   core.GroupRepository
	Posts    core.PostRepository
	Comments core.CommentRepository
	Sessions *Sessions
	Cache    *pagecache.Cache
	Media    *MediaStore
	Renderer *Renderer
}

func (h *Handlers) Init(_ context.Context) error {
	h.Logger = h.Logger.With("component", "web.Handlers")
	return nil
}

const viewerContextKey = contextKey("viewer")

// withViewer resolves the session once per request and stows the viewer in
// the context, anonymous requests pass through with no viewer.
func (h *Handlers) withViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := h.Sessions.CurrentUser(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), viewerContextKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth redirects anonymous viewers to the login page, preserving the
// original destination in the next parameter.
func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := viewerFrom(r); !ok {
			http.Redirect(w, r, "/auth/login/?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func viewerFrom(r *http.Request) (core.User, bool) {
	user, ok := r.Context().Value(viewerContextKey).(core.User)
	return user, ok
}

// basePage is embedded in every page's data.
type basePage struct {
	Title  string
	Viewer *core.User
}

func (h *Handlers) base(r *http.Request, title string) basePage {
	page := basePage{Title: title}
	if viewer, ok := viewerFrom(r); ok {
		page.Viewer = &viewer
	}
	return page
}

// render buffers the template output so a failed render never leaks half a
// page with a 200 status.
func (h *Handlers) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.Renderer.Render(&buf, name, data); err != nil {
		h.Logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) // nolint:errcheck
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "notfound", h.base(r, "Not found"))
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrNotFound) {
		h.notFound(w, r)
		return
	}

	h.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func postIDParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		return 0, core.ErrNotFound
	}
	return uint(id), nil
}
