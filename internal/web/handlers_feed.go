package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"plume/internal/core"
	"plume/internal/feed"
)

type feedPage struct {
	basePage
	Page     feed.Page
	BasePath string
}

// Index is the global feed. The rendered page is cached whole for the
// configured TTL, keyed by page number only: a post published right after a
// read stays invisible until the entry expires.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	key := fmt.Sprintf("/?page=%d", page)

	if body, ok := h.Cache.Get(key); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body) // nolint:errcheck
		return
	}

	composed, err := h.Feed.Global(r.Context(), page)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	data := feedPage{
		basePage: h.base(r, "Latest posts"),
		Page:     composed,
		BasePath: "/",
	}

	var buf bytes.Buffer
	if err := h.Renderer.Render(&buf, "index", data); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Cache.Set(key, buf.Bytes())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w) // nolint:errcheck
}

type groupPage struct {
	basePage
	Group    core.Group
	Page     feed.Page
	BasePath string
}

func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, err := h.Groups.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	composed, err := h.Feed.ByGroup(r.Context(), group.ID, pageParam(r))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "group_list", groupPage{
		basePage: h.base(r, group.Title),
		Group:    group,
		Page:     composed,
		BasePath: fmt.Sprintf("/group/%s/", group.Slug),
	})
}

type profilePage struct {
	basePage
	Author        core.User
	Page          feed.Page
	BasePath      string
	PostCount     int64
	FollowerCount int64
	Following     bool
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	author, err := h.Users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	composed, err := h.Feed.ByAuthor(r.Context(), author.ID, pageParam(r))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	followerCount, err := h.Graph.FollowerCount(r.Context(), author.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	data := profilePage{
		basePage:      h.base(r, author.FullName()),
		Author:        author,
		Page:          composed,
		BasePath:      fmt.Sprintf("/profile/%s/", author.Username),
		PostCount:     composed.Total,
		FollowerCount: followerCount,
	}

	if viewer, ok := viewerFrom(r); ok {
		data.Following, err = h.Graph.IsFollowing(r.Context(), viewer.ID, author.ID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
	}

	h.render(w, http.StatusOK, "profile", data)
}

// FollowIndex is the subscription feed: posts by every author the viewer
// follows.
func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	viewer, _ := viewerFrom(r)

	composed, err := h.Feed.Subscriptions(r.Context(), viewer.ID, pageParam(r))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "follow", feedPage{
		basePage: h.base(r, "Your subscriptions"),
		Page:     composed,
		BasePath: "/follow/",
	})
}
