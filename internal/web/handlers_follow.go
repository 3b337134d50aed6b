package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ProfileFollow subscribes the viewer to the author. Following yourself or
// an author you already follow silently does nothing; either way the viewer
// ends up back on the profile page.
func (h *Handlers) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	author, err := h.Users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	viewer, _ := viewerFrom(r)

	if err := h.Graph.Follow(r.Context(), viewer.ID, author.ID); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", author.Username), http.StatusFound)
}

func (h *Handlers) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	author, err := h.Users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	viewer, _ := viewerFrom(r)

	if err := h.Graph.Unfollow(r.Context(), viewer.ID, author.ID); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", author.Username), http.StatusFound)
}
