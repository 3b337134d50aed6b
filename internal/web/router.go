package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// routes wires the full route surface. Reads are public, writes sit behind
// requireAuth; unknown identifiers on any lookup route render the 404 page.
func routes(r chi.Router, h *Handlers) {
	r.Use(h.withViewer)
	r.NotFound(h.notFound)

	r.Get("/", h.Index)
	r.Get("/group/{slug}/", h.GroupPosts)
	r.Get("/profile/{username}/", h.Profile)
	r.Get("/posts/{postID}/", h.PostDetail)

	r.Get("/auth/login/", h.LoginForm)
	r.Post("/auth/login/", h.Login)
	r.Get("/auth/logout/", h.Logout)
	r.Get("/auth/signup/", h.SignupForm)
	r.Post("/auth/signup/", h.Signup)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/create/", h.PostCreateForm)
		r.Post("/create/", h.PostCreate)
		r.Get("/posts/{postID}/edit/", h.PostEditForm)
		r.Post("/posts/{postID}/edit/", h.PostEdit)
		r.Get("/posts/{postID}/delete/", h.PostDelete)
		r.Post("/posts/{postID}/", h.AddComment)
		r.Post("/posts/{postID}/comment/", h.AddComment)

		r.Get("/follow/", h.FollowIndex)
		r.Get("/profile/{username}/follow/", h.ProfileFollow)
		r.Get("/profile/{username}/unfollow/", h.ProfileUnfollow)
	})

	r.Handle("/static/*", http.FileServerFS(staticFS))
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(h.Media.Dir()))))
}
