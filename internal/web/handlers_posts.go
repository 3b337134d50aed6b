package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"plume/internal/content"
	"plume/internal/core"
)

type postDetailPage struct {
	basePage
	Post       core.Post
	Comments   []core.Comment
	FormErrors map[string]string
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	h.renderPostDetail(w, r, http.StatusOK, nil)
}

func (h *Handlers) renderPostDetail(w http.ResponseWriter, r *http.Request, status int, formErrors map[string]string) {
	id, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.Posts.Get(r.Context(), id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	comments, err := h.Comments.ForPost(r.Context(), post.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	title := post.Text
	if len(title) > 30 {
		title = title[:30]
	}

	h.render(w, status, "post_detail", postDetailPage{
		basePage:   h.base(r, title),
		Post:       post,
		Comments:   comments,
		FormErrors: formErrors,
	})
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	form := CommentForm{Text: strings.TrimSpace(r.PostFormValue("text"))}
	if err := validate.Struct(form); err != nil {
		h.renderPostDetail(w, r, http.StatusOK, fieldErrors(err))
		return
	}

	viewer, _ := viewerFrom(r)

	if _, err := h.Mutator.AddComment(r.Context(), viewer.ID, id, form.Text); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/posts/%d/", id), http.StatusFound)
}

type postFormPage struct {
	basePage
	IsEdit          bool
	Text            string
	SelectedGroupID uint
	Groups          []core.Group
	FormErrors      map[string]string
}

func (h *Handlers) PostCreateForm(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "post_form", postFormPage{
		basePage: h.base(r, "New post"),
		Groups:   groups,
	})
}

func (h *Handlers) PostCreate(w http.ResponseWriter, r *http.Request) {
	viewer, _ := viewerFrom(r)

	form, image, formErrors := h.parsePostForm(w, r)
	if formErrors != nil {
		groups, err := h.Groups.List(r.Context())
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		h.render(w, http.StatusOK, "post_form", postFormPage{
			basePage:        h.base(r, "New post"),
			Text:            form.Text,
			SelectedGroupID: derefGroupID(form.GroupID),
			Groups:          groups,
			FormErrors:      formErrors,
		})
		return
	}

	imageName := ""
	if image != nil {
		imageName = *image
	}

	if _, err := h.Mutator.CreatePost(r.Context(), viewer.ID, form.Text, form.GroupID, imageName); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", viewer.Username), http.StatusFound)
}

// PostEditForm shows the edit form to the author. Anyone else is silently
// redirected to the post, same as a denied submit.
func (h *Handlers) PostEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.Posts.Get(r.Context(), id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	viewer, _ := viewerFrom(r)
	if viewer.ID != post.AuthorID {
		http.Redirect(w, r, fmt.Sprintf("/posts/%d/", id), http.StatusFound)
		return
	}

	groups, err := h.Groups.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "post_form", postFormPage{
		basePage:        h.base(r, "Edit post"),
		IsEdit:          true,
		Text:            post.Text,
		SelectedGroupID: derefGroupID(post.GroupID),
		Groups:          groups,
	})
}

func (h *Handlers) PostEdit(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	viewer, _ := viewerFrom(r)

	form, image, formErrors := h.parsePostForm(w, r)
	if formErrors != nil {
		groups, err := h.Groups.List(r.Context())
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		h.render(w, http.StatusOK, "post_form", postFormPage{
			basePage:        h.base(r, "Edit post"),
			IsEdit:          true,
			Text:            form.Text,
			SelectedGroupID: derefGroupID(form.GroupID),
			Groups:          groups,
			FormErrors:      formErrors,
		})
		return
	}

	decision, err := h.Mutator.EditPost(r.Context(), viewer.ID, id, content.PostChanges{
		Text:    form.Text,
		GroupID: form.GroupID,
		Image:   image,
	})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if !decision.Allowed {
		http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/posts/%d/", id), http.StatusFound)
}

func (h *Handlers) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	viewer, _ := viewerFrom(r)

	decision, err := h.Mutator.DeletePost(r.Context(), viewer.ID, id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if !decision.Allowed {
		http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", viewer.Username), http.StatusFound)
}

// parsePostForm reads the multipart post form and stores the uploaded image
// if there is one. A nil error map means the form is valid; the returned
// image is the stored filename, nil when no new image was uploaded.
func (h *Handlers) parsePostForm(_ http.ResponseWriter, r *http.Request) (PostForm, *string, map[string]string) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		// Plain urlencoded form, no image field.
		if err := r.ParseForm(); err != nil {
			return PostForm{}, nil, map[string]string{"Form": "invalid form"}
		}
	}

	form := PostForm{
		Text:    strings.TrimSpace(r.PostFormValue("text")),
		GroupID: parseGroupID(r.PostFormValue("group")),
	}

	if err := validate.Struct(form); err != nil {
		return form, nil, fieldErrors(err)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return form, nil, nil
	}
	defer file.Close()

	name, err := h.Media.Save(file, header)
	if err != nil {
		return form, nil, map[string]string{"Image": "Could not store the image: " + err.Error()}
	}

	return form, &name, nil
}

func parseGroupID(raw string) *uint {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	groupID := uint(id)
	return &groupID
}

func derefGroupID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}
