package web

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"plume/internal/core"
)

type loginPage struct {
	basePage
	Username   string
	Next       string
	FormErrors map[string]string
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login", loginPage{
		basePage: h.base(r, "Log in"),
		Next:     safeNext(r.URL.Query().Get("next")),
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	form := LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	next := safeNext(r.URL.Query().Get("next"))

	renderFailure := func(formErrors map[string]string) {
		h.render(w, http.StatusOK, "login", loginPage{
			basePage:   h.base(r, "Log in"),
			Username:   form.Username,
			Next:       next,
			FormErrors: formErrors,
		})
	}

	if err := validate.Struct(form); err != nil {
		renderFailure(fieldErrors(err))
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), form.Username)
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password))
	}
	if err != nil {
		renderFailure(map[string]string{"Form": "Wrong username or password."})
		return
	}

	if err := h.Sessions.SignIn(w, r, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}

	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

type signupPage struct {
	basePage
	Username   string
	FirstName  string
	LastName   string
	FormErrors map[string]string
}

func (h *Handlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "signup", signupPage{basePage: h.base(r, "Sign up")})
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	form := SignupForm{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Password:  r.PostFormValue("password"),
	}

	renderFailure := func(formErrors map[string]string) {
		h.render(w, http.StatusOK, "signup", signupPage{
			basePage:   h.base(r, "Sign up"),
			Username:   form.Username,
			FirstName:  form.FirstName,
			LastName:   form.LastName,
			FormErrors: formErrors,
		})
	}

	if err := validate.Struct(form); err != nil {
		renderFailure(fieldErrors(err))
		return
	}

	if _, err := h.Users.GetByUsername(r.Context(), form.Username); err == nil {
		renderFailure(map[string]string{"Username": "This username is taken."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	user := core.User{
		Username:     form.Username,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		PasswordHash: string(hash),
	}

	if err := h.Users.Insert(r.Context(), &user); err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := h.Sessions.SignIn(w, r, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// safeNext keeps login redirects on-site: only rooted paths survive.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
