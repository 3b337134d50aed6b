package web

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"plume/internal/config"
	"plume/internal/content"
	"plume/internal/core"
	"plume/internal/feed"
	"plume/internal/follow"
	"plume/internal/pagecache"
	"plume/internal/testinfra"
)

type testApp struct {
	router   chi.Router
	handlers *Handlers

	users    *testinfra.FakeUserRepo
	groups   *testinfra.FakeGroupRepo
	posts    *testinfra.FakePostRepo
	comments *testinfra.FakeCommentRepo
	follows  *testinfra.FakeFollowRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		SessionSecret: "test-secret",
		MediaDir:      t.TempDir(),
		PageCacheTTL:  time.Minute,
	}
	logger := slog.Default()

	users := &testinfra.FakeUserRepo{}
	groups := &testinfra.FakeGroupRepo{}
	posts := &testinfra.FakePostRepo{Users: users}
	comments := &testinfra.FakeCommentRepo{}
	follows := &testinfra.FakeFollowRepo{}

	graph := &follow.Graph{Logger: logger, Follows: follows}
	require.NoError(t, graph.Init(t.Context()))

	composer := &feed.Composer{Logger: logger, Posts: posts, Follows: follows}
	require.NoError(t, composer.Init(t.Context()))

	mutator := &content.Mutator{Logger: logger, Posts: posts, Comments: comments}
	require.NoError(t, mutator.Init(t.Context()))

	cache := &pagecache.Cache{Logger: logger, Config: cfg}
	require.NoError(t, cache.Init(t.Context()))

	sessions := &Sessions{Logger: logger, Config: cfg, Users: users}
	require.NoError(t, sessions.Init(t.Context()))

	media := &MediaStore{Logger: logger, Config: cfg}
	require.NoError(t, media.Init(t.Context()))

	renderer := &Renderer{}
	require.NoError(t, renderer.Init(t.Context()))

	handlers := &Handlers{
		Logger:   logger,
		Config:   cfg,
		Feed:     composer,
		Graph:    graph,
		Mutator:  mutator,
		Users:    users,
		Groups:   groups,
		Posts:    posts,
		Comments: comments,
		Sessions: sessions,
		Cache:    cache,
		Media:    media,
		Renderer: renderer,
	}
	require.NoError(t, handlers.Init(t.Context()))

	router := chi.NewMux()
	routes(router, handlers)

	return &testApp{
		router:   router,
		handlers: handlers,
		users:    users,
		groups:   groups,
		posts:    posts,
		comments: comments,
		follows:  follows,
	}
}

func (app *testApp) addUser(t *testing.T, username string) core.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := core.User{Username: username, FirstName: username, PasswordHash: string(hash)}
	require.NoError(t, app.users.Insert(t.Context(), &user))
	return user
}

func (app *testApp) addPost(t *testing.T, authorID uint, text string, createdAt time.Time) core.Post {
	t.Helper()

	post := core.Post{AuthorID: authorID, Text: text, CreatedAt: createdAt}
	require.NoError(t, app.posts.Insert(t.Context(), &post))
	return post
}

// sessionCookie produces a signed-in session cookie without going through
// the login form.
func (app *testApp) sessionCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, app.handlers.Sessions.SignIn(w, r, userID))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func (app *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, r)
	return w
}

func (app *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, r)
	return w
}

var fixtureTime = time.Date(2020, 2, 27, 12, 0, 0, 0, time.UTC)

func TestIndex(t *testing.T) {
	t.Parallel()

	t.Run("paginates ten posts per page", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		author := app.addUser(t, "alice")
		for i := 0; i < 13; i++ {
			app.addPost(t, author.ID, "post", fixtureTime.Add(time.Duration(i)*time.Minute))
		}

		w := app.get("/", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 10, strings.Count(w.Body.String(), "Read more"))

		w = app.get("/?page=2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 3, strings.Count(w.Body.String(), "Read more"))
	})

	t.Run("serves stale content until the cache expires", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		author := app.addUser(t, "alice")
		app.addPost(t, author.ID, "first post", fixtureTime)

		before := app.get("/", nil).Body.String()
		require.Contains(t, before, "first post")

		app.addPost(t, author.ID, "surprise post", fixtureTime.Add(time.Hour))

		cached := app.get("/", nil).Body.String()
		require.Equal(t, before, cached)
		require.NotContains(t, cached, "surprise post")

		// Expiry is simulated by dropping the cache.
		app.handlers.Cache.Clear()

		fresh := app.get("/", nil).Body.String()
		require.Contains(t, fresh, "surprise post")
	})
}

func TestGroupPosts(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	author := app.addUser(t, "alice")
	group := core.Group{Title: "Cooking", Slug: "cooking"}
	require.NoError(t, app.groups.Insert(t.Context(), &group))

	post := core.Post{AuthorID: author.ID, GroupID: &group.ID, Text: "group post", CreatedAt: fixtureTime}
	require.NoError(t, app.posts.Insert(t.Context(), &post))

	w := app.get("/group/cooking/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "group post")

	w = app.get("/group/unknown/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfile(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	author := app.addUser(t, "alice")
	app.addPost(t, author.ID, "profile post", fixtureTime)

	w := app.get("/profile/alice/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "profile post")

	w = app.get("/profile/nobody/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostDetail(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	author := app.addUser(t, "alice")
	app.addPost(t, author.ID, "detail post", fixtureTime)

	w := app.get("/posts/1/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "detail post")

	w = app.get("/posts/99/", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	w := app.get("/create/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/login/?next=%2Fcreate%2F", w.Header().Get("Location"))

	w = app.get("/follow/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/login/?next=%2Ffollow%2F", w.Header().Get("Location"))
}

func TestPostCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates and redirects to the author profile", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		user := app.addUser(t, "alice")
		cookie := app.sessionCookie(t, user.ID)

		w := app.postForm("/create/", url.Values{"text": {"fresh post"}}, cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/profile/alice/", w.Header().Get("Location"))
		require.Len(t, app.posts.Posts, 1)
		require.Equal(t, user.ID, app.posts.Posts[0].AuthorID)
	})

	t.Run("empty text re-renders the form without creating", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		user := app.addUser(t, "alice")
		cookie := app.sessionCookie(t, user.ID)

		w := app.postForm("/create/", url.Values{"text": {"   "}}, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "This field is required.")
		require.Empty(t, app.posts.Posts)
	})
}

func TestPostEdit(t *testing.T) {
	t.Parallel()

	t.Run("author edits", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		author := app.addUser(t, "alice")
		post := app.addPost(t, author.ID, "original", fixtureTime)
		cookie := app.sessionCookie(t, author.ID)

		w := app.postForm("/posts/1/edit/", url.Values{"text": {"edited"}}, cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/posts/1/", w.Header().Get("Location"))

		stored, err := app.posts.Get(t.Context(), post.ID)
		require.NoError(t, err)
		require.Equal(t, "edited", stored.Text)
	})

	t.Run("non-author is redirected and the post is untouched", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		author := app.addUser(t, "alice")
		other := app.addUser(t, "bob")
		post := app.addPost(t, author.ID, "original", fixtureTime)
		cookie := app.sessionCookie(t, other.ID)

		w := app.postForm("/posts/1/edit/", url.Values{"text": {"hijacked"}}, cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/posts/1/", w.Header().Get("Location"))

		stored, err := app.posts.Get(t.Context(), post.ID)
		require.NoError(t, err)
		require.Equal(t, "original", stored.Text)

		// The edit form is also off-limits.
		w = app.get("/posts/1/edit/", cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/posts/1/", w.Header().Get("Location"))
	})
}

func TestPostDelete(t *testing.T) {
	t.Parallel()

	t.Run("author deletes", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		author := app.addUser(t, "alice")
		app.addPost(t, author.ID, "gone", fixtureTime)
		cookie := app.sessionCookie(t, author.ID)

		w := app.get("/posts/1/delete/", cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/profile/alice/", w.Header().Get("Location"))
		require.Empty(t, app.posts.Posts)
	})

	t.Run("non-author is redirected and the post survives", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		author := app.addUser(t, "alice")
		other := app.addUser(t, "bob")
		app.addPost(t, author.ID, "keep", fixtureTime)
		cookie := app.sessionCookie(t, other.ID)

		w := app.get("/posts/1/delete/", cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/posts/1/", w.Header().Get("Location"))
		require.Len(t, app.posts.Posts, 1)
	})
}

func TestAddComment(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	author := app.addUser(t, "alice")
	commenter := app.addUser(t, "bob")
	app.addPost(t, author.ID, "post", fixtureTime)
	cookie := app.sessionCookie(t, commenter.ID)

	w := app.postForm("/posts/1/comment/", url.Values{"text": {"nice one"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/posts/1/", w.Header().Get("Location"))
	require.Len(t, app.comments.Comments, 1)
	require.Equal(t, commenter.ID, app.comments.Comments[0].AuthorID)
}

func TestFollowRoutes(t *testing.T) {
	t.Parallel()

	t.Run("follow and unfollow redirect to the profile", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		app.addUser(t, "alice")
		viewer := app.addUser(t, "bob")
		cookie := app.sessionCookie(t, viewer.ID)

		w := app.get("/profile/alice/follow/", cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/profile/alice/", w.Header().Get("Location"))
		require.Len(t, app.follows.Edges, 1)

		// Following again changes nothing.
		app.get("/profile/alice/follow/", cookie)
		require.Len(t, app.follows.Edges, 1)

		w = app.get("/profile/alice/unfollow/", cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Empty(t, app.follows.Edges)
	})

	t.Run("self-follow is a silent no-op", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		viewer := app.addUser(t, "bob")
		cookie := app.sessionCookie(t, viewer.ID)

		w := app.get("/profile/bob/follow/", cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Empty(t, app.follows.Edges)
	})

	t.Run("subscription feed only shows followed authors", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		followed := app.addUser(t, "alice")
		ignored := app.addUser(t, "carol")
		viewer := app.addUser(t, "bob")
		app.addPost(t, followed.ID, "from alice", fixtureTime)
		app.addPost(t, ignored.ID, "from carol", fixtureTime)
		cookie := app.sessionCookie(t, viewer.ID)

		app.get("/profile/alice/follow/", cookie)

		body := app.get("/follow/", cookie).Body.String()
		require.Contains(t, body, "from alice")
		require.NotContains(t, body, "from carol")
	})
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	t.Run("login redirects to next", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		app.addUser(t, "alice")

		w := app.postForm("/auth/login/?next=%2Fcreate%2F", url.Values{
			"username": {"alice"},
			"password": {"password123"},
		}, nil)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/create/", w.Header().Get("Location"))
		require.NotEmpty(t, w.Result().Cookies())
	})

	t.Run("wrong password re-renders the form", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		app.addUser(t, "alice")

		w := app.postForm("/auth/login/", url.Values{
			"username": {"alice"},
			"password": {"nope"},
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Wrong username or password.")
	})

	t.Run("signup creates the user and signs in", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)

		w := app.postForm("/auth/signup/", url.Values{
			"username":   {"dave"},
			"first_name": {"Dave"},
			"password":   {"password123"},
		}, nil)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))
		require.Len(t, app.users.Users, 1)

		_, err := app.users.GetByUsername(t.Context(), "dave")
		require.NoError(t, err)
	})

	t.Run("taken username re-renders the form", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t)
		app.addUser(t, "alice")

		w := app.postForm("/auth/signup/", url.Values{
			"username": {"alice"},
			"password": {"password123"},
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "This username is taken.")
		require.Len(t, app.users.Users, 1)
	})
}
