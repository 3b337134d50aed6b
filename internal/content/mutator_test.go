package content_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"plume/internal/content"
	"plume/internal/core"
	"plume/internal/testinfra"
)

func newMutator(t *testing.T) (*content.Mutator, *testinfra.FakePostRepo, *testinfra.FakeCommentRepo) {
	t.Helper()

	posts := &testinfra.FakePostRepo{}
	comments := &testinfra.FakeCommentRepo{}
	m := &content.Mutator{Logger: slog.Default(), Posts: posts, Comments: comments}
	require.NoError(t, m.Init(t.Context()))

	return m, posts, comments
}

func TestMutator_CreatePost(t *testing.T) {
	t.Parallel()

	m, posts, _ := newMutator(t)

	post, err := m.CreatePost(t.Context(), 1, "hello", nil, "")
	require.NoError(t, err)
	require.EqualValues(t, 1, post.AuthorID)
	require.NotZero(t, post.ID)
	require.NotZero(t, post.CreatedAt)
	require.Len(t, posts.Posts, 1)
}

func TestMutator_EditPost(t *testing.T) {
	t.Parallel()

	t.Run("author may edit", func(t *testing.T) {
		t.Parallel()

		m, posts, _ := newMutator(t)
		post, err := m.CreatePost(t.Context(), 1, "original", nil, "")
		require.NoError(t, err)

		decision, err := m.EditPost(t.Context(), 1, post.ID, content.PostChanges{Text: "edited"})
		require.NoError(t, err)
		require.True(t, decision.Allowed)

		stored, err := posts.Get(t.Context(), post.ID)
		require.NoError(t, err)
		require.Equal(t, "edited", stored.Text)
	})

	t.Run("non-author is denied with a redirect and the post is untouched", func(t *testing.T) {
		t.Parallel()

		m, posts, _ := newMutator(t)
		post, err := m.CreatePost(t.Context(), 1, "original", nil, "")
		require.NoError(t, err)

		decision, err := m.EditPost(t.Context(), 2, post.ID, content.PostChanges{Text: "hijacked"})
		require.NoError(t, err)
		require.False(t, decision.Allowed)
		require.Equal(t, "/posts/1/", decision.RedirectTo)

		stored, err := posts.Get(t.Context(), post.ID)
		require.NoError(t, err)
		require.Equal(t, "original", stored.Text)
	})

	t.Run("unknown post is not found", func(t *testing.T) {
		t.Parallel()

		m, _, _ := newMutator(t)

		_, err := m.EditPost(t.Context(), 1, 42, content.PostChanges{Text: "x"})
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestMutator_DeletePost(t *testing.T) {
	t.Parallel()

	t.Run("author may delete", func(t *testing.T) {
		t.Parallel()

		m, posts, _ := newMutator(t)
		post, err := m.CreatePost(t.Context(), 1, "bye", nil, "")
		require.NoError(t, err)

		decision, err := m.DeletePost(t.Context(), 1, post.ID)
		require.NoError(t, err)
		require.True(t, decision.Allowed)
		require.Empty(t, posts.Posts)
	})

	t.Run("non-author is denied and the post survives", func(t *testing.T) {
		t.Parallel()

		m, posts, _ := newMutator(t)
		post, err := m.CreatePost(t.Context(), 1, "keep", nil, "")
		require.NoError(t, err)

		decision, err := m.DeletePost(t.Context(), 2, post.ID)
		require.NoError(t, err)
		require.False(t, decision.Allowed)
		require.Equal(t, "/posts/1/", decision.RedirectTo)
		require.Len(t, posts.Posts, 1)
	})
}

func TestMutator_AddComment(t *testing.T) {
	t.Parallel()

	t.Run("attributes the comment to the actor", func(t *testing.T) {
		t.Parallel()

		m, _, comments := newMutator(t)
		post, err := m.CreatePost(t.Context(), 1, "post", nil, "")
		require.NoError(t, err)

		comment, err := m.AddComment(t.Context(), 2, post.ID, "nice")
		require.NoError(t, err)
		require.EqualValues(t, 2, comment.AuthorID)
		require.Equal(t, post.ID, comment.PostID)
		require.Len(t, comments.Comments, 1)
	})

	t.Run("unknown post is not found", func(t *testing.T) {
		t.Parallel()

		m, _, _ := newMutator(t)

		_, err := m.AddComment(t.Context(), 1, 42, "nice")
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}
