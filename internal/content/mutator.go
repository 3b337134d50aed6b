package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"plume/internal/core"
)

// Decision is the outcome of an ownership check. A denied mutation is not an
// error: the actor is redirected to the read view of the post and nothing
// changes in storage.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allowed() Decision {
	return Decision{Allowed: true}
}

func deniedToDetail(postID uint) Decision {
	return Decision{RedirectTo: fmt.Sprintf("/posts/%d/", postID)}
}

// PostChanges carries the editable fields of a post. The author is not among
// them.
type PostChanges struct {
	Text    string
	GroupID *uint
	// Image replaces the stored image when non-nil; nil keeps the
	// current one.
	Image *string
}

// Mutator validates and applies post and comment writes, enforcing that only
// the author may edit or delete a post.
type Mutator struct {
	Logger   *slog.Logger
	Posts    core.PostRepository
	Comments core.CommentRepository
}

func (m *Mutator) Init(_ context.Context) error {
	m.Logger = m.Logger.With("component", "content.Mutator")
	return nil
}

// CreatePost stores a new post attributed to authorID. The author is always
// the acting identity, never client-supplied.
func (m *Mutator) CreatePost(ctx context.Context, authorID uint, text string, groupID *uint, image string) (core.Post, error) {
	post := core.Post{
		AuthorID:  authorID,
		GroupID:   groupID,
		Text:      text,
		Image:     image,
		CreatedAt: time.Now(),
	}

	if err := m.Posts.Insert(ctx, &post); err != nil {
		return core.Post{}, err
	}

	m.Logger.Info("post created", "post", post.ID, "author", authorID)
	return post, nil
}

// EditPost applies changes when the actor is the author. Anyone else gets a
// denial redirecting to the unmodified post.
func (m *Mutator) EditPost(ctx context.Context, actorID, postID uint, changes PostChanges) (Decision, error) {
	post, err := m.Posts.Get(ctx, postID)
	if err != nil {
		return Decision{}, err
	}

	if post.AuthorID != actorID {
		return deniedToDetail(postID), nil
	}

	post.Text = changes.Text
	post.GroupID = changes.GroupID
	if changes.Image != nil {
		post.Image = *changes.Image
	}

	if err := m.Posts.Update(ctx, &post); err != nil {
		return Decision{}, err
	}

	m.Logger.Info("post edited", "post", postID, "author", actorID)
	return allowed(), nil
}

// DeletePost removes the post when the actor is the author, with the same
// soft-denial semantics as EditPost.
func (m *Mutator) DeletePost(ctx context.Context, actorID, postID uint) (Decision, error) {
	post, err := m.Posts.Get(ctx, postID)
	if err != nil {
		return Decision{}, err
	}

	if post.AuthorID != actorID {
		return deniedToDetail(postID), nil
	}

	if err := m.Posts.Delete(ctx, postID); err != nil {
		return Decision{}, err
	}

	m.Logger.Info("post deleted", "post", postID, "author", actorID)
	return allowed(), nil
}

// AddComment attaches a comment to the post, attributed to the actor. Any
// authenticated user may comment, there is no ownership check.
func (m *Mutator) AddComment(ctx context.Context, actorID, postID uint, text string) (core.Comment, error) {
	if _, err := m.Posts.Get(ctx, postID); err != nil {
		return core.Comment{}, err
	}

	comment := core.Comment{
		PostID:    postID,
		AuthorID:  actorID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	if err := m.Comments.Insert(ctx, &comment); err != nil {
		return core.Comment{}, err
	}

	return comment, nil
}
