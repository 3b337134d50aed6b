// Package testinfra provides in-memory repository fakes implementing the
// core interfaces, so the feed, follow, content, and web packages can be
// tested without Postgres. The fakes mirror the repositories' query
// semantics: feeds order by created_at desc then id desc, follow inserts
// treat duplicates as no-ops.
package testinfra

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"plume/internal/core"
)

type FakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	Users  []core.User
}

func (r *FakeUserRepo) Insert(_ context.Context, user *core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	user.ID = r.nextID
	r.Users = append(r.Users, *user)
	return nil
}

func (r *FakeUserRepo) GetByID(_ context.Context, id uint) (core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := lo.Find(r.Users, func(u core.User) bool { return u.ID == id })
	if !ok {
		return core.User{}, fmt.Errorf("%w: user %d", core.ErrNotFound, id)
	}
	return user, nil
}

func (r *FakeUserRepo) GetByUsername(_ context.Context, username string) (core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := lo.Find(r.Users, func(u core.User) bool { return u.Username == username })
	if !ok {
		return core.User{}, fmt.Errorf("%w: user %q", core.ErrNotFound, username)
	}
	return user, nil
}

type FakeGroupRepo struct {
	mu     sync.Mutex
	nextID uint
	Groups []core.Group
}

func (r *FakeGroupRepo) Insert(_ context.Context, group *core.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	group.ID = r.nextID
	r.Groups = append(r.Groups, *group)
	return nil
}

func (r *FakeGroupRepo) GetBySlug(_ context.Context, slug string) (core.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := lo.Find(r.Groups, func(g core.Group) bool { return g.Slug == slug })
	if !ok {
		return core.Group{}, fmt.Errorf("%w: group %q", core.ErrNotFound, slug)
	}
	return group, nil
}

func (r *FakeGroupRepo) List(_ context.Context) ([]core.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]core.Group(nil), r.Groups...), nil
}

type FakePostRepo struct {
	mu     sync.Mutex
	nextID uint
	Posts  []core.Post

	// Users, when set, is used to fill the Author field the way the real
	// repository preloads it.
	Users *FakeUserRepo
}

func (r *FakePostRepo) Insert(_ context.Context, post *core.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	post.ID = r.nextID
	r.Posts = append(r.Posts, *post)
	return nil
}

func (r *FakePostRepo) Get(ctx context.Context, id uint) (core.Post, error) {
	r.mu.Lock()
	post, ok := lo.Find(r.Posts, func(p core.Post) bool { return p.ID == id })
	r.mu.Unlock()

	if !ok {
		return core.Post{}, fmt.Errorf("%w: post %d", core.ErrNotFound, id)
	}
	return r.preload(ctx, post), nil
}

func (r *FakePostRepo) Update(_ context.Context, post *core.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.Posts {
		if r.Posts[i].ID == post.ID {
			r.Posts[i].Text = post.Text
			r.Posts[i].GroupID = post.GroupID
			r.Posts[i].Image = post.Image
			return nil
		}
	}
	return fmt.Errorf("%w: post %d", core.ErrNotFound, post.ID)
}

func (r *FakePostRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Posts = lo.Reject(r.Posts, func(p core.Post, _ int) bool { return p.ID == id })
	return nil
}

func (r *FakePostRepo) Page(ctx context.Context, filter core.PostFilter, offset, limit int) ([]core.Post, error) {
	r.mu.Lock()
	matched := r.matching(filter)
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	return lo.Map(matched, func(p core.Post, _ int) core.Post {
		return r.preload(ctx, p)
	}), nil
}

func (r *FakePostRepo) Count(_ context.Context, filter core.PostFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.matching(filter))), nil
}

func (r *FakePostRepo) matching(filter core.PostFilter) []core.Post {
	return lo.Filter(r.Posts, func(p core.Post, _ int) bool {
		switch {
		case filter.GroupID != nil:
			return p.GroupID != nil && *p.GroupID == *filter.GroupID
		case filter.AuthorID != nil:
			return p.AuthorID == *filter.AuthorID
		case filter.AuthorIDs != nil:
			return lo.Contains(filter.AuthorIDs, p.AuthorID)
		}
		return true
	})
}

func (r *FakePostRepo) preload(ctx context.Context, post core.Post) core.Post {
	if r.Users != nil {
		if author, err := r.Users.GetByID(ctx, post.AuthorID); err == nil {
			post.Author = author
		}
	}
	return post
}

type FakeCommentRepo struct {
	mu       sync.Mutex
	nextID   uint
	Comments []core.Comment
}

func (r *FakeCommentRepo) Insert(_ context.Context, comment *core.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	comment.ID = r.nextID
	r.Comments = append(r.Comments, *comment)
	return nil
}

func (r *FakeCommentRepo) ForPost(_ context.Context, postID uint) ([]core.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return lo.Filter(r.Comments, func(c core.Comment, _ int) bool { return c.PostID == postID }), nil
}

type FakeFollowRepo struct {
	mu    sync.Mutex
	Edges []core.Follow
}

func (r *FakeFollowRepo) Insert(_ context.Context, edge *core.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exists := lo.ContainsBy(r.Edges, func(e core.Follow) bool {
		return e.UserID == edge.UserID && e.AuthorID == edge.AuthorID
	})
	if exists {
		return nil
	}

	edge.ID = uint(len(r.Edges) + 1)
	r.Edges = append(r.Edges, *edge)
	return nil
}

func (r *FakeFollowRepo) Delete(_ context.Context, userID, authorID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Edges = lo.Reject(r.Edges, func(e core.Follow, _ int) bool {
		return e.UserID == userID && e.AuthorID == authorID
	})
	return nil
}

func (r *FakeFollowRepo) Exists(_ context.Context, userID, authorID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return lo.ContainsBy(r.Edges, func(e core.Follow) bool {
		return e.UserID == userID && e.AuthorID == authorID
	}), nil
}

func (r *FakeFollowRepo) AuthorIDs(_ context.Context, userID uint) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	followed := lo.Filter(r.Edges, func(e core.Follow, _ int) bool { return e.UserID == userID })
	return lo.Map(followed, func(e core.Follow, _ int) uint { return e.AuthorID }), nil
}

func (r *FakeFollowRepo) CountFollowers(_ context.Context, authorID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(lo.CountBy(r.Edges, func(e core.Follow) bool { return e.AuthorID == authorID })), nil
}
