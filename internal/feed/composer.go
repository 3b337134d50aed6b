package feed

import (
	"context"
	"log/slog"

	"plume/internal/core"
)

// PageSize is fixed: every feed shows ten posts per page.
const PageSize = 10

// Page is one page of a feed plus the metadata the pagination widget needs.
// Number is 1-based.
type Page struct {
	Posts  []core.Post
	Number int
	Total  int64
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return int64(p.Number)*PageSize < p.Total
}

func (p Page) PrevNumber() int {
	return p.Number - 1
}

func (p Page) NextNumber() int {
	return p.Number + 1
}

// Composer builds reverse-chronological paginated feeds. Posts with equal
// timestamps order by id desc. Requests past the last page come back empty,
// never as an error.
type Composer struct {
	Logger  *slog.Logger
	Posts   core.PostRepository
	Follows core.FollowRepository
}

func (c *Composer) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "feed.Composer")
	return nil
}

// Global is the feed of all posts.
func (c *Composer) Global(ctx context.Context, page int) (Page, error) {
	return c.compose(ctx, core.PostFilter{}, page)
}

// ByGroup is the feed of a single group.
func (c *Composer) ByGroup(ctx context.Context, groupID uint, page int) (Page, error) {
	return c.compose(ctx, core.PostFilter{GroupID: &groupID}, page)
}

// ByAuthor is the feed of a single author, shown on their profile.
func (c *Composer) ByAuthor(ctx context.Context, authorID uint, page int) (Page, error) {
	return c.compose(ctx, core.PostFilter{AuthorID: &authorID}, page)
}

// Subscriptions is the feed of every author the viewer follows. A viewer
// following nobody gets an empty page without touching the posts table.
func (c *Composer) Subscriptions(ctx context.Context, viewerID uint, page int) (Page, error) {
	authorIDs, err := c.Follows.AuthorIDs(ctx, viewerID)
	if err != nil {
		return Page{}, err
	}

	if len(authorIDs) == 0 {
		return Page{Number: normalizePage(page)}, nil
	}

	return c.compose(ctx, core.PostFilter{AuthorIDs: authorIDs}, page)
}

func (c *Composer) compose(ctx context.Context, filter core.PostFilter, page int) (Page, error) {
	page = normalizePage(page)

	total, err := c.Posts.Count(ctx, filter)
	if err != nil {
		return Page{}, err
	}

	posts, err := c.Posts.Page(ctx, filter, (page-1)*PageSize, PageSize)
	if err != nil {
		return Page{}, err
	}

	return Page{Posts: posts, Number: page, Total: total}, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
