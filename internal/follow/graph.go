package follow

import (
	"context"
	"log/slog"

	"plume/internal/core"
)

// Graph maintains the directed follow edges between users. Self-follows and
// duplicate follows are silent no-ops, never errors: the reference behavior
// for both is a redirect back to the profile page.
type Graph struct {
	Logger  *slog.Logger
	Follows core.FollowRepository
}

func (g *Graph) Init(_ context.Context) error {
	g.Logger = g.Logger.With("component", "follow.Graph")
	return nil
}

// Follow creates the edge viewer -> author. Following yourself or an author
// you already follow does nothing. Duplicate suppression is handled by the
// repository's conflict clause, so two racing follows still yield one edge.
func (g *Graph) Follow(ctx context.Context, viewerID, authorID uint) error {
	if viewerID == authorID {
		return nil
	}

	err := g.Follows.Insert(ctx, &core.Follow{UserID: viewerID, AuthorID: authorID})
	if err != nil {
		return err
	}

	g.Logger.Debug("follow edge created", "viewer", viewerID, "author", authorID)
	return nil
}

// Unfollow removes the edge if present. Absent edges are a no-op.
func (g *Graph) Unfollow(ctx context.Context, viewerID, authorID uint) error {
	return g.Follows.Delete(ctx, viewerID, authorID)
}

func (g *Graph) IsFollowing(ctx context.Context, viewerID, authorID uint) (bool, error) {
	return g.Follows.Exists(ctx, viewerID, authorID)
}

// FollowedAuthorIDs returns the ids of every author the viewer follows,
// used to scope the subscription feed.
func (g *Graph) FollowedAuthorIDs(ctx context.Context, viewerID uint) ([]uint, error) {
	return g.Follows.AuthorIDs(ctx, viewerID)
}

func (g *Graph) FollowerCount(ctx context.Context, authorID uint) (int64, error) {
	return g.Follows.CountFollowers(ctx, authorID)
}
