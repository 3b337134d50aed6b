package persistence

import (
	"github.com/zhulik/pal"

	"plume/internal/core"
	"plume/internal/persistence/comments"
	"plume/internal/persistence/follows"
	"plume/internal/persistence/groups"
	"plume/internal/persistence/posts"
	"plume/internal/persistence/users"
)

func Provide() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.DB](&DB{}),
		pal.Provide[core.UserRepository](&users.Repository{}),
		pal.Provide[core.GroupRepository](&groups.Repository{}),
		pal.Provide[core.PostRepository](&posts.Repository{}),
		pal.Provide[core.CommentRepository](&comments.Repository{}),
		pal.Provide[core.FollowRepository](&follows.Repository{}),
	)
}
