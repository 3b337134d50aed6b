package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"plume/internal/cmd/flags"
	"plume/internal/content"
	"plume/internal/feed"
	"plume/internal/follow"
	"plume/internal/metrics"
	"plume/internal/pagecache"
	"plume/internal/persistence"
	"plume/internal/web"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Run the web server and the metrics server",
	Flags: []cli.Flag{
		flags.DatabaseURL,
		flags.Listen,
		flags.MetricsListen,
		flags.MediaDir,
		flags.SessionSecret,
		flags.PageCacheTTL,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			persistence.Provide(),
			web.Provide(),
			pal.Provide(&pagecache.Cache{}),
			pal.Provide(&follow.Graph{}),
			pal.Provide(&feed.Composer{}),
			pal.Provide(&content.Mutator{}),
			pal.Provide(&metrics.Server{}),
			pal.Provide(&metrics.Collector{}),
		)
	},
}
