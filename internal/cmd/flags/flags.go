package flags

import (
	"fmt"
	"slices"
	"time"

	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var DatabaseURL = &cli.StringFlag{
	Name:    "database-url",
	Aliases: []string{"d"},
	Usage:   "PostgreSQL connection string",
	Value:   "postgres://localhost:5432/plume?sslmode=disable",
	Sources: cli.EnvVars("DATABASE_URL"),
}

var Listen = &cli.StringFlag{
	Name:    "listen",
	Usage:   "Address the web server listens on",
	Value:   ":8000",
	Sources: cli.EnvVars("LISTEN"),
}

var MetricsListen = &cli.StringFlag{
	Name:    "metrics-listen",
	Usage:   "Address the metrics server listens on",
	Value:   ":9090",
	Sources: cli.EnvVars("METRICS_LISTEN"),
}

var MediaDir = &cli.StringFlag{
	Name:    "media-dir",
	Usage:   "Directory uploaded images are stored in",
	Value:   "media",
	Sources: cli.EnvVars("MEDIA_DIR"),
}

var SessionSecret = &cli.StringFlag{
	Name:     "session-secret",
	Usage:    "Secret the session cookies are signed with",
	Required: true,
	Sources:  cli.EnvVars("SESSION_SECRET"),
}

var PageCacheTTL = &cli.DurationFlag{
	Name:    "page-cache-ttl",
	Usage:   "How long the rendered global feed is cached; 0 disables the cache",
	Value:   20 * time.Second,
	Sources: cli.EnvVars("PAGE_CACHE_TTL"),
}
