package config

import "time"

type Config struct {
	LogLevel      string        `flag:"log-level"`
	DatabaseURL   string        `flag:"database-url"`
	Listen        string        `flag:"listen"`
	MetricsListen string        `flag:"metrics-listen"`
	MediaDir      string        `flag:"media-dir"`
	SessionSecret string        `flag:"session-secret"`
	PageCacheTTL  time.Duration `flag:"page-cache-ttl"`
}
