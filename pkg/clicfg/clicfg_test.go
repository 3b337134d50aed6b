package clicfg_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"plume/pkg/clicfg"
)

type testConfig struct {
	Name    string        `flag:"name"`
	Count   int           `flag:"count"`
	Ratio   float64       `flag:"ratio"`
	Enabled bool          `flag:"enabled"`
	TTL     time.Duration `flag:"ttl"`

	untagged string //nolint:unused
}

func parse(t *testing.T, args ...string) testConfig {
	t.Helper()

	var cfg testConfig

	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.IntFlag{Name: "count"},
			&cli.Float64Flag{Name: "ratio"},
			&cli.BoolFlag{Name: "enabled"},
			&cli.DurationFlag{Name: "ttl"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return clicfg.ParseFlags(c, &cfg)
		},
	}

	require.NoError(t, cmd.Run(t.Context(), append([]string{"test"}, args...)))

	return cfg
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("scalar fields", func(t *testing.T) {
		t.Parallel()

		cfg := parse(t, "--name", "plume", "--count", "3", "--ratio", "0.5", "--enabled")

		require.Equal(t, "plume", cfg.Name)
		require.Equal(t, 3, cfg.Count)
		require.InDelta(t, 0.5, cfg.Ratio, 0.0001)
		require.True(t, cfg.Enabled)
	})

	t.Run("duration field", func(t *testing.T) {
		t.Parallel()

		cfg := parse(t, "--ttl", "20s")

		require.Equal(t, 20*time.Second, cfg.TTL)
	})

	t.Run("rejects non-pointer", func(t *testing.T) {
		t.Parallel()

		err := clicfg.ParseFlags(&cli.Command{}, testConfig{})

		require.ErrorIs(t, err, clicfg.ErrCannotParseFlags)
	})
}
