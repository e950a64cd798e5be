package wavedb

import "github.com/waveformdb/wavedb/internal/options"

// Config holds the mutable configuration of a Waveform, set up via Option
// functions passed to New.
type Config struct {
	shardCount int
}

// Option configures a Waveform at construction time.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{shardCount: 1}
}

// WithShardCount records a shard count in the Waveform's Config (values
// <= 0 are ignored). Nothing in Waveform reads it: Shard always takes its
// shard count as an explicit argument.
func WithShardCount(n int) Option {
	return options.NoError[*Config](func(c *Config) {
		if n > 0 {
			c.shardCount = n
		}
	})
}
