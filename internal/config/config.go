// Package config loads the module's single configuration record. There
// is no process-wide mutable state anywhere else in the module — every
// component that needs a tunable takes one of these (or a narrower
// slice of it) explicitly, per spec §9.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FeedBackend selects which Loader implementation builds the
// Timetable Store at startup.
type FeedBackend string

const (
	FeedBackendPostgres FeedBackend = "postgres"
	FeedBackendSQLite   FeedBackend = "sqlite"
	FeedBackendGTFSZip  FeedBackend = "gtfszip"
)

// Config is the module's full configuration record.
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`

	Feed struct {
		Backend  FeedBackend `mapstructure:"backend"`
		Postgres struct {
			DSN string `mapstructure:"dsn"`
		} `mapstructure:"postgres"`
		SQLite struct {
			Path string `mapstructure:"path"`
		} `mapstructure:"sqlite"`
		GTFSZip struct {
			Path string `mapstructure:"path"`
		} `mapstructure:"gtfszip"`
	} `mapstructure:"feed"`

	Walking struct {
		MaxWalkRadiusM float64 `mapstructure:"max_walk_radius_m"`
		WalkSpeedMPS   float64 `mapstructure:"walk_speed_mps"`
		WalkPenalty    float64 `mapstructure:"walk_penalty"`
	} `mapstructure:"walking"`

	Raptor struct {
		MaxRounds               int   `mapstructure:"max_rounds"`
		SameStopTransferSeconds int64 `mapstructure:"same_stop_transfer_seconds"`
	} `mapstructure:"raptor"`

	Query struct {
		TimeoutMS     int `mapstructure:"timeout_ms"`
		AccessRadiusM int `mapstructure:"access_radius_m"`
		ResolverCache int `mapstructure:"resolver_cache_size"`
	} `mapstructure:"query"`

	Snapshot struct {
		RefreshCron string `mapstructure:"refresh_cron"`
		DiskCache   string `mapstructure:"disk_cache_path"`
		RedisAddr   string `mapstructure:"redis_addr"`
	} `mapstructure:"snapshot"`
}

// Load reads configuration from (in ascending priority) defaults, an
// optional config file named by configPath, and TRANSIT_* environment
// variables, mirroring the teacher pack's viper.SetDefault pattern.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRANSIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("feed.backend", string(FeedBackendSQLite))

	v.SetDefault("walking.max_walk_radius_m", 1000.0)
	v.SetDefault("walking.walk_speed_mps", 1.389)
	v.SetDefault("walking.walk_penalty", 2.0)

	v.SetDefault("raptor.max_rounds", 7)
	v.SetDefault("raptor.same_stop_transfer_seconds", 0)

	v.SetDefault("query.timeout_ms", 2000)
	v.SetDefault("query.access_radius_m", 1000.0)
	v.SetDefault("query.resolver_cache_size", 4096)

	v.SetDefault("snapshot.refresh_cron", "0 */15 * * * *")
	v.SetDefault("snapshot.disk_cache_path", "")
	v.SetDefault("snapshot.redis_addr", "")
}
