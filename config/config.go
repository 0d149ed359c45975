package config

import (
	"fmt"
	"time"

	// Day boundaries depend on the configured timezone, do not rely on the
	// host's zoneinfo.
	_ "time/tzdata"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database     DatabaseConfigs     `toml:"database"`
	Redis        RedisConfigs        `toml:"redis"`
	Kafka        KafkaConfigs        `toml:"kafka"`
	Metrics      ServerConfigs       `toml:"metrics"`
	Gamification GamificationConfigs `toml:"gamification"`
}

type DatabaseConfigs struct {
	// Driver is one of sqlite, mysql or postgres.
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`

	// File is only used by the sqlite driver.
	File string `toml:"file"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	case "sqlite":
		return d.File
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr     string `toml:"addr"`
	ClientID string `toml:"client_id"`
}

type GamificationConfigs struct {
	// Timezone is the reference timezone for day boundaries of streaks and
	// daily/weekly challenges.
	Timezone string `toml:"timezone"`

	// MaxRetries bounds optimistic concurrency retry loops.
	MaxRetries int `toml:"max_retries"`

	// LevelXPStep is the XP needed for level 2. Level n needs
	// LevelXPStep*(n-1)^2 XP.
	LevelXPStep int `toml:"level_xp_step"`

	// LeaderboardCacheTTL is how long a computed leaderboard lives in redis.
	// Zero disables the cache.
	LeaderboardCacheTTL time.Duration `toml:"leaderboard_cache_ttl"`

	// LeaderboardCron is a standard cron expression of the leaderboard warm-up
	// job.
	LeaderboardCron string `toml:"leaderboard_cron"`

	// CatalogFile is an optional yaml file overriding the built-in catalog.
	CatalogFile string `toml:"catalog_file"`

	// RewardTopic is the kafka topic of reward events.
	RewardTopic string `toml:"reward_topic"`

	// NodeID is the snowflake node of this process, in [0, 1023]. Processes
	// sharing a database must use different nodes.
	NodeID int64 `toml:"node_id"`

	location *time.Location
}

// Location returns the reference timezone. Load validates Timezone, a value
// set later falls back to UTC if it is invalid or empty.
func (g GamificationConfigs) Location() *time.Location {
	if g.location != nil && g.location.String() == g.Timezone {
		return g.location
	}

	if g.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// Default returns the configurations used when no file is given.
func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{Driver: "sqlite", File: "rewards.db"},
		Redis:    RedisConfigs{Addr: "localhost:6379"},
		Kafka:    KafkaConfigs{ClientID: "rewards-engine"},
		Metrics:  ServerConfigs{Host: "0.0.0.0", Port: "9090"},
		Gamification: GamificationConfigs{
			Timezone:            "UTC",
			MaxRetries:          5,
			LevelXPStep:         100,
			LeaderboardCacheTTL: time.Minute,
			LeaderboardCron:     "*/5 * * * *",
			RewardTopic:         "gamification.rewards",
			location:            time.UTC,
		},
	}
}
