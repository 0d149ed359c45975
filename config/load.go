package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads the optional toml file on top of Default, then applies
// environment overrides. A .env file in the working directory is loaded
// first if present.
func Load(path string) (Configs, error) {
	//nolint:errcheck
	godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	overrideString(&cfg.Env, "ENV")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.Database.Driver, "DATABASE_DRIVER")
	overrideString(&cfg.Database.Host, "DATABASE_HOST")
	overrideString(&cfg.Database.Port, "DATABASE_PORT")
	overrideString(&cfg.Database.Database, "DATABASE_NAME")
	overrideString(&cfg.Database.User, "DATABASE_USER")
	overrideString(&cfg.Database.Password, "DATABASE_PASSWORD")
	overrideString(&cfg.Database.File, "DATABASE_FILE")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDRESS")
	overrideString(&cfg.Kafka.Addr, "KAFKA_ADDRESS")
	overrideString(&cfg.Metrics.Port, "METRICS_PORT")
	overrideString(&cfg.Gamification.Timezone, "GAMIFICATION_TIMEZONE")
	overrideString(&cfg.Gamification.CatalogFile, "GAMIFICATION_CATALOG_FILE")
	overrideString(&cfg.Gamification.LeaderboardCron, "GAMIFICATION_LEADERBOARD_CRON")
	overrideString(&cfg.Gamification.RewardTopic, "GAMIFICATION_REWARD_TOPIC")
	if err := overrideInt(&cfg.Gamification.MaxRetries, "GAMIFICATION_MAX_RETRIES"); err != nil {
		return Configs{}, err
	}
	if err := overrideInt(&cfg.Gamification.LevelXPStep, "GAMIFICATION_LEVEL_XP_STEP"); err != nil {
		return Configs{}, err
	}
	if err := overrideDuration(&cfg.Gamification.LeaderboardCacheTTL, "GAMIFICATION_LEADERBOARD_CACHE_TTL"); err != nil {
		return Configs{}, err
	}
	if err := overrideInt64(&cfg.Gamification.NodeID, "GAMIFICATION_NODE_ID"); err != nil {
		return Configs{}, err
	}

	loc, err := time.LoadLocation(cfg.Gamification.Timezone)
	if err != nil {
		return Configs{}, fmt.Errorf("invalid timezone %q: %w", cfg.Gamification.Timezone, err)
	}
	cfg.Gamification.location = loc

	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func overrideInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}

	*dst = n
	return nil
}

func overrideInt64(dst *int64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}

	*dst = n
	return nil
}

func overrideDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}

	*dst = d
	return nil
}
