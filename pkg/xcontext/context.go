package xcontext

import (
	"context"

	"github.com/questx-lab/rewards/config"
	"github.com/questx-lab/rewards/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	requestUserKey struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Configs{}
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger returns the logger stored in context. It never returns nil, a silent
// logger is returned if the context has no logger.
func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok || l == nil {
		return logger.NewNopLogger()
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current transaction if the context is inside one, otherwise
// returns the root database.
func DB(ctx context.Context) *gorm.DB {
	if tx := currentTx(ctx); tx != nil {
		return tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok || db == nil {
		return nil
	}

	return db.WithContext(ctx)
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, requestUserKey{}, userID)
}

func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(requestUserKey{}).(string)
	if !ok {
		return ""
	}

	return id
}
