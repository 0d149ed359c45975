package migration

import (
	"context"
	"testing"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/logger"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newContext(t *testing.T) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ctx := xcontext.WithDB(context.Background(), db)
	return xcontext.WithLogger(ctx, logger.NewNopLogger())
}

func TestMigrate(t *testing.T) {
	ctx := newContext(t)
	require.NoError(t, Migrate(ctx))

	var applied []entity.Migration
	require.NoError(t, xcontext.DB(ctx).Order("version").Find(&applied).Error)
	require.Len(t, applied, len(Migrators))
	require.Equal(t, "0000", applied[0].Version)

	migrator := xcontext.DB(ctx).Migrator()
	require.True(t, migrator.HasTable(&entity.XPLedger{}))
	require.True(t, migrator.HasIndex(&ActionLog0001{}, actionLogUserCreatedIndex))

	// Applying again is a no-op.
	require.NoError(t, Migrate(ctx))
}

func TestRun_UnknownVersion(t *testing.T) {
	require.Error(t, Run(newContext(t), "9999"))
}
