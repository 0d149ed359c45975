package migration

import (
	"context"
	"errors"
	"time"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var Migrators = map[string]func(context.Context) error{
	"0000": migrate0000,
	"0001": migrate0001,
}

// Versions returns all known versions in the order they must be applied.
func Versions() []string {
	versions := maps.Keys(Migrators)
	slices.Sort(versions)
	return versions
}

// Migrate applies every version which has not been recorded in the migrations
// table yet.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	for _, version := range Versions() {
		applied, err := isApplied(ctx, version)
		if err != nil {
			return err
		}

		if applied {
			continue
		}

		if err := Run(ctx, version); err != nil {
			return err
		}
	}

	return nil
}

// Run applies a single version and records it.
func Run(ctx context.Context, version string) error {
	migrator, ok := Migrators[version]
	if !ok {
		return errors.New("not found migration version " + version)
	}

	if err := migrator(ctx); err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Applied migration %s", version)
	return xcontext.DB(ctx).Save(&entity.Migration{Version: version, CreatedAt: time.Now()}).Error
}

func isApplied(ctx context.Context, version string) (bool, error) {
	var m entity.Migration
	err := xcontext.DB(ctx).Take(&m, "version=?", version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
