package migration

import (
	"context"
)

// migrate0000 creates the database with the latest version.
func migrate0000(ctx context.Context) error {
	return AutoMigrate(ctx)
}
