package main

import (
	"github.com/questx-lab/rewards/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if version := cctx.String("version"); version != "" {
		return migration.Run(s.ctx, version)
	}

	return migration.Migrate(s.ctx)
}
