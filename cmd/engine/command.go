package main

import "github.com/urfave/cli/v2"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "path of the toml configuration file",
	EnvVars: []string{"CONFIG_FILE"},
}

func (s *srv) loadApp() *cli.App {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "rewards-engine"
	app.Usage = "Gamification progress and rewards engine"
	app.Flags = []cli.Flag{configFlag}
	app.Before = s.before
	app.After = s.after
	app.Commands = []*cli.Command{
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database",
			Category:    "Database",
			Description: `Applies all migrations which have not been applied yet.`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "only apply this version",
				},
			},
		},
		{
			Action:      s.startProcess,
			Name:        "process",
			Usage:       "Process user actions",
			ArgsUsage:   "[key=value metadata...]",
			Category:    "Engine",
			Description: `Processes one action given by flags, or a batch of actions read from a json file.`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user",
					Usage:    "id of the acting user",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "action",
					Usage: "action type, e.g. event_check_in",
				},
				&cli.StringFlag{
					Name:  "file",
					Usage: "json file containing a list of actions",
				},
			},
		},
		{
			Action:      s.startJoin,
			Name:        "join",
			Usage:       "Join a challenge",
			Category:    "Engine",
			Description: `Joins the user to a currently active challenge.`,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "user", Required: true},
				&cli.StringFlag{Name: "challenge", Required: true},
			},
		},
		{
			Action:      s.startClaim,
			Name:        "claim",
			Usage:       "Claim rewards of a completed challenge",
			Category:    "Engine",
			Description: `Grants the rewards of a completed challenge once.`,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "user", Required: true},
				&cli.StringFlag{Name: "challenge", Required: true},
			},
		},
		{
			Action:      s.startLeaderboard,
			Name:        "leaderboard",
			Usage:       "Print the leaderboard of a challenge",
			Category:    "Engine",
			Description: `Prints participants of a challenge ranked by their progress.`,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "challenge", Required: true},
			},
		},
		{
			Action:      s.startProfile,
			Name:        "profile",
			Usage:       "Print the rewards profile of a user",
			Category:    "Engine",
			Description: `Prints xp, streak, badges, badge progress and challenges of a user.`,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "user", Required: true},
			},
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Refreshes cached leaderboards periodically and serves prometheus metrics.`,
		},
	}

	return app
}
