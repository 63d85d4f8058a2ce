package cli

import (
	"github.com/urfave/cli/v2"
)

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}} [options]

Settings are read from the env file, then the environment, then flags.

Options:
   {{range .VisibleFlags}}{{.}}
   {{end}}`

func NewApp(version string, action cli.ActionFunc) *cli.App {
	cli.AppHelpTemplate = helpTemplate

	return &cli.App{
		Name:    "commitmonth",
		Usage:   "Report a user's commits across an organization's branches for the current month",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Env file to load settings from",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "GitHub personal access token (GITHUB_TOKEN)",
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Commit author to report on (USERNAME)",
			},
			&cli.StringFlag{
				Name:    "org",
				Aliases: []string{"o"},
				Usage:   "Organization to scan (ORG_NAME)",
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "GitHub API base URL (GITHUB_API_URL)",
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"d"},
				Usage:   "Directory for the CSV report (OUTPUT_DIR)",
			},
			&cli.IntFlag{
				Name:  "recent-days",
				Usage: "Skip repositories not updated within this many days (RECENT_DAYS)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Repositories scanned concurrently (WORKERS)",
			},
			&cli.StringFlag{
				Name:  "branch-errors",
				Usage: "fatal or skip when listing a repository's branches fails (BRANCH_ERRORS)",
			},
			&cli.StringFlag{
				Name:  "commit-errors",
				Usage: "fatal or skip when fetching a branch's commits fails (COMMIT_ERRORS)",
			},
			&cli.IntFlag{
				Name:  "max-commit-pages",
				Usage: "Commit pages read per branch, 0 for all (MAX_COMMIT_PAGES)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (LOG_LEVEL)",
			},
			&cli.StringFlag{
				Name:  "database-url",
				Usage: "Postgres DSN to archive the report in (DATABASE_URL)",
			},
			&cli.BoolFlag{
				Name:    "progress",
				Aliases: []string{"p"},
				Usage:   "Show a progress bar on stderr",
			},
			&cli.BoolFlag{
				Name:  "skip-token-check",
				Usage: "Do not validate the token before scanning",
			},
		},
		Action: action,
		Authors: []*cli.Author{
			{Name: "gnomegl"},
		},
	}
}
