package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "raffle-api",
		Usage:  "Raffle storefront and admin API",
		Action: startServe,
		Commands: []*cli.Command{
			{
				Name:        "serve",
				Usage:       "Start the HTTP API",
				Action:      startServe,
				Description: `Runs migrations, makes sure an admin exists and serves the REST API.`,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations and exit",
				Action: startMigrate,
			},
			{
				Name:   "bootstrap-admin",
				Usage:  "Create the configured admin account if no admin exists",
				Action: startBootstrapAdmin,
			},
			{
				Name:   "export",
				Usage:  "Write the transaction ledger to an xlsx file",
				Action: startExport,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "destination `FILE` (default transactions.xlsx or tickets.xlsx)",
					},
					&cli.BoolFlag{
						Name:  "tickets",
						Usage: "export tickets instead of transactions",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
