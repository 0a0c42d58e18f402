// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func idFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "id",
		Usage:    "Item ID",
		Required: true,
	}
}

// setupCommand handles database setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, then initialize the database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// itemsCommand handles inventory operations
func itemsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "items",
		Aliases: []string{"item", "i"},
		Usage:   "Inventory item operations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List every item ordered by name",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ItemsList,
			},
			{
				Name:  "show",
				Usage: "Show one item",
				Flags: []cli.Flag{
					configFlag(),
					idFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ItemsShow,
			},
			{
				Name:  "add",
				Usage: "Add a new item",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Item name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "price",
						Aliases:  []string{"p"},
						Usage:    "Unit price",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "quantity",
						Aliases:  []string{"q"},
						Usage:    "Quantity in stock",
						Required: true,
					},
				},
				Action: r.ItemsAdd,
			},
			{
				Name:  "edit",
				Usage: "Change an existing item; omitted fields keep their value",
				Flags: []cli.Flag{
					configFlag(),
					idFlag(),
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "New item name",
					},
					&cli.StringFlag{
						Name:    "price",
						Aliases: []string{"p"},
						Usage:   "New unit price",
					},
					&cli.StringFlag{
						Name:    "quantity",
						Aliases: []string{"q"},
						Usage:   "New quantity in stock",
					},
				},
				Action: r.ItemsEdit,
			},
			{
				Name:   "sell",
				Usage:  "Sell one unit of an item",
				Flags:  []cli.Flag{configFlag(), idFlag()},
				Action: r.ItemsSell,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete an item",
				Flags:   []cli.Flag{configFlag(), idFlag()},
				Action:  r.ItemsDelete,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive inventory management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the inventory over HTTP until interrupted",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Address to bind (overrides server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}
