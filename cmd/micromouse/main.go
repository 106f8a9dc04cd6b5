// Command micromouse drives a simulated mouse through a maze.
//
// Usage:
//
//	micromouse run --layout wilson --finder left-wall
//	micromouse run --finder lua --script strategies/explorer.lua --tui
//	micromouse render --layout serpentine
//	micromouse history --limit 10
package main

import (
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Mshel/micromouse/internal/config"
	"github.com/Mshel/micromouse/internal/finder"
	"github.com/Mshel/micromouse/internal/layouts"
)

// CLI defines the command-line interface.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Run a path finder through a maze."`
	Render  RenderCmd  `cmd:"" help:"Print a layout."`
	Layouts LayoutsCmd `cmd:"" help:"List the built-in layouts."`
	History HistoryCmd `cmd:"" help:"Show recorded runs."`

	LogLevel string `help:"Log level (debug, info, warn, error)." default:"${log_level}"`
	DB       string `name:"db" help:"Run history database." default:"${db_path}"`
}

func main() {
	cfg := config.Load()

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("micromouse"),
		kong.Description("Micromouse maze simulator"),
		kong.UsageOnError(),
		kong.Vars{
			"layout":    cfg.Layout,
			"finder":    cfg.Finder,
			"finders":   finderList(),
			"script":    cfg.Script,
			"info_len":  strconv.Itoa(cfg.InfoLen),
			"tick":      cfg.TickInterval.String(),
			"db_path":   cfg.DBPath,
			"log_level": cfg.LogLevel,
		},
		kong.Bind(layouts.NewRegistry()),
	)

	cfg.LogLevel = cli.LogLevel
	cfg.DBPath = cli.DB
	cfg.ApplyLogLevel()

	err := ctx.Run(&cli, &cfg)
	ctx.FatalIfErrorf(err)
}

func finderList() string {
	return strings.Join(finder.Names(), ", ")
}
