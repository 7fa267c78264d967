package main

import (
	"github.com/scott-cotton/cli"
)

const usageText = `fibclient drives a fibdrv device the way its user-space client does.

Usage:
  fibclient read [-from 0] [-to 100]    Print F(i) for each offset
  fibclient plot [-n 100]               Print "i read_ns write_ns" timing lines
  fibclient seek <offset> <whence>      Print the clamped cursor (whence: set, cur, end)

Every command accepts -config <file> (YAML or JSON device options) and -v
for debug logging.`

// MainCommand returns the root command.
func MainCommand() *cli.Command {
	return cli.NewCommand("fibclient").
		WithSynopsis("fibclient command [opts]").
		WithDescription(usageText).
		WithSubs(
			ReadCommand(),
			PlotCommand(),
			SeekCommand(),
		)
}
