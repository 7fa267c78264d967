package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/scott-cotton/cli"
)

type seekConfig struct {
	*cli.Command
	Config  string `cli:"name=config desc='device options file'"`
	Verbose bool   `cli:"name=v desc='debug logging'"`
}

// SeekCommand returns the seek subcommand.
func SeekCommand() *cli.Command {
	cfg := &seekConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "seek").
		WithSynopsis("seek <offset> <set|cur|end> - print the clamped cursor").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *seekConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: seek requires an offset and a whence", cli.ErrUsage)
	}
	offset, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid offset %q", cli.ErrUsage, args[0])
	}
	whence, err := parseWhence(args[1])
	if err != nil {
		return err
	}

	sess, done, err := openSession(cfg.Config, cfg.Verbose)
	if err != nil {
		return err
	}
	defer done()

	pos, err := sess.Seek(offset, whence)
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, pos)
	return nil
}

func parseWhence(s string) (int, error) {
	switch s {
	case "set", "start", "0":
		return io.SeekStart, nil
	case "cur", "current", "1":
		return io.SeekCurrent, nil
	case "end", "2":
		return io.SeekEnd, nil
	}
	return 0, fmt.Errorf("%w: invalid whence %q (want set, cur or end)", cli.ErrUsage, s)
}
