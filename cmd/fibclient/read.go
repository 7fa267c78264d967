package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jhan1998/fibdrv"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type readConfig struct {
	*cli.Command
	From    int    `cli:"name=from desc='first offset'"`
	To      int    `cli:"name=to desc='last offset (default 100)'"`
	Config  string `cli:"name=config desc='device options file'"`
	Verbose bool   `cli:"name=v desc='debug logging'"`
}

// ReadCommand returns the read subcommand.
func ReadCommand() *cli.Command {
	cfg := &readConfig{To: 100}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "read").
		WithSynopsis("read [-from 0] [-to 100] - print the sequence").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *readConfig) run(cc *cli.Context, args []string) error {
	if _, err := cfg.Parse(cc, args); err != nil {
		return err
	}
	if cfg.From < 0 || cfg.To < cfg.From {
		return fmt.Errorf("%w: need 0 <= from <= to, got %d..%d", cli.ErrUsage, cfg.From, cfg.To)
	}

	sess, done, err := openSession(cfg.Config, cfg.Verbose)
	if err != nil {
		return err
	}
	defer done()

	value := color.New(color.FgCyan)
	if useColor(cc.Out) {
		value.EnableColor()
	} else {
		value.DisableColor()
	}

	return printSequence(cc.Out, sess, cfg.From, cfg.To, value)
}

// printSequence writes one line per offset in from..to.
func printSequence(w io.Writer, sess *fibdrv.Session, from, to int, value *color.Color) error {
	buf := make([]byte, 1024)
	for i := from; i <= to; i++ {
		pos, err := sess.Seek(int64(i), io.SeekStart)
		if err != nil {
			return err
		}
		n, err := sess.Read(buf)
		if err != nil {
			return fmt.Errorf("read at offset %d: %w", pos, err)
		}
		digits := bytes.TrimRight(buf[:n], "\x00")
		fmt.Fprintf(w, "Reading from fibdrv at offset %d, returned the sequence %s.\n", pos, value.Sprint(string(digits)))
	}
	return nil
}

func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
