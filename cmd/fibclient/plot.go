package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jhan1998/fibdrv"
	"github.com/scott-cotton/cli"
)

type plotConfig struct {
	*cli.Command
	N       int    `cli:"name=n desc='last offset to time (default 100)'"`
	Config  string `cli:"name=config desc='device options file'"`
	Verbose bool   `cli:"name=v desc='debug logging'"`
}

// PlotCommand returns the plot subcommand.
func PlotCommand() *cli.Command {
	cfg := &plotConfig{N: 100}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "plot").
		WithSynopsis("plot [-n 100] - time read and write per offset").
		WithDescription("prints one line per offset: offset, read time in ns, write time in ns").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *plotConfig) run(cc *cli.Context, args []string) error {
	if _, err := cfg.Parse(cc, args); err != nil {
		return err
	}
	if cfg.N < 0 {
		return fmt.Errorf("%w: -n must not be negative", cli.ErrUsage)
	}

	sess, done, err := openSession(cfg.Config, cfg.Verbose)
	if err != nil {
		return err
	}
	defer done()

	return plotTimes(cc.Out, sess, cfg.N)
}

// plotTimes writes "offset read_ns write_ns" for every offset in 0..n.
func plotTimes(w io.Writer, sess *fibdrv.Session, n int) error {
	buf := make([]byte, 1024)
	writeBuf := []byte("testing writing")
	for i := 0; i <= n; i++ {
		if _, err := sess.Seek(int64(i), io.SeekStart); err != nil {
			return err
		}

		start := time.Now()
		if _, err := sess.Read(buf); err != nil {
			return fmt.Errorf("read at offset %d: %w", i, err)
		}
		readTime := time.Since(start)

		start = time.Now()
		if _, err := sess.Write(writeBuf[:2]); err != nil {
			return fmt.Errorf("write at offset %d: %w", i, err)
		}
		writeTime := time.Since(start)

		fmt.Fprintf(w, "%d %d %d\n", i, readTime.Nanoseconds(), writeTime.Nanoseconds())
	}
	return nil
}
