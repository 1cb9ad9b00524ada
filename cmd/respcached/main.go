// Command respcached runs the shared response cache daemon: a bolt-backed
// KV served over a Unix domain socket for the invoicing services on this
// host.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/finvo/respcache/cache"
	"github.com/finvo/respcache/internal/config"
	"github.com/finvo/respcache/internal/logger"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cmd := &cli.Command{
		Name:  "respcached",
		Usage: "shared response cache daemon",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "socket",
				Value: cfg.SocketPath,
				Usage: "unix socket to listen on",
			},
			&cli.StringFlag{
				Name:  "db",
				Value: cfg.DBPath,
				Usage: "bolt database file",
			},
			&cli.DurationFlag{
				Name:  "default-ttl",
				Value: cfg.DefaultTTL,
				Usage: "TTL applied to puts that carry none",
			},
			&cli.StringFlag{
				Name:  "log",
				Value: cfg.LogLevel,
				Usage: "log level",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger.Init(cmd.String("log"))

	store, err := cache.OpenBolt(cmd.String("db"), cache.BoltOptions{
		DefaultTTL: cmd.Duration("default-ttl"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	sock := cmd.String("socket")
	if err := os.MkdirAll(filepath.Dir(sock), 0o755); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}
	_ = os.Remove(sock) // stale socket from a previous run

	l, err := net.Listen("unix", sock)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	_ = os.Chmod(sock, 0o600)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = l.Close()
	}()

	log.WithField("socket", sock).WithField("db", cmd.String("db")).Info("cache daemon listening")
	return cache.Serve(l, store)
}
