// Command respcache-warm fires the fixed warmup fetches against the
// invoicing API so server-side and intermediary caches are primed before
// the first dashboard visit. Failures are logged and discarded.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/finvo/respcache/cache"
	"github.com/finvo/respcache/fetch"
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
		Name:  "respcache-warm",
		Usage: "warm the invoicing API response caches",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Value: cfg.WarmBaseURL,
				Usage: "invoicing API base URL",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "per-request timeout",
			},
			&cli.StringFlag{
				Name:  "log",
				Value: cfg.LogLevel,
				Usage: "log level",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger.Init(cmd.String("log"))

	base := cmd.String("url")
	if base == "" {
		return fmt.Errorf("no base URL: set --url or RESPCACHE_WARM_URL")
	}

	// The store is a scratch sink: it dies with the command. The warmup
	// effect is the requests themselves priming the server-side and
	// intermediary caches.
	client := fetch.NewClient(cache.NewMemory(), fetch.WithHTTPClient(&http.Client{
		Timeout: cmd.Duration("timeout"),
	}))
	endpoints := fetch.DefaultEndpoints(base)

	log.WithField("base", base).WithField("endpoints", len(endpoints)).Info("warming caches")
	fetch.NewPreloader(client, endpoints).Warm(ctx)
	log.Info("done")
	return nil
}
