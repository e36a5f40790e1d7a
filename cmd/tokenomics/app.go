package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/amount"
	"github.com/feral-file/ff-tokenomics/internal/config"
	"github.com/feral-file/ff-tokenomics/internal/distribution"
	"github.com/feral-file/ff-tokenomics/internal/domain"
	"github.com/feral-file/ff-tokenomics/internal/governance"
	"github.com/feral-file/ff-tokenomics/internal/logger"
	"github.com/feral-file/ff-tokenomics/internal/vesting"
)

const (
	sourceGrants      = "grants"
	sourceAllocations = "allocations"
)

// runner carries the state shared by every command of one invocation
type runner struct {
	out   io.Writer
	cfg   *config.CLIConfig
	clock adapter.Clock
}

func newApp(out io.Writer) *cli.App {
	r := &runner{out: out, clock: adapter.NewClock()}

	app := cli.NewApp()
	app.Name = "tokenomics"
	app.Usage = "Inspect a token distribution offline"
	app.Version = "0.1.0"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to configuration file",
		},
		cli.StringFlag{
			Name:  "env",
			Usage: "Path to environment files",
			Value: "config/",
		},
		cli.StringFlag{
			Name:  "distribution",
			Usage: "Path to the distribution file, overrides token.distribution_path",
		},
		cli.StringFlag{
			Name:  "now",
			Usage: "Reference time as RFC3339, defaults to the current time",
		},
	}
	app.Before = r.before
	app.Commands = []cli.Command{
		{
			Name:      "schedule",
			Usage:     "Print the monthly release schedule of an allocation",
			ArgsUsage: "<category>",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "months",
					Usage: "Minimum number of months to list past the TGE",
				},
			},
			Action: r.schedule,
		},
		{
			Name:   "stats",
			Usage:  "Print circulating and locked supply at the reference time",
			Action: r.stats,
		},
		{
			Name:  "upcoming",
			Usage: "Print the releases of the coming months grouped by calendar month",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "months",
					Usage: "Number of months to look ahead",
					Value: domain.DefaultUpcomingLookaheadMonths,
				},
				cli.StringFlag{
					Name:  "source",
					Usage: "Release source (grants|allocations)",
					Value: sourceGrants,
				},
			},
			Action: r.upcoming,
		},
		{
			Name:  "power",
			Usage: "Print the voting power of a balance given in whole tokens",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "balance",
					Usage: "Balance in whole tokens",
				},
				cli.StringFlag{
					Name:  "strategy",
					Usage: "Voting strategy (simple|quadratic|weighted)",
					Value: string(domain.VotingStrategySimple),
				},
			},
			Action: r.power,
		},
	}

	return app
}

func (r *runner) before(c *cli.Context) error {
	cfg, err := config.LoadCLIConfig(c.GlobalString("config"), c.GlobalString("env"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if path := c.GlobalString("distribution"); path != "" {
		cfg.Token.DistributionPath = path
	}
	r.cfg = cfg

	return logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "tokenomics-cli",
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
}

func (r *runner) now(c *cli.Context) (time.Time, error) {
	raw := c.GlobalString("now")
	if raw == "" {
		return r.clock.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func (r *runner) load() (*distribution.Document, error) {
	if r.cfg.Token.DistributionPath == "" {
		return nil, fmt.Errorf("no distribution file configured")
	}

	doc, err := distribution.NewLoader(adapter.NewFileSystem(), adapter.NewJSON()).Load(r.cfg.Token.DistributionPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded distribution",
		zap.String("path", r.cfg.Token.DistributionPath),
		zap.Int("allocations", len(doc.Distribution.Allocations)),
		zap.Int("grants", len(doc.Grants)),
	)
	return doc, nil
}

func (r *runner) print(v interface{}) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *runner) schedule(c *cli.Context) error {
	category := c.Args().First()
	if category == "" {
		return fmt.Errorf("category is required")
	}

	doc, err := r.load()
	if err != nil {
		return err
	}

	alloc, ok := doc.Distribution.Allocation(category)
	if !ok {
		return fmt.Errorf("%w: allocation %q", domain.ErrNotFound, category)
	}

	schedule, err := vesting.ComputeMonthlySchedule(alloc, c.Uint64("months"), doc.Distribution.TGE)
	if err != nil {
		return err
	}
	return r.print(schedule)
}

func (r *runner) stats(c *cli.Context) error {
	now, err := r.now(c)
	if err != nil {
		return err
	}

	doc, err := r.load()
	if err != nil {
		return err
	}

	stats, err := distribution.ComputeDistributionStats(doc.Distribution, now)
	if err != nil {
		return err
	}
	return r.print(stats)
}

func (r *runner) upcoming(c *cli.Context) error {
	now, err := r.now(c)
	if err != nil {
		return err
	}

	doc, err := r.load()
	if err != nil {
		return err
	}

	months := c.Int("months")
	var releases []distribution.UpcomingRelease
	switch source := c.String("source"); source {
	case sourceGrants:
		releases, err = distribution.ComputeUpcomingReleases(doc.Grants, now, months)
	case sourceAllocations:
		releases, err = distribution.ComputeUpcomingAllocationReleases(doc.Distribution, now, months)
	default:
		return fmt.Errorf("%w: unknown source %q", domain.ErrValidation, source)
	}
	if err != nil {
		return err
	}

	if releases == nil {
		releases = []distribution.UpcomingRelease{}
	}
	return r.print(releases)
}

func (r *runner) power(c *cli.Context) error {
	strategy, err := domain.ParseVotingStrategy(c.String("strategy"))
	if err != nil {
		return err
	}

	decimals := r.cfg.Token.Decimals
	balance, err := amount.ParseWhole(c.String("balance"), decimals)
	if err != nil {
		return fmt.Errorf("invalid --balance: %w", err)
	}

	power, err := governance.ComputeVotingPower(balance, strategy, decimals)
	if err != nil {
		return err
	}

	return r.print(map[string]interface{}{
		"balance":  balance,
		"strategy": strategy,
		"power":    power,
	})
}
