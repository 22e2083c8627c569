package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/antoonpurnal/clangover/attack"
	"github.com/antoonpurnal/clangover/logger"
	"github.com/antoonpurnal/clangover/metrics"
	"github.com/antoonpurnal/clangover/report"
	"github.com/antoonpurnal/clangover/timer"
)

const (
	verboseFlag = "verbose"
	noLiveFlag  = "no-live"
	metricsFlag = "metrics"
	outputFlag  = "output"
)

func attackCommand() *cli.Command {
	flags := append(victimFlags(), attackParameterFlags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  verboseFlag,
			Usage: "Show the class means of the coefficient under attack",
		},
		&cli.BoolFlag{
			Name:  noLiveFlag,
			Usage: "Do not redraw the terminal, only print the final report",
		},
		&cli.StringFlag{
			Name:  metricsFlag,
			Usage: "Serve prometheus metrics on this address, e.g. localhost:9090",
		},
		&cli.StringFlag{
			Name:  outputFlag,
			Usage: "Write the results of the run to this YAML file",
		},
	)

	return &cli.Command{
		Name:      "attack",
		Usage:     "Recover the secret coefficients of an oracle",
		ArgsUsage: " ",
		Flags:     flags,
		Action:    runAttack,
	}
}

func runAttack(c *cli.Context) (err error) {

	out, isTerminal := report.Terminal()
	live := isTerminal && !c.Bool(noLiveFlag)

	// the live report owns the terminal
	log := logger.CreateLoggerFromContext(c, live)

	victim, clock, err := newVictim(c)
	if err != nil {
		return err
	}

	params, err := attackParameters(c, victim.Parameters().K())
	if err != nil {
		return err
	}

	truth, err := victim.SecretCoefficients()
	if err != nil {
		return err
	}

	runID := report.NewRunID()

	log.Info().
		Str("run", runID).
		Str("victim", victim.Name()).
		Str("scheme", victim.Parameters().Name()).
		Str("key", victim.Fingerprint()).
		Str("timer", timer.Describe().String()).
		Msg("Starting clangover")

	var observers attack.Observers

	renderer := report.NewLive(out, params, truth)
	renderer.Color = isTerminal
	renderer.Clear = live
	renderer.Verbose = c.Bool(verboseFlag)
	if live {
		observers = append(observers, renderer)
	}

	if addr := c.String(metricsFlag); addr != "" {
		registry := prometheus.NewRegistry()
		collector, err := metrics.NewCollector(registry, truth)
		if err != nil {
			return err
		}
		observers = append(observers, collector)

		l, err := metrics.CreateMetricsListener(addr)
		if err != nil {
			return fmt.Errorf("cannot listen on %s: %w", addr, err)
		}
		shutdownC := make(chan struct{})
		defer close(shutdownC)
		go func() {
			_ = metrics.ServeMetrics(l, registry, shutdownC, log)
		}()
	}

	prng, err := newPRNG(c, "classes")
	if err != nil {
		return err
	}

	engine, err := attack.NewEngine(params, victim, clock,
		attack.WithPRNG(prng),
		attack.WithObserver(observers),
		attack.WithLogger(log),
	)
	if err != nil {
		return err
	}

	results, runErr := engine.Run()

	for _, res := range results.Coefficients {
		renderer.Finalized(res)
	}
	renderer.Final()

	summary, err := report.Summarize(results, truth)
	if err != nil {
		return err
	}
	if _, err = summary.WriteTo(out); err != nil {
		return err
	}

	if path := c.String(outputFlag); path != "" {
		doc, err := report.NewDocument(runID, victim.Name(), victim.Parameters().Name(), params, results, truth, runErr)
		if err != nil {
			return err
		}
		doc.Fingerprint = victim.Fingerprint()
		if err = writeDocument(path, doc); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("Results written")
	}

	return runErr
}

// writeDocument writes doc to the file at path and reports the error of the
// close, which is where a short write on a full disk shows up.
func writeDocument(path string, doc report.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = report.WriteYAML(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
