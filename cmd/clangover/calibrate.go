package main

import (
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/antoonpurnal/clangover/attack"
	"github.com/antoonpurnal/clangover/logger"
	"github.com/antoonpurnal/clangover/timer"
)

const samplesFlag = "samples"

func calibrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "calibrate",
		Usage:     "Measure the timing noise of an oracle and suggest an outlier threshold",
		ArgsUsage: " ",
		Flags: append(victimFlags(), &cli.IntFlag{
			Name:  samplesFlag,
			Value: 10000,
			Usage: "Number of measurements per statistic",
		}),
		Action: runCalibrate,
	}
}

func runCalibrate(c *cli.Context) error {

	log := logger.CreateLoggerFromContext(c, logger.EnableTerminalLog)

	victim, clock, err := newVictim(c)
	if err != nil {
		return err
	}

	log.Info().
		Str("victim", victim.Name()).
		Int("samples", c.Int(samplesFlag)).
		Msg("Calibrating")

	cal, err := attack.Calibrate(victim, clock, c.Int(samplesFlag))
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(c.App.Writer)
	enc.SetIndent(2)
	if err = enc.Encode(struct {
		Timer       timer.Info         `yaml:"timer"`
		Victim      string             `yaml:"victim"`
		Calibration attack.Calibration `yaml:"calibration"`
	}{timer.Describe(), victim.Name(), cal}); err != nil {
		return err
	}
	return enc.Close()
}
