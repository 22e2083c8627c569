// Command clangover recovers the secret key of a Kyber decapsulation oracle from
// the timing of chosen ciphertexts.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/antoonpurnal/clangover/logger"
	"github.com/antoonpurnal/clangover/timer"
)

var (
	Version   = "DEV"
	BuildTime = "unknown"
)

func main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"v", "V"},
		Usage:   "Print the version",
	}

	app := &cli.App{}
	app.Name = "clangover"
	app.Usage = "Timing attack on the message expansion of Kyber decapsulation"
	app.UsageText = "clangover [global options] command [command options]"
	app.Version = fmt.Sprintf("%s (built %s)", Version, BuildTime)
	app.Description = `clangover sends chosen ciphertexts to a decapsulation oracle and times them.
	Each secret coefficient is recovered from which of seven ciphertexts decrypt to a
	message whose first bit is set, as told by a data-dependent branch in the
	re-encryption of the oracle.`
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    logger.LogLevelFlag,
			Value:   "info",
			Usage:   "Application logging level {trace, debug, info, warn, error, fatal}",
			EnvVars: []string{"CLANGOVER_LOGLEVEL"},
		},
		&cli.StringFlag{
			Name:    logger.LogFileFlag,
			Usage:   "Save application log to this file",
			EnvVars: []string{"CLANGOVER_LOGFILE"},
		},
		&cli.BoolFlag{
			Name:  logger.LogJSONFlag,
			Usage: "Log JSON lines on the console",
		},
	}
	app.Commands = commands()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		attackCommand(),
		calibrateCommand(),
		patternsCommand(),
		{
			Name:  "version",
			Usage: "Print the version and the cycle counter",
			Action: func(c *cli.Context) error {
				cli.ShowVersion(c)
				fmt.Fprintln(c.App.Writer, timer.Describe())
				return nil
			},
		},
	}
}
