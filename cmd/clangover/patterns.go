package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/antoonpurnal/clangover/attack"
)

const indexFlag = "index"

func patternsCommand() *cli.Command {
	return &cli.Command{
		Name:      "patterns",
		Usage:     "Print the decoding table of the attack classes, or decode the given patterns",
		ArgsUsage: "[pattern ...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  indexFlag,
				Usage: "Coefficient index the given patterns are decoded at",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return decodePatterns(c.App.Writer, attack.DefaultDecoder, c.Int(indexFlag), c.Args().Slice())
			}
			printPatterns(c.App.Writer, attack.DefaultDecoder)
			return nil
		},
	}
}

func printPatterns(w io.Writer, d *attack.Decoder) {
	lo, hi := d.Range()
	fmt.Fprintf(w, "coefficients in [%d, %d]\n\n", lo, hi)
	fmt.Fprintf(w, "%-16s %6s %6s\n", "pattern", "s[0]", "s[i>0]")
	for _, p := range d.Rows() {
		fmt.Fprintf(w, "%-16s %6s %6s\n", p, d.Decode(p, 0), d.Decode(p, 1))
	}
	fmt.Fprintln(w)
	for class := 0; class < attack.NbClasses; class++ {
		u, v := attack.Magnitudes(class)
		fmt.Fprintf(w, "%-9s u=%4d v=%4d\n", attack.ClassName(class), u, v)
	}
}

// decodePatterns prints the coefficient each of args decodes to at index.
func decodePatterns(w io.Writer, d *attack.Decoder, index int, args []string) error {
	for _, arg := range args {
		p, err := attack.ParsePattern(arg)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Fprintf(w, "%-16s %6s\n", p, d.Decode(p, index))
	}
	return nil
}
