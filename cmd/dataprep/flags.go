package main

import (
	"github.com/YuminosukeSato/dataprep/dataset"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/YuminosukeSato/dataprep/split"
	"github.com/urfave/cli/v2"
)

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "input-file",
		Aliases:  []string{"i"},
		Usage:    "delimited input file",
		Required: true,
	}
}

func classColumnFlag() cli.Flag {
	return &cli.IntFlag{
		Name:     "class-column",
		Aliases:  []string{"c"},
		Usage:    "zero-based index of the label column",
		Required: true,
	}
}

func outputFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "output-file",
		Aliases:  []string{"o"},
		Usage:    "output file",
		Required: required,
	}
}

func proportionFlag(required bool) cli.Flag {
	return &cli.Float64Flag{
		Name:     "training-proportion",
		Aliases:  []string{"t"},
		Usage:    "share of every class written to the training file, in [0, 1]",
		Required: required,
	}
}

func seedFlag() cli.Flag {
	return &cli.Uint64Flag{
		Name:  "seed",
		Usage: "shuffle seed for a reproducible split (random when unset)",
	}
}

func progressFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "progress",
		Usage: "show a progress bar while loading",
	}
}

// loadInput reads the file named by --input-file using --class-column.
func loadInput(c *cli.Context) (*dataset.Dataset, error) {
	path := c.String("input-file")
	var opts []dataset.LoadOption
	if c.Bool("progress") {
		opts = append(opts, dataset.WithProgress(c.App.ErrWriter, -1, "loading "+path))
	}
	return dataset.LoadFile(path, c.Int("class-column"), opts...)
}

// splitOptions builds split options from --seed.
func splitOptions(c *cli.Context) []split.Option {
	if c.IsSet("seed") {
		return []split.Option{split.WithSeed(c.Uint64("seed"))}
	}
	return nil
}

func requireFeatures(ds *dataset.Dataset) error {
	if ds.NumFeatures() == 0 {
		return errors.NewValidationError("input-file", "no feature columns besides the label", ds.NumFeatures())
	}
	return nil
}
