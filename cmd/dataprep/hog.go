package main

import (
	"io"
	"time"

	"github.com/YuminosukeSato/dataprep/dataset"
	"github.com/YuminosukeSato/dataprep/hog"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/YuminosukeSato/dataprep/preprocessing"
	"github.com/urfave/cli/v2"
)

func hogCommand() *cli.Command {
	return &cli.Command{
		Name:      "hog",
		Usage:     "replace square image rows with HOG descriptors and one-hot encode labels",
		UsageText: "dataprep hog -i FILE -c COLUMN -o FILE [command options]",
		Action:    hogAction,
		Flags: []cli.Flag{
			inputFlag(),
			classColumnFlag(),
			outputFlag(true),
			&cli.IntFlag{
				Name:    "orientations",
				Aliases: []string{"b"},
				Value:   8,
				Usage:   "number of orientation bins",
			},
			&cli.IntFlag{
				Name:  "pixels-per-cell",
				Value: 7,
				Usage: "cell side in pixels",
			},
			&cli.IntFlag{
				Name:  "cells-per-block",
				Value: 2,
				Usage: "block side in cells",
			},
			&cli.BoolFlag{
				Name:  "no-sqrt",
				Usage: "skip square root contrast normalisation",
			},
			progressFlag(),
		},
	}
}

func hogAction(c *cli.Context) error {
	start := time.Now()
	logger := log.GetLoggerWithName("hog").With(log.CommandKey, "hog")

	ds, err := loadInput(c)
	if err != nil {
		return err
	}
	if err := requireFeatures(ds); err != nil {
		return err
	}

	extractor := hog.NewExtractor(
		hog.WithOrientations(c.Int("orientations")),
		hog.WithPixelsPerCell(c.Int("pixels-per-cell")),
		hog.WithCellsPerBlock(c.Int("cells-per-block")),
		hog.WithTransformSqrt(!c.Bool("no-sqrt")),
	)
	H, err := extractor.ExtractAll(ds.Features())
	if err != nil {
		return err
	}

	labels := ds.Labels()
	enc := preprocessing.NewOneHotEncoder()
	if err := enc.Fit(labels); err != nil {
		return err
	}
	if err := dataset.WriteFile(c.String("output-file"), func(w io.Writer) error {
		return dataset.WriteEncoded(w, H, labels, enc, nil)
	}); err != nil {
		return err
	}

	_, width := H.Dims()
	logger.Info("Descriptors extracted",
		log.OperationKey, log.OperationDescriptor,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, width,
		log.ClassesKey, enc.NClasses(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}
