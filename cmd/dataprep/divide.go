package main

import (
	"io"

	"github.com/YuminosukeSato/dataprep/dataset"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/YuminosukeSato/dataprep/split"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"
)

func divideCommand() *cli.Command {
	return &cli.Command{
		Name:      "divide",
		Usage:     "split labeled data into training and testing files by class",
		UsageText: "dataprep divide -i FILE -c COLUMN -o FILE -t PROPORTION [command options]",
		Action:    divideAction,
		Flags: []cli.Flag{
			inputFlag(),
			classColumnFlag(),
			outputFlag(true),
			proportionFlag(true),
			seedFlag(),
			progressFlag(),
		},
	}
}

func divideAction(c *cli.Context) error {
	logger := log.GetLoggerWithName("divide").With(log.CommandKey, "divide")
	if c.IsSet("seed") {
		logger = logger.With(log.RandomSeedKey, c.Uint64("seed"))
	}

	ds, err := loadInput(c)
	if err != nil {
		return err
	}
	labels := ds.Labels()
	p := c.Float64("training-proportion")

	res, err := split.Stratified(labels, p, splitOptions(c)...)
	if err != nil {
		return err
	}

	// a label-only file has no feature matrix to select from
	var X mat.Matrix
	if ds.NumFeatures() > 0 {
		X = ds.Features()
	}
	trainPath, testPath := dataset.SplitPaths(c.String("output-file"))
	if err := dataset.WriteFile(trainPath, func(w io.Writer) error {
		return dataset.WriteLabeled(w, X, labels, res.Train)
	}); err != nil {
		return err
	}
	if err := dataset.WriteFile(testPath, func(w io.Writer) error {
		return dataset.WriteLabeled(w, X, labels, res.Test)
	}); err != nil {
		return err
	}

	logger.Info("Divided",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, ds.Len(),
		log.ProportionKey, p,
		log.TrainSamplesKey, len(res.Train),
		log.TestSamplesKey, len(res.Test),
	)
	return nil
}
