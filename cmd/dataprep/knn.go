package main

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/YuminosukeSato/dataprep/dataset"
	"github.com/YuminosukeSato/dataprep/knn"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/urfave/cli/v2"
)

func knnCommand() *cli.Command {
	return &cli.Command{
		Name:      "knn",
		Usage:     "score a k-nearest-neighbours classifier on encoded training and testing files",
		UsageText: "dataprep knn --train FILE --test FILE [command options]",
		Action:    knnAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "train",
				Usage:    "encoded training file written by convert",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "test",
				Usage:    "encoded testing file with the same classes",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "neighbours",
				Aliases: []string{"k"},
				Value:   3,
				Usage:   "number of neighbours averaged per prediction",
			},
			&cli.StringFlag{
				Name:  "costs-file",
				Usage: "write each test example's cost, one per line (input for plot histogram)",
			},
			progressFlag(),
		},
	}
}

func knnAction(c *cli.Context) error {
	start := time.Now()
	k := c.Int("neighbours")
	logger := log.GetLoggerWithName("knn").With(log.CommandKey, "knn", log.NeighborsKey, k)

	train, err := loadEncoded(c, c.String("train"))
	if err != nil {
		return err
	}
	test, err := loadEncoded(c, c.String("test"))
	if err != nil {
		return err
	}
	if err := sameClasses(train.Classes, test.Classes); err != nil {
		return err
	}

	clf := knn.NewClassifier(k)
	if err := clf.Fit(train.Features, train.Targets); err != nil {
		return err
	}
	ev, err := clf.Evaluate(test.Features, test.Targets)
	if err != nil {
		return err
	}

	if path := c.String("costs-file"); path != "" {
		if err := dataset.WriteFile(path, func(w io.Writer) error {
			return writeCosts(w, ev.Costs)
		}); err != nil {
			return err
		}
		logger.Debug("Costs written", log.OperationKey, log.OperationWrite, log.PathKey, path)
	}

	logger.Info("Evaluated",
		log.OperationKey, log.OperationEvaluate,
		log.TrainSamplesKey, train.Len(),
		log.TestSamplesKey, test.Len(),
		log.ClassesKey, len(train.Classes),
		log.CostKey, ev.Cost,
		log.AccuracyKey, ev.Accuracy,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func loadEncoded(c *cli.Context, path string) (*dataset.Encoded, error) {
	var opts []dataset.LoadOption
	if c.Bool("progress") {
		opts = append(opts, dataset.WithProgress(c.App.ErrWriter, -1, "loading "+path))
	}
	return dataset.LoadEncodedFile(path, opts...)
}

// sameClasses requires the testing header to name the training classes in
// the same order, so target columns line up.
func sameClasses(train, test []string) error {
	if len(train) != len(test) {
		return errors.NewDimensionError("knn.classes", len(train), len(test), 1)
	}
	for i := range train {
		if train[i] != test[i] {
			return errors.NewValidationError("test", "class "+strconv.Itoa(i)+" differs from the training file", test[i])
		}
	}
	return nil
}

func writeCosts(w io.Writer, costs []float64) error {
	cw := csv.NewWriter(w)
	for _, v := range costs {
		if err := cw.Write([]string{strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			return errors.WithStack(err)
		}
	}
	cw.Flush()
	return errors.WithStack(cw.Error())
}
