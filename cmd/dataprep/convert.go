package main

import (
	"io"
	"time"

	"github.com/YuminosukeSato/dataprep/core/model"
	"github.com/YuminosukeSato/dataprep/dataset"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/YuminosukeSato/dataprep/preprocessing"
	"github.com/YuminosukeSato/dataprep/split"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "one-hot encode labels and optionally rescale and split",
		UsageText: "dataprep convert -i FILE -c COLUMN -o FILE [command options]",
		Action:    convertAction,
		Flags: []cli.Flag{
			inputFlag(),
			classColumnFlag(),
			outputFlag(true),
			&cli.StringFlag{
				Name:    "normalised-file",
				Aliases: []string{"n"},
				Usage:   "also write min-max normalised features to this file",
			},
			&cli.StringFlag{
				Name:    "standardised-file",
				Aliases: []string{"s"},
				Usage:   "also write standardised features to this file",
			},
			proportionFlag(false),
			seedFlag(),
			&cli.StringFlag{
				Name:  "stats-file",
				Usage: "save the fitted encoder and scalers (gob) to this file",
			},
			progressFlag(),
		},
	}
}

// encodedOutput is one file written by convert.
type encodedOutput struct {
	path string
	X    mat.Matrix
}

func convertAction(c *cli.Context) error {
	start := time.Now()
	logger := log.GetLoggerWithName("convert").With(log.CommandKey, "convert")
	if c.IsSet("seed") {
		logger = logger.With(log.RandomSeedKey, c.Uint64("seed"))
	}

	ds, err := loadInput(c)
	if err != nil {
		return err
	}
	if err := requireFeatures(ds); err != nil {
		return err
	}

	X := ds.Features()
	labels := ds.Labels()
	normalisedPath := c.String("normalised-file")
	standardisedPath := c.String("standardised-file")

	ft, err := preprocessing.FitTransforms(X, labels, normalisedPath != "", standardisedPath != "")
	if err != nil {
		return err
	}
	logger.Debug("Transforms fitted",
		log.OperationKey, log.OperationFit,
		log.ClassesKey, ft.Encoder.NClasses(),
		"normalise", ft.Normalizer != nil,
		"standardise", ft.Standardizer != nil,
	)

	outputs := []encodedOutput{{path: c.String("output-file"), X: X}}
	if ft.Normalizer != nil {
		out, err := transformOutput(normalisedPath, ft.Normalizer, X)
		if err != nil {
			return err
		}
		outputs = append(outputs, out)
	}
	if ft.Standardizer != nil {
		out, err := transformOutput(standardisedPath, ft.Standardizer, X)
		if err != nil {
			return err
		}
		outputs = append(outputs, out)
	}

	// One split shared by every output so the files stay row-aligned.
	var res *split.Result
	if c.IsSet("training-proportion") {
		p := c.Float64("training-proportion")
		res, err = split.Stratified(labels, p, splitOptions(c)...)
		if err != nil {
			return err
		}
		logger.Info("Split computed",
			log.OperationKey, log.OperationSplit,
			log.ProportionKey, p,
			log.TrainSamplesKey, len(res.Train),
			log.TestSamplesKey, len(res.Test),
		)
	}

	for _, out := range outputs {
		if err := writeEncoded(out, labels, ft.Encoder, res); err != nil {
			return err
		}
		logger.Debug("Output written", log.OperationKey, log.OperationWrite, log.PathKey, out.path)
	}

	if statsPath := c.String("stats-file"); statsPath != "" {
		if err := ft.Save(statsPath); err != nil {
			return err
		}
	}

	logger.Info("Converted",
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, ds.NumFeatures(),
		log.ClassesKey, ft.Encoder.NClasses(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// transformOutput applies an already fitted scaler to X.
func transformOutput(path string, t model.Transformer, X mat.Matrix) (encodedOutput, error) {
	Xt, err := t.Transform(X)
	if err != nil {
		return encodedOutput{}, err
	}
	return encodedOutput{path: path, X: Xt}, nil
}

func writeEncoded(out encodedOutput, labels []string, enc *preprocessing.OneHotEncoder, res *split.Result) error {
	if res == nil {
		return dataset.WriteFile(out.path, func(w io.Writer) error {
			return dataset.WriteEncoded(w, out.X, labels, enc, nil)
		})
	}
	trainPath, testPath := dataset.SplitPaths(out.path)
	if err := dataset.WriteFile(trainPath, func(w io.Writer) error {
		return dataset.WriteEncoded(w, out.X, labels, enc, res.Train)
	}); err != nil {
		return err
	}
	return dataset.WriteFile(testPath, func(w io.Writer) error {
		return dataset.WriteEncoded(w, out.X, labels, enc, res.Test)
	})
}
