// Command dataprep prepares labeled tabular data for training: it one-hot
// encodes labels, rescales features, splits data by class, extracts HOG
// descriptors, scores a nearest-neighbour baseline and plots training
// diagnostics.
package main

import (
	"log/slog"
	"os"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:     "dataprep",
		HelpName: "dataprep",
		Usage:    "prepare labeled data sets for training",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"DATAPREP_LOG_LEVEL"},
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			convertCommand(),
			divideCommand(),
			hogCommand(),
			describeCommand(),
			knnCommand(),
			plotCommand(),
		},
	}
}

func setupLogging(c *cli.Context) error {
	if err := log.SetupLogger(c.App.ErrWriter, c.String("log-level")); err != nil {
		return err
	}
	log.InstallWarningSink(c.App.ErrWriter)
	return nil
}

// failureAttrs locates the offending input cell when err carries one.
func failureAttrs(err error) []any {
	attrs := []any{log.ErrAttr(err)}
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		return append(attrs, log.RowKey, pe.Row, log.ColumnKey, pe.Column)
	}
	var ce *errors.ColumnRangeError
	if errors.As(err, &ce) {
		return append(attrs, log.RowKey, ce.Row, log.ColumnKey, ce.Column)
	}
	return attrs
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("dataprep failed", failureAttrs(err)...)
		os.Exit(1)
	}
}
