package main

import (
	"github.com/YuminosukeSato/dataprep/describe"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/urfave/cli/v2"
)

func describeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "print summary statistics and class counts",
		UsageText: "dataprep describe -i FILE -c COLUMN",
		Action: func(c *cli.Context) error {
			ds, err := loadInput(c)
			if err != nil {
				return err
			}
			log.GetLoggerWithName("describe").Debug("Describing dataset",
				log.OperationKey, log.OperationDescribe,
				log.SamplesKey, ds.Len(),
			)
			return describe.Write(c.App.Writer, ds)
		},
		Flags: []cli.Flag{
			inputFlag(),
			classColumnFlag(),
			progressFlag(),
		},
	}
}
