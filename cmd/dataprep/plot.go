package main

import (
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/dataprep/metrics"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/YuminosukeSato/dataprep/plotting"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
)

func plotCommand() *cli.Command {
	return &cli.Command{
		Name:  "plot",
		Usage: "render training diagnostics",
		Subcommands: []*cli.Command{
			{
				Name:      "histogram",
				Usage:     "histogram of per-sample errors (one value per row)",
				UsageText: "dataprep plot histogram -i FILE [command options]",
				Action:    histogramAction,
				Flags: []cli.Flag{
					inputFlag(),
					outputFlag(false),
					&cli.IntFlag{
						Name:  "bins",
						Value: plotting.DefaultBins,
						Usage: "number of histogram bins",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "chart title",
					},
				},
			},
			{
				Name:      "curve",
				Usage:     "line chart of \"x,y\" rows such as cost or accuracy per epoch",
				UsageText: "dataprep plot curve -i FILE [command options]",
				Action:    curveAction,
				Flags: []cli.Flag{
					inputFlag(),
					outputFlag(false),
					&cli.StringFlag{
						Name:  "title",
						Usage: "chart title",
					},
					&cli.StringFlag{
						Name:  "x-label",
						Value: "Epoch",
						Usage: "x axis label",
					},
					&cli.StringFlag{
						Name:  "y-label",
						Value: "Cost",
						Usage: "y axis label",
					},
				},
			},
			{
				Name:      "function",
				Usage:     "overlay a network's output on the function it approximates",
				UsageText: "dataprep plot function --actual FILE --net FILE [command options]",
				Action:    functionAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "actual",
						Usage:    "\"x,y\" rows of the target function",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "net",
						Usage:    "\"x,y\" rows produced by the network",
						Required: true,
					},
					outputFlag(false),
					&cli.StringFlag{
						Name:  "name",
						Value: "f(x)",
						Usage: "legend name of the target function",
					},
					&cli.Float64Flag{
						Name:  "worst",
						Value: plotting.DefaultWorstFraction,
						Usage: "share of points with the largest error to mark",
					},
				},
			},
		},
	}
}

// plotOutput returns --output-file, or the input path with ".png" appended.
func plotOutput(c *cli.Context, input string) string {
	if out := c.String("output-file"); out != "" {
		return out
	}
	return input + ".png"
}

func savePlot(p *plot.Plot, path, kind string) error {
	if err := plotting.Save(p, path, plotting.DefaultWidth, plotting.DefaultHeight); err != nil {
		return err
	}
	log.GetLoggerWithName("plot").Info("Plot saved",
		log.OperationKey, log.OperationPlot,
		log.CommandKey, "plot "+kind,
		log.PathKey, path,
	)
	return nil
}

func histogramAction(c *cli.Context) error {
	input := c.String("input-file")
	values, err := plotting.ReadColumnFile(input)
	if err != nil {
		return err
	}
	title := c.String("title")
	if title == "" {
		title = "Test set errors: " + filepath.Base(input)
	}
	p, err := plotting.ErrorHistogram(values, c.Int("bins"), title)
	if err != nil {
		return err
	}
	return savePlot(p, plotOutput(c, input), "histogram")
}

func curveAction(c *cli.Context) error {
	input := c.String("input-file")
	xys, err := plotting.ReadXYFile(input)
	if err != nil {
		return err
	}
	title := c.String("title")
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	p, err := plotting.Curve(xys, title, c.String("x-label"), c.String("y-label"))
	if err != nil {
		return err
	}
	return savePlot(p, plotOutput(c, input), "curve")
}

func functionAction(c *cli.Context) error {
	actual, err := plotting.ReadXYFile(c.String("actual"))
	if err != nil {
		return err
	}
	net, err := plotting.ReadXYFile(c.String("net"))
	if err != nil {
		return err
	}
	name := c.String("name")
	if len(actual) == len(net) && len(actual) > 0 {
		yTrue := mat.NewVecDense(len(actual), plotting.Ys(actual))
		yPred := mat.NewVecDense(len(net), plotting.Ys(net))
		mse, _ := metrics.MSE(yTrue, yPred)
		mae, _ := metrics.MAE(yTrue, yPred)
		log.GetLoggerWithName("plot").Info("Network error",
			log.SamplesKey, len(actual),
			log.MSEKey, mse,
			log.MAEKey, mae,
		)
	}
	p, err := plotting.FunctionOverlay(actual, net, c.Float64("worst"), name+" vs network", name)
	if err != nil {
		return err
	}
	return savePlot(p, plotOutput(c, strings.TrimSuffix(c.String("actual"), filepath.Ext(c.String("actual")))), "function")
}
