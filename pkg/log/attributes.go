// Standard attribute keys shared by every dataprep component.
//
// Keys follow a hierarchical naming convention ("data.samples", "io.path") so
// JSON log lines from different commands can be filtered the same way.

package log

// Operation context.
const (
	// ComponentKey identifies the package doing the work.
	// Examples: "dataset.loader", "preprocessing", "split", "hog"
	ComponentKey = "ml.component"

	// OperationKey is the transformation being performed.
	OperationKey = "ml.operation"

	// CommandKey is the CLI subcommand that started the run.
	CommandKey = "cli.command"
)

// Data shape.
const (
	// SamplesKey is the number of records (rows).
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// ClassesKey is the number of distinct labels.
	ClassesKey = "data.classes"

	// LabelColumnKey is the zero-based index of the label column in the input file.
	LabelColumnKey = "data.label_column"

	// TrainSamplesKey and TestSamplesKey describe the result of a split.
	TrainSamplesKey = "split.train_samples"
	TestSamplesKey  = "split.test_samples"

	// ProportionKey is the requested training proportion.
	ProportionKey = "split.proportion"
)

// I/O.
const (
	// PathKey is the file being read or written.
	PathKey = "io.path"

	// RowKey is the one-based row number in an input file.
	RowKey = "io.row"

	// ColumnKey is the zero-based column index in an input file.
	ColumnKey = "io.column"
)

// Performance and reproducibility.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RandomSeedKey records the seed used for shuffling.
	RandomSeedKey = "config.random_seed"
)

// Evaluation.
const (
	// MSEKey and MAEKey report how far a network's output is from its target.
	MSEKey = "eval.mse"
	MAEKey = "eval.mae"

	// CostKey is the mean per-example sum of squared errors on a test set.
	CostKey = "eval.cost"

	// AccuracyKey is the share of test examples whose strongest output matches the target class.
	AccuracyKey = "eval.accuracy"

	// NeighborsKey is the k of a nearest-neighbour classifier.
	NeighborsKey = "knn.k"
)

// Standard operation values.
const (
	OperationLoad       = "load"
	OperationFit        = "fit"
	OperationSplit      = "split"
	OperationDescriptor = "descriptor"
	OperationWrite      = "write"
	OperationPlot       = "plot"
	OperationDescribe   = "describe"
	OperationEvaluate   = "evaluate"
)
