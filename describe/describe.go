// Package describe summarizes a loaded dataset as tables.
package describe

import (
	"fmt"
	"io"
	"sort"

	"github.com/YuminosukeSato/dataprep/dataset"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/YuminosukeSato/dataprep/split"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// LabelColumn is the name given to the label column in frames built by Frame.
const LabelColumn = "label"

// FeatureName returns the frame column name of feature j.
func FeatureName(j int) string {
	return fmt.Sprintf("f%d", j)
}

// Frame converts ds into a DataFrame with one Float column per feature,
// named by FeatureName, followed by a String column named LabelColumn.
func Frame(ds *dataset.Dataset) (dataframe.DataFrame, error) {
	cols := make([]series.Series, 0, ds.NumFeatures()+1)
	for j := 0; j < ds.NumFeatures(); j++ {
		values := make([]float64, ds.Len())
		for i := range values {
			values[i] = ds.Record(i).Features[j]
		}
		cols = append(cols, series.New(values, series.Float, FeatureName(j)))
	}
	cols = append(cols, series.New(ds.Labels(), series.String, LabelColumn))

	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "build dataframe")
	}
	return df, nil
}

// Summary returns per-column statistics: mean, median, stddev, min,
// quartiles and max.
func Summary(ds *dataset.Dataset) (dataframe.DataFrame, error) {
	df, err := Frame(ds)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	summary := df.Describe()
	if summary.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(summary.Err, "describe")
	}
	return summary, nil
}

// ClassCounts returns a two-column frame of labels in sorted order and the
// number of records carrying each.
func ClassCounts(ds *dataset.Dataset) dataframe.DataFrame {
	counts := split.Counts(ds.Labels())
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	n := make([]int, len(labels))
	for i, l := range labels {
		n[i] = counts[l]
	}
	return dataframe.New(
		series.New(labels, series.String, LabelColumn),
		series.New(n, series.Int, "count"),
	)
}

// Write prints the summary and class count tables to w.
func Write(w io.Writer, ds *dataset.Dataset) error {
	summary, err := Summary(ds)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d records, %d features\n\n%v\n%v", ds.Len(), ds.NumFeatures(), summary, ClassCounts(ds)); err != nil {
		return errors.Wrap(err, "write summary")
	}
	return nil
}
