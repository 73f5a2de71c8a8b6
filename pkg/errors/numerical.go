package errors

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// NumericalInstabilityError reports NaN or Inf values produced by a transformation.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Row       int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("dataprep: numerical instability detected in %s at row %d. Values: [%s]",
		e.Operation, e.Row, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a stack trace.
func NewNumericalInstabilityError(operation string, values []float64, row int) error {
	return errors.WithStack(&NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Row:       row,
	})
}

// CheckNumericalStability checks if values contain NaN or Inf
// and returns an error if numerical instability is detected.
func CheckNumericalStability(operation string, values []float64, row int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, row)
		}
	}
	return nil
}

// CheckMatrix checks all values in a matrix for numerical instability and
// reports the first offending row.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	var unstableValues []float64

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstableValues = append(unstableValues, v)
				if len(unstableValues) >= 10 {
					break
				}
			}
		}
		if len(unstableValues) > 0 {
			return NewNumericalInstabilityError(operation, unstableValues, i)
		}
	}
	return nil
}
