package errors

import (
	"errors"

	"deliverydash/internal/dataprocessing"
)

// datasetProblemType distinguishes the two fatal load conditions in the
// problem type so clients can tell a missing file from a bad one.
func datasetProblemType(err error) string {
	switch {
	case errors.Is(err, dataprocessing.ErrNoSourceFile):
		return TypeSourceNotFound
	case errors.Is(err, dataprocessing.ErrMissingColumns):
		return TypeColumnsMissing
	default:
		return TypeDatasetUnavailable
	}
}
