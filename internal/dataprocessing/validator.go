package dataprocessing

import (
	"errors"
	"fmt"
	"strings"

	"deliverydash/pkg/contracts/domain"
)

// ErrMissingColumns is returned when the loaded table lacks required columns.
// Like ErrNoSourceFile, this is fatal: no query is served without the full
// field contract.
var ErrMissingColumns = errors.New("required columns missing")

// ValidateColumns checks the required-field contract against the table
// header. The returned error names every missing column.
func ValidateColumns(headers []string) error {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}

	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}
