package dataprocessing

import (
	"errors"
	"fmt"

	"deliverydash/internal/config"
	"deliverydash/pkg/contracts/domain"
)

// ErrNoSourceFile is returned when neither candidate dataset file exists.
// This is one of the two fatal startup conditions.
var ErrNoSourceFile = errors.New("no dataset source file found")

// Source identifies the dataset file chosen by the resolver, tagged with the
// provenance that decides whether the cleaning pipeline runs.
type Source struct {
	Path       string
	Provenance domain.Provenance
}

// ResolveSource checks the two candidate paths in fixed priority order:
// the pre-cleaned file first, then the raw file. The raw fallback is the
// only path that later runs normalization and imputation.
func ResolveSource(data config.DataConfig) (Source, error) {
	if cleanPath := data.CleanPath(); config.FileExists(cleanPath) {
		return Source{Path: cleanPath, Provenance: domain.ProvenancePreCleaned}, nil
	}
	if rawPath := data.RawPath(); config.FileExists(rawPath) {
		return Source{Path: rawPath, Provenance: domain.ProvenanceAutoCleaned}, nil
	}
	return Source{}, fmt.Errorf("%w: checked %q and %q", ErrNoSourceFile, data.CleanPath(), data.RawPath())
}
