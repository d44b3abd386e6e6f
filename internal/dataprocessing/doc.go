// Package dataprocessing turns a delivery-times CSV file into a validated,
// immutable dataset. It covers the complete loading pipeline: source
// resolution, CSV parsing, categorical normalization, and missing-value
// repair.
//
// # Architecture
//
// The package is organized into four components:
//
//  1. Resolver: picks the pre-cleaned file over the raw file and tags the
//     result with its provenance
//  2. Parser: reads the CSV into records with lenient numeric coercion
//  3. Normalizer: maps free-form categorical text onto the canonical labels
//  4. Imputer: drops records without a delivery time, then median/mode-fills
//     the repairable fields
//
// # Data Flow
//
//	CSV file → Resolver → Parser → (raw path only: Normalizer → Imputer) → Dataset
//
// The pre-cleaned file is trusted as-is; normalization and imputation run
// only on the raw fallback path.
//
// # Error Handling
//
// Only two conditions are fatal: no source file at either candidate path,
// and required columns missing from the header. Malformed numeric tokens and
// unrecognized categorical values are absorbed as missing markers and
// repaired, never surfaced as errors.
package dataprocessing
