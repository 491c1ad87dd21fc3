// internal/domain/errors.go
package domain

import "errors"

var (
	// ErrSnapshotMissing is returned when the snapshot source is absent or
	// malformed. The load aborts; there is no default data set.
	ErrSnapshotMissing = errors.New("snapshot data missing or malformed")

	// ErrUnknownMetric is returned for sort/filter keys outside the
	// recognized metric enumeration.
	ErrUnknownMetric = errors.New("unknown metric key")

	// ErrUnknownBrand is returned when a query names a brand that is not in
	// the snapshot's tracked brand list.
	ErrUnknownBrand = errors.New("unknown brand")

	// ErrDongNotFound is returned by code lookups for absent neighborhoods.
	ErrDongNotFound = errors.New("dong not found")
)
