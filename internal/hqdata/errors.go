package hqdata

import "errors"

// OverridesKey is the single key under which the override blob is persisted.
const OverridesKey = "hq-data-overrides"

// Error variables for dataset operations.
var (
	ErrBaselineInvalid = errors.New("invalid baseline dataset")
	ErrImportInvalid   = errors.New("invalid import payload")
	ErrIssueNotFound   = errors.New("issue not found")
	ErrStoreClosed     = errors.New("override store is closed")
)
