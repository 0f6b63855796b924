package domain

import "errors"

// ErrConfiguration indicates a malformed or inconsistent test definition or
// center partition. This is a programmer or data error, surfaced immediately
// and never retried.
var ErrConfiguration = errors.New("invalid test configuration")

// ErrInsufficientData indicates that aggregation was requested over zero
// trials. This is a caller-contract violation, surfaced immediately.
var ErrInsufficientData = errors.New("insufficient trial data")
