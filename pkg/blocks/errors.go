package blocks

import "errors"

// ErrInvalidInput is returned when the caller passes no block collection at all.
// Anomalies inside the collection never produce an error.
var ErrInvalidInput = errors.New("invalid input")
