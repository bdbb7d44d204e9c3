package generation

import "errors"

// ErrBackend indicates the generation backend call failed: network failure,
// authentication failure, or a backend-reported error. Never retried here.
var ErrBackend = errors.New("generation backend failure")
