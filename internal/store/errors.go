package store

import "errors"

// ErrUnavailable indicates the persistent store could not be opened or a
// read/write was rejected by the host environment. Callers receive it
// wrapped; test with errors.Is. There is no automatic retry.
var ErrUnavailable = errors.New("storage unavailable")
