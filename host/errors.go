package host

import "errors"

// ErrNotPrepared is returned when an adapter is handed a processor that has
// not been prepared.
var ErrNotPrepared = errors.New("host: processor not prepared")
