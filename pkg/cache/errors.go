package cache

import "errors"

// ErrUnknownBackend is returned by [Open] for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")
