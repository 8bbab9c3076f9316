package ads

import "errors"

var (
	// ErrUpstreamUnavailable is returned when the ad store cannot be reached or rejects a call.
	ErrUpstreamUnavailable = errors.New("ad store unavailable")
	// ErrServiceUnavailable is returned by the cache when the store is down and nothing was ever cached.
	ErrServiceUnavailable = errors.New("ads unavailable")
)
