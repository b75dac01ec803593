package fetchers

import "errors"

// Fetch and parse failures. Both are recoverable: the caller keeps its
// previous snapshot and retries on the next scheduled refresh.
var (
	ErrNetworkFailure    = errors.New("network failure")
	ErrMalformedDocument = errors.New("malformed document")
)
