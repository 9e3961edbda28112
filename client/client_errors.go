package client

import "errors"

var (
	// ErrNotAuthenticated means a token-requiring resource URL was built
	// with no credential present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnsupportedFormat means a response format other than xml was
	// requested.
	ErrUnsupportedFormat = errors.New("unsupported response format")

	// ErrDataSourceUnavailable means the local product data could not be
	// opened or read.
	ErrDataSourceUnavailable = errors.New("product data source unavailable")
)
