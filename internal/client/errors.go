package client

import "errors"

var (
	// ErrNoProvider is returned when a context carries no RPC client, i.e.
	// it was not passed through [Provider.Wrap].
	ErrNoProvider = errors.New("no rpc client in context")

	// ErrProviderClosed is returned by [Provider.Context] after [Provider.Close].
	ErrProviderClosed = errors.New("rpc client provider is closed")
)
