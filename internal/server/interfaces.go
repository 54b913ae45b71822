package server

// Server defines the lifecycle contract of the API server.
//
// [RunServer] blocks until a stop signal arrives and the transports are shut
// down. [Shutdown] stops them on demand.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
