package interfaces

import "context"

// Lifecycle is a component started once the host application is ready and stopped on shutdown.
// cmd serve starts it after the HTTP listener is up and stops it before the listener shuts down.
type Lifecycle interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
}
