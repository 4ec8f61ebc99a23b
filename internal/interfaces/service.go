package interfaces

// Service is an outer surface of the trade desk daemon. Start must not
// block, and Stop drains in-flight requests before returning.
type Service interface {
	Start() error
	Stop()
}
