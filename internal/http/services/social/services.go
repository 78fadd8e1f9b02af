// Package social contains the services behind the social endpoints:
// the OAuth2 handshake against the networks and the lifecycle of the
// persisted social account records.
package social

// Services aggregates the social services for wiring into controllers.
type Services struct {
	Handshake HandshakeService
	Records   RecordsService
}
