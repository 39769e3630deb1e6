// Package common holds the constants, sentinel errors and error
// classification shared by every client layer.
package common

const (
	// AuthorizationHeader carries the bearer token on outgoing API requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the token value in AuthorizationHeader.
	BearerPrefix = "Bearer "

	// Event topics published on the in-process bus.
	EventAuthUpdated      = "nafa-auth-updated"
	EventAuthUnauthorized = "nafa-auth-unauthorized"
)
