// Package client talks to the NafaVerse REST backend.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer.
// HTTPClient implements it over net/http with JSON bodies, a single overall
// timeout and no retries.
//
// # Authentication
//
// Every request passes through an authenticating RoundTripper. Before the
// request is sent it reads the persisted bearer token and sets the
// Authorization header. When the backend answers 401 it wipes the persisted
// credentials and publishes common.EventAuthUnauthorized on the event bus,
// once per response, before the caller sees the error.
//
// # Error Handling
//
// Failures are returned as *APIError or as sentinel errors from
// internal/common, so callers can use errors.Is with ErrUnauthorized,
// ErrRateLimited, ErrUnavailable and ErrValidation, or common.KindOf.
package client
