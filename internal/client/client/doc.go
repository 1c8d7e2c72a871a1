// Package client contains client-side building blocks for hotelbook.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the hotelbook backend: Register, Login, Logout, User, UpdateUser,
//     bookings and Ping.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that sends the
//     session token as a bearer header and maps responses to sentinel
//     errors.
//  3. Local persistence bootstrap (InitDatabase) for the CLI, opening the
//     SQLite state file and applying the embedded goose migrations.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable and 401 responses as
// ErrUnauthorized, both matchable with errors.Is. Other non-2xx responses
// are returned as *APIError carrying the status and the server's message.
package client
