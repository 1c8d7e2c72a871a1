package common

// AuthorizationHeaderName is the HTTP header carrying the session token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the session token inside the Authorization header.
const BearerPrefix = "Bearer "

// SessionTokenBytes is the amount of random bytes behind a session token.
// Tokens are hex encoded, so the rendered token is twice as long.
const SessionTokenBytes = 32
