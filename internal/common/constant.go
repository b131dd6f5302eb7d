package common

// AuthHeaderName is the HTTP header carrying the bearer token.
const AuthHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the Authorization header.
const BearerPrefix = "Bearer "

// DefaultStatusName is the display label used when a user has no status
// reference set.
const DefaultStatusName = "Working"
