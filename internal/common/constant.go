// Package common contains shared constants and sentinel errors used across
// microblog components.
package common

// AuthHeaderName is the HTTP header carrying the access token on
// protected routes.
const AuthHeaderName = "Authorization"

// BearerPrefix is the expected scheme of the auth header value.
const BearerPrefix = "Bearer"
