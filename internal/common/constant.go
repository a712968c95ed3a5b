package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the authorization header. The match is
// case-sensitive.
const BearerPrefix = "Bearer "
