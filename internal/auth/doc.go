// Package auth provides authentication for the foodapp API: verifying local
// credentials, issuing and parsing JWT bearer tokens, and the Fiber guard
// middleware that maps authorization outcomes onto HTTP responses
// (unauthenticated to 401, forbidden to 403, resolver failures to 500).
package auth
