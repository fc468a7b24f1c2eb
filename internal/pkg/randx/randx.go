/*
Package randx provides generators for the relay's opaque identifiers.

Connection identities are standard UUID v4 strings.
*/
package randx

import "github.com/google/uuid"

// ConnectionID returns a fresh identity for a newly opened connection.
func ConnectionID() string {
	return uuid.NewString()
}

// IsValidConnectionID reports whether id has the shape produced by ConnectionID.
func IsValidConnectionID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.Version() == 4
}
