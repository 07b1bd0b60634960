// Package uuid generates the time-ordered identifiers used as primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a new UUIDv7 string. Version 7 embeds a millisecond Unix
// timestamp in the leading 48 bits, so keys created later sort later.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Random source failure; a v4 key is still unique.
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
