package domain

import (
	"regexp"
	"strings"
)

// Credential maps a normalized username to a user id and a salted password
// digest. One credential exists per normalized username; credentials are
// immutable after registration.
type Credential struct {
	UserID string `json:"userId"`
	Digest string `json:"digest"`
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// NormalizeUsername lower-cases and trims a username. Applied before every
// credential lookup or store, making usernames case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidUsername reports whether the raw username is non-empty and contains
// only letters and digits.
func ValidUsername(username string) bool {
	return usernamePattern.MatchString(strings.TrimSpace(username))
}
