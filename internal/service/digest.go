package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// saltedDigest computes the hex SHA-256 of "<salt>_<payload>". The same
// digest scheme backs stored credentials and token signatures, so the
// server salt must stay stable for the lifetime of the data.
func saltedDigest(salt, payload string) string {
	sum := sha256.Sum256([]byte(salt + "_" + payload))
	return hex.EncodeToString(sum[:])
}

// digestsEqual compares two digests in constant time.
func digestsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// randomHex generates a random hex string of n bytes.
func randomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
