// Package ids generates identifiers for shell sessions.
package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const sessionBytes = 8

// Session returns a random hex identifier that tags every log record of
// one shell process.
func Session() (string, error) {
	b := make([]byte, sessionBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
