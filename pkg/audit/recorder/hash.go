package recorder

import (
	"crypto/sha256"
	"encoding/hex"
)

// MaxHashSize is the maximum number of bytes hashed from a document.
const MaxHashSize = 1024 * 1024 // 1MB

// HashContent returns the hex-encoded SHA-256 of content, limited to the
// first MaxHashSize bytes. Returns an empty string for empty content.
func HashContent(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	if len(content) > MaxHashSize {
		content = content[:MaxHashSize]
	}

	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
