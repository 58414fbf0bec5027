package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data. Ontology loading uses it to
// fingerprint local files so an edited file never reuses a stale graph.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey joins prefix and the digest of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	enc, _ := json.Marshal(parts)
	return prefix + ":" + Hash(enc)
}
