// Package sha1 implements the hex digest used by the session server, which
// reads the SHA-1 sum as a signed big-endian two's complement number.
package sha1

import (
	"crypto/sha1"
	"encoding/hex"
	"hash"
	"strings"
)

type Hash struct {
	hash.Hash
}

func NewHash() Hash {
	return Hash{
		Hash: sha1.New(),
	}
}

func (h Hash) Update(b []byte) {
	// This will never return an error like documented in hash.Hash
	// so ignoring this error is ok
	_, _ = h.Write(b)
}

func (h Hash) HexDigest() string {
	return signedHexDigest(h.Sum(nil))
}

// SessionHash computes the server hash a client sends to the session server
// when joining: the digest of the server id, the shared secret and the DER
// encoded public key.
func SessionHash(serverID string, sharedSecret, publicKey []byte) string {
	h := NewHash()
	h.Update([]byte(serverID))
	h.Update(sharedSecret)
	h.Update(publicKey)
	return h.HexDigest()
}

func signedHexDigest(hashBytes []byte) string {
	negative := len(hashBytes) > 0 && (hashBytes[0]&0x80) == 0x80
	if negative {
		// two's compliment, big endian
		carry := true
		for i := len(hashBytes) - 1; i >= 0; i-- {
			hashBytes[i] = ^hashBytes[i]
			if carry {
				carry = hashBytes[i] == 0xff
				hashBytes[i]++
			}
		}
	}

	hashString := strings.TrimLeft(hex.EncodeToString(hashBytes), "0")
	if hashString == "" {
		return "0"
	}

	if negative {
		hashString = "-" + hashString
	}

	return hashString
}
