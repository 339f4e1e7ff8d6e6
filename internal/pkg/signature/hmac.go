// Package signature signs and verifies payment provider callbacks.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const HeaderName = "X-Signature"

type Verifier interface {
	Verify(payload []byte, sig string) bool
}

type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time. An empty secret never verifies.
func (v *HMACVerifier) Verify(payload []byte, sig string) bool {
	if len(v.secret) == 0 || sig == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(strings.TrimPrefix(sig, "sha256=")))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}
