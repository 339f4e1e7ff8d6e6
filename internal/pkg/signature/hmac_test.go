//go:build unit

package signature_test

import (
	"testing"

	"telemed-booking/internal/pkg/signature"

	"github.com/stretchr/testify/assert"
)

func TestHMACVerifier(t *testing.T) {
	v := signature.NewHMACVerifier("shared-secret")
	payload := []byte(`{"transaction_id":"tx_0123456789","status":"SUCCESS"}`)
	sig := v.Sign(payload)

	cases := []struct {
		name    string
		payload []byte
		sig     string
		want    bool
	}{
		{name: "valid signature", payload: payload, sig: sig, want: true},
		{name: "valid with sha256 prefix", payload: payload, sig: "sha256=" + sig, want: true},
		{name: "tampered payload", payload: []byte(`{"transaction_id":"tx_0123456789","status":"FAILED"}`), sig: sig, want: false},
		{name: "empty signature", payload: payload, sig: "", want: false},
		{name: "non-hex signature", payload: payload, sig: "valid_secret_key", want: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, v.Verify(c.payload, c.sig))
		})
	}
}

func TestHMACVerifier_DifferentSecret(t *testing.T) {
	payload := []byte("body")
	sig := signature.NewHMACVerifier("a").Sign(payload)
	assert.False(t, signature.NewHMACVerifier("b").Verify(payload, sig))
}

func TestHMACVerifier_EmptySecretNeverVerifies(t *testing.T) {
	v := signature.NewHMACVerifier("")
	assert.False(t, v.Verify([]byte("body"), v.Sign([]byte("body"))))
}
