// Package signature checks that a checkout callback was produced by the payment gateway.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns the hex encoded HMAC-SHA256 of "orderID|paymentID".
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the gateway signature of the pair.
func Verify(orderID, paymentID, signature, secret string) bool {
	expected := Sign(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

type Verifier struct {
	secret string
}

func NewVerifier(secret string) Verifier {
	return Verifier{secret: secret}
}

func (v Verifier) Verify(orderID, paymentID, signature string) bool {
	return Verify(orderID, paymentID, signature, v.secret)
}
