// Package integritypkg produces and verifies tamper-evident balance digests.
//
// A digest binds an account's balance to its account number under a
// process-wide secret key. Stored balances must never be trusted for a new
// computation unless their digest verifies first.
package integritypkg

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/shopspring/decimal"
)

// Guard seals and verifies balance digests with a symmetric key.
type Guard struct {
	key []byte
}

// NewGuard returns a Guard for the given secret key.
func NewGuard(key string) *Guard {
	return &Guard{key: []byte(key)}
}

// Seal returns the digest binding the balance to the account number.
func (g *Guard) Seal(balance decimal.Decimal, accountNumber string) string {
	mac := hmac.New(sha256.New, g.key)

	// Balances are normalized to 2 decimal places so that equal amounts
	// always seal to the same digest regardless of representation.
	mac.Write([]byte(balance.StringFixed(2)))
	mac.Write([]byte{0})
	mac.Write([]byte(accountNumber))

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether the digest matches the balance and account number.
func (g *Guard) Verify(balance decimal.Decimal, digest, accountNumber string) bool {
	want, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}

	got, err := hex.DecodeString(g.Seal(balance, accountNumber))
	if err != nil {
		return false
	}

	return hmac.Equal(got, want)
}
