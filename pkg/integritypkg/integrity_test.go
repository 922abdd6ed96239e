package integritypkg

import (
	"testing"

	"github.com/corebank/branchledger/pkg/randompkg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSealVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	guard := NewGuard(randompkg.String(32))

	for i := 0; i < 20; i++ {
		balance := randompkg.MoneyAmountBetween(0, 1_000_000)
		number := randompkg.AccountNumber()

		digest := guard.Seal(balance, number)
		require.True(t, guard.Verify(balance, digest, number))
	}
}

func TestVerifyDetectsMutatedBalance(t *testing.T) {
	t.Parallel()

	guard := NewGuard(randompkg.String(32))

	balance := decimal.NewFromInt(10_000)
	number := randompkg.AccountNumber()
	digest := guard.Seal(balance, number)

	mutated := balance.Add(decimal.NewFromInt(1))
	require.False(t, guard.Verify(mutated, digest, number))
}

func TestVerifyDetectsForeignAccount(t *testing.T) {
	t.Parallel()

	guard := NewGuard(randompkg.String(32))

	balance := decimal.NewFromInt(500)
	digest := guard.Seal(balance, "111122223333")

	require.False(t, guard.Verify(balance, digest, "444455556666"))
}

func TestSealNormalizesRepresentation(t *testing.T) {
	t.Parallel()

	guard := NewGuard(randompkg.String(32))
	number := randompkg.AccountNumber()

	a := decimal.RequireFromString("100")
	b := decimal.RequireFromString("100.00")

	require.Equal(t, guard.Seal(a, number), guard.Seal(b, number))
}

func TestVerifyRejectsMalformedDigest(t *testing.T) {
	t.Parallel()

	guard := NewGuard(randompkg.String(32))

	require.False(t, guard.Verify(decimal.NewFromInt(1), "not-hex", randompkg.AccountNumber()))
}

func TestDifferentKeysDisagree(t *testing.T) {
	t.Parallel()

	balance := decimal.NewFromInt(42)
	number := randompkg.AccountNumber()

	digest := NewGuard("key-one-key-one-key-one-key-one-").Seal(balance, number)
	require.False(t, NewGuard("key-two-key-two-key-two-key-two-").Verify(balance, digest, number))
}
