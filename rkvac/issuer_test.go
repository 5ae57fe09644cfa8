package rkvac

import (
	"math/big"
	"testing"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuerSetupValidatesAttributeCount(t *testing.T) {
	rng := NewDeterministicRNG([]byte("issuer-setup"))

	for _, n := range []int{0, MaxAttributes + 1, -1} {
		_, err := IssuerSetup(n, rng)
		assert.ErrorIs(t, err, ErrConfigInvalid, "n=%d", n)
	}

	keys, err := IssuerSetup(3, rng)
	require.NoError(t, err)
	assert.Len(t, keys.AttributeSKs, 3)
	assert.False(t, keys.SK.IsZero())
	assert.False(t, keys.RevocationSK.IsZero())
}

func TestIssuerSignatureSoundness(t *testing.T) {
	s := newTestSession(t, 4, 0, "issuer-soundness")

	// sigma * (x(0) + sum m(i)*x(i) + mr*x(r)) == G1
	denom := s.ieKeys.SK
	var mul fr.Element
	for i, attr := range s.attrs {
		m := attributeToFr(attr.Value)
		mul.Mul(&m, &s.ieKeys.AttributeSKs[i])
		denom.Add(&denom, &mul)
	}
	mul.Mul(&s.raSig.Mr, &s.ieKeys.RevocationSK)
	denom.Add(&denom, &mul)

	var lhs bn254.G1Affine
	lhs.ScalarMultiplication(&s.ieSig.Sigma, denom.BigInt(new(big.Int)))
	assert.True(t, lhs.Equal(&s.sys.G1))

	// attribute_sigmas[i] == sigma * x(i), revocation_sigma == sigma * x(r)
	var expected bn254.G1Affine
	for i := range s.attrs {
		expected.ScalarMultiplication(&s.ieSig.Sigma, s.ieKeys.AttributeSKs[i].BigInt(new(big.Int)))
		assert.True(t, expected.Equal(&s.ieSig.AttributeSigmas[i]), "attribute sigma %d", i)
	}
	expected.ScalarMultiplication(&s.ieSig.Sigma, s.ieKeys.RevocationSK.BigInt(new(big.Int)))
	assert.True(t, expected.Equal(&s.ieSig.RevocationSigma))
}

func TestIssueRejectsInvalidRaSignature(t *testing.T) {
	s := newTestSession(t, 3, 0, "issue-bad-ra-sig")

	// a tampered revocation handle breaks the pairing equation
	bad := s.raSig
	var one fr.Element
	one.SetOne()
	bad.Mr.Add(&bad.Mr, &one)

	_, err := Issue(s.sys, s.ieKeys, s.id, s.attrs, s.raKeys.PublicKey, bad)
	assert.ErrorIs(t, err, ErrRaSignatureInvalid)

	// so does a signature under a different key
	otherRng := NewDeterministicRNG([]byte("issue-other-ra"))
	_, otherKeys, err := RaSetup(s.sys, otherRng)
	require.NoError(t, err)

	otherSig, err := RaMac(s.sys, otherKeys.PrivateKey, s.id, otherRng)
	require.NoError(t, err)

	_, err = Issue(s.sys, s.ieKeys, s.id, s.attrs, s.raKeys.PublicKey, otherSig)
	assert.ErrorIs(t, err, ErrRaSignatureInvalid)
}

func TestIssueValidatesInputs(t *testing.T) {
	s := newTestSession(t, 3, 0, "issue-validate")

	_, err := Issue(s.sys, s.ieKeys, nil, s.attrs, s.raKeys.PublicKey, s.raSig)
	assert.ErrorIs(t, err, ErrConfigInvalid)

	// attribute count must match the key set
	_, err = Issue(s.sys, s.ieKeys, s.id, s.attrs[:2], s.raKeys.PublicKey, s.raSig)
	assert.ErrorIs(t, err, ErrConfigInvalid)

	longID := make(UserIdentifier, MaxIDLength+1)
	_, err = Issue(s.sys, s.ieKeys, longID, s.attrs, s.raKeys.PublicKey, s.raSig)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}
