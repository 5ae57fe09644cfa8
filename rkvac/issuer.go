package rkvac

import (
	"fmt"
	"io"
	"math/big"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// IssuerSetup generates the issuer key set for n attributes: the master
// scalar x(0), one scalar per attribute and the revocation scalar x(r).
func IssuerSetup(n int, rng io.Reader) (IssuerKeys, error) {
	if n < 1 || n > MaxAttributes {
		return IssuerKeys{}, fmt.Errorf("issuer setup: %w", ErrConfigInvalid)
	}

	var keys IssuerKeys
	var err error

	if keys.SK, err = RandomScalar(rng); err != nil {
		return IssuerKeys{}, fmt.Errorf("issuer setup: %w", err)
	}

	keys.AttributeSKs = make([]fr.Element, n)
	for i := 0; i < n; i++ {
		if keys.AttributeSKs[i], err = RandomScalar(rng); err != nil {
			return IssuerKeys{}, fmt.Errorf("issuer setup: %w", err)
		}
	}

	if keys.RevocationSK, err = RandomScalar(rng); err != nil {
		return IssuerKeys{}, fmt.Errorf("issuer setup: %w", err)
	}

	return keys, nil
}

// Issue verifies the revocation authority's MAC over the user identifier and
// signs the attribute set:
//
//	sigma = G1 * 1/(x(0) + sum m(i)*x(i) + mr*x(r))
//
// together with the auxiliary points sigma*x(i) and sigma*x(r) the user
// needs to build showing commitments.
func Issue(sys SystemParams, keys IssuerKeys, id UserIdentifier, attrs Attributes,
	raPK RaPublicKey, raSig RaSignature) (IssuerSignature, error) {

	n := len(attrs)
	if n == 0 || n > MaxAttributes || n != len(keys.AttributeSKs) {
		return IssuerSignature{}, fmt.Errorf("issue: %w", ErrConfigInvalid)
	}
	if len(id) == 0 || len(id) > MaxIDLength {
		return IssuerSignature{}, fmt.Errorf("issue: %w", ErrConfigInvalid)
	}

	// H(mr || id)
	mrBytes := raSig.Mr.Bytes()
	frHash := sys.hashToFr(mrBytes[:], id)

	// e(ra_sigma, ra_pk) * e(ra_sigma, G2)^H(mr||id) ?= e(G1, G2)
	e1, err := bn254.Pair([]bn254.G1Affine{raSig.Sigma}, []bn254.G2Affine{raPK.PK})
	if err != nil {
		return IssuerSignature{}, fmt.Errorf("issue: %w", ErrArithmetic)
	}
	e2, err := bn254.Pair([]bn254.G1Affine{raSig.Sigma}, []bn254.G2Affine{sys.G2})
	if err != nil {
		return IssuerSignature{}, fmt.Errorf("issue: %w", ErrArithmetic)
	}
	e2.Exp(e2, frHash.BigInt(new(big.Int)))
	e1.Mul(&e1, &e2)

	er, err := bn254.Pair([]bn254.G1Affine{sys.G1}, []bn254.G2Affine{sys.G2})
	if err != nil {
		return IssuerSignature{}, fmt.Errorf("issue: %w", ErrArithmetic)
	}
	if !e1.Equal(&er) {
		return IssuerSignature{}, fmt.Errorf("issue: %w", ErrRaSignatureInvalid)
	}

	// denom = x(0) + sum m(i)*x(i) + mr*x(r)
	denom := keys.SK
	var mul fr.Element
	for i := 0; i < n; i++ {
		m := attributeToFr(attrs[i].Value)
		mul.Mul(&m, &keys.AttributeSKs[i])
		denom.Add(&denom, &mul)
	}
	mul.Mul(&raSig.Mr, &keys.RevocationSK)
	denom.Add(&denom, &mul)

	if denom.IsZero() {
		return IssuerSignature{}, fmt.Errorf("issue: %w", ErrArithmetic)
	}
	denom.Inverse(&denom)

	var sig IssuerSignature
	sig.Sigma.ScalarMultiplication(&sys.G1, denom.BigInt(new(big.Int)))
	if sig.Sigma.IsInfinity() {
		return IssuerSignature{}, fmt.Errorf("issue: %w", ErrArithmetic)
	}

	sig.AttributeSigmas = make([]bn254.G1Affine, n)
	for i := 0; i < n; i++ {
		sig.AttributeSigmas[i].ScalarMultiplication(&sig.Sigma, keys.AttributeSKs[i].BigInt(new(big.Int)))
		if sig.AttributeSigmas[i].IsInfinity() {
			return IssuerSignature{}, fmt.Errorf("issue: %w", ErrArithmetic)
		}
	}

	sig.RevocationSigma.ScalarMultiplication(&sig.Sigma, keys.RevocationSK.BigInt(new(big.Int)))
	if sig.RevocationSigma.IsInfinity() {
		return IssuerSignature{}, fmt.Errorf("issue: %w", ErrArithmetic)
	}

	return sig, nil
}
