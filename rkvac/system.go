package rkvac

import (
	"crypto/sha1"
	"hash"

	"github.com/consensys/gnark-crypto/ecc"
	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
)

// SystemParams fixes the curve, its canonical generators and the digest
// used for every hash-to-Fr mapping. It is created once and shared read-only
// by all roles; sessions may run concurrently against the same value.
type SystemParams struct {
	Curve ecc.ID
	G1    bn254.G1Affine
	G2    bn254.G2Affine

	hashNew func() hash.Hash
}

// SysSetup returns the BN254 system parameters with the legacy SHA-1
// hash-to-Fr mapping required for smartcard wire compatibility.
func SysSetup() SystemParams {
	_, _, g1, g2 := bn254.Generators()
	return SystemParams{
		Curve:   ecc.BN254,
		G1:      g1,
		G2:      g2,
		hashNew: sha1.New,
	}
}

// SysSetupWithHash returns system parameters using the given digest for
// hash-to-Fr instead of SHA-1. The digest size must not exceed ECSize so
// the zero-padding convention still applies. Peers must agree on the digest;
// mixing breaks every transcript.
func SysSetupWithHash(h func() hash.Hash) (SystemParams, error) {
	if h == nil || h().Size() > ECSize {
		return SystemParams{}, ErrCurveInit
	}

	sys := SysSetup()
	sys.hashNew = h
	return sys, nil
}
