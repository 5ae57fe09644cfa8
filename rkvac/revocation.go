package rkvac

import (
	"fmt"
	"io"
	"math/big"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// RaSetup generates the revocation authority key pair and its public
// parameters: j alpha base points and k randomizers, each randomizer
// pre-signed as sigma_e = G1 * 1/(e + sk).
func RaSetup(sys SystemParams, rng io.Reader) (RaParams, RaKeys, error) {
	var params RaParams
	var keys RaKeys

	params.K = RevocationValueK
	params.J = RevocationValueJ

	// alpha base points
	params.Alphas = make([]fr.Element, params.J)
	params.H = make([]bn254.G1Affine, params.J)
	for i := 0; i < params.J; i++ {
		alpha, err := RandomScalar(rng)
		if err != nil {
			return RaParams{}, RaKeys{}, fmt.Errorf("ra setup: %w", err)
		}
		params.Alphas[i] = alpha

		params.H[i].ScalarMultiplication(&sys.G1, alpha.BigInt(new(big.Int)))
		if params.H[i].IsInfinity() {
			return RaParams{}, RaKeys{}, fmt.Errorf("ra setup: %w", ErrArithmetic)
		}
	}

	// key pair
	sk, err := RandomScalar(rng)
	if err != nil {
		return RaParams{}, RaKeys{}, fmt.Errorf("ra setup: %w", err)
	}
	keys.PrivateKey.SK = sk

	keys.PublicKey.PK.ScalarMultiplication(&sys.G2, sk.BigInt(new(big.Int)))
	if keys.PublicKey.PK.IsInfinity() {
		return RaParams{}, RaKeys{}, fmt.Errorf("ra setup: %w", ErrArithmetic)
	}

	// randomizers and their signatures
	params.Randomizers = make([]fr.Element, params.K)
	params.RandomizerSigmas = make([]bn254.G1Affine, params.K)
	for i := 0; i < params.K; i++ {
		ez, err := RandomScalar(rng)
		if err != nil {
			return RaParams{}, RaKeys{}, fmt.Errorf("ra setup: %w", err)
		}
		params.Randomizers[i] = ez

		// sigma_e = G1 * 1/(ez + sk)
		var denom fr.Element
		denom.Add(&ez, &sk)
		if denom.IsZero() {
			return RaParams{}, RaKeys{}, fmt.Errorf("ra setup: %w", ErrSampleFailed)
		}
		denom.Inverse(&denom)

		params.RandomizerSigmas[i].ScalarMultiplication(&sys.G1, denom.BigInt(new(big.Int)))
		if params.RandomizerSigmas[i].IsInfinity() {
			return RaParams{}, RaKeys{}, fmt.Errorf("ra setup: %w", ErrArithmetic)
		}
	}

	return params, keys, nil
}

// RaMac signs a user identifier under the revocation authority key:
// sigma = G1 * 1/(H(mr || id) + sk) for a fresh random revocation handle mr.
func RaMac(sys SystemParams, priv RaPrivateKey, id UserIdentifier, rng io.Reader) (RaSignature, error) {
	if len(id) == 0 || len(id) > MaxIDLength {
		return RaSignature{}, fmt.Errorf("ra mac: %w", ErrConfigInvalid)
	}

	mr, err := RandomScalar(rng)
	if err != nil {
		return RaSignature{}, fmt.Errorf("ra mac: %w", err)
	}

	// H(mr || id)
	mrBytes := mr.Bytes()
	frHash := sys.hashToFr(mrBytes[:], id)

	var denom fr.Element
	denom.Add(&frHash, &priv.SK)
	if denom.IsZero() {
		return RaSignature{}, fmt.Errorf("ra mac: %w", ErrSampleFailed)
	}
	denom.Inverse(&denom)

	var sig RaSignature
	sig.Mr = mr
	sig.Sigma.ScalarMultiplication(&sys.G1, denom.BigInt(new(big.Int)))
	if sig.Sigma.IsInfinity() {
		return RaSignature{}, fmt.Errorf("ra mac: %w", ErrArithmetic)
	}

	return sig, nil
}
