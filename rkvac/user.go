package rkvac

import (
	"fmt"
	"io"
	"math/big"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ComputeProofOfKnowledge runs the user side of a showing session: it
// randomizes the credential, commits to every hidden witness, derives the
// Fiat-Shamir challenge from the transcript and the verifier's nonce, and
// answers with one response per witness.
//
// Attributes are disclosed from the tail: with n attributes and d disclosed,
// indices [n-d, n) are revealed and [0, n-d) stay hidden. The Disclosed
// flags on attrs are set accordingly.
//
// The two randomizer indices are drawn uniformly from [0, k). Both may pick
// the same randomizer; the proof stays sound either way.
func ComputeProofOfKnowledge(sys SystemParams, raParams RaParams, raSig RaSignature,
	ieSig IssuerSignature, attrs Attributes, numDisclosed int,
	nonce Nonce, epoch Epoch, rng io.Reader) (Credential, Pi, error) {

	n := len(attrs)
	if n == 0 || n > MaxAttributes || numDisclosed < 0 || numDisclosed > n {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", ErrConfigInvalid)
	}
	if len(ieSig.AttributeSigmas) != n {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", ErrConfigInvalid)
	}
	if raParams.J < RevocationValueJ || len(raParams.Alphas) != raParams.J ||
		len(raParams.Randomizers) != raParams.K || len(raParams.RandomizerSigmas) != raParams.K {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", ErrConfigInvalid)
	}

	numHidden := n - numDisclosed
	for it := 0; it < n; it++ {
		attrs[it].Disclosed = it >= numHidden
	}

	// select the randomizer pair
	idx1, err := randomIndex(rng, raParams.K)
	if err != nil {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", err)
	}
	idx2, err := randomIndex(rng, raParams.K)
	if err != nil {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", err)
	}
	e1 := raParams.Randomizers[idx1]
	e2 := raParams.Randomizers[idx2]
	sigmaE1 := raParams.RandomizerSigmas[idx1]
	sigmaE2 := raParams.RandomizerSigmas[idx2]

	// fresh credential blinding, shared by sigma_hat and both sigma_hat_e
	v, err := RandomScalar(rng)
	if err != nil {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", err)
	}
	vBig := v.BigInt(new(big.Int))

	var cred Credential
	cred.SigmaHat.ScalarMultiplication(&ieSig.Sigma, vBig)
	cred.SigmaHatE1.ScalarMultiplication(&sigmaE1, vBig)
	cred.SigmaHatE2.ScalarMultiplication(&sigmaE2, vBig)

	// sigma_minus_e = G1*v - sigma_hat_e*e, so that
	// e(sigma_minus_e, G2) = e(sigma_hat_e, ra_pk)
	var g1v bn254.G1Affine
	g1v.ScalarMultiplication(&sys.G1, vBig)

	var tmpAff bn254.G1Affine
	tmpAff.ScalarMultiplication(&cred.SigmaHatE1, e1.BigInt(new(big.Int)))
	tmpAff.Neg(&tmpAff)
	cred.SigmaMinusE1.Add(&g1v, &tmpAff)

	tmpAff.ScalarMultiplication(&cred.SigmaHatE2, e2.BigInt(new(big.Int)))
	tmpAff.Neg(&tmpAff)
	cred.SigmaMinusE2.Add(&g1v, &tmpAff)

	// session secret i = alpha(0)*e1 + alpha(1)*e2
	var iSecret, mul fr.Element
	iSecret.Mul(&raParams.Alphas[0], &e1)
	mul.Mul(&raParams.Alphas[1], &e2)
	iSecret.Add(&iSecret, &mul)

	// pseudonym C = G1 * 1/(H(epoch) - mr + i)
	epochHash := sys.hashToFr(epoch[:])

	var denom fr.Element
	denom.Sub(&epochHash, &raSig.Mr)
	denom.Add(&denom, &iSecret)
	if denom.IsZero() {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", ErrArithmetic)
	}
	denom.Inverse(&denom)
	cred.Pseudonym.ScalarMultiplication(&sys.G1, denom.BigInt(new(big.Int)))

	for _, p := range []*bn254.G1Affine{
		&cred.SigmaHat, &cred.SigmaHatE1, &cred.SigmaHatE2,
		&cred.SigmaMinusE1, &cred.SigmaMinusE2, &cred.Pseudonym,
	} {
		if p.IsInfinity() {
			return Credential{}, Pi{}, fmt.Errorf("prove: %w", ErrArithmetic)
		}
	}

	// blinding scalars, one per witness
	rv, err := RandomScalar(rng)
	if err != nil {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", err)
	}
	rmr, err := RandomScalar(rng)
	if err != nil {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", err)
	}
	ri, err := RandomScalar(rng)
	if err != nil {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", err)
	}
	re1, err := RandomScalar(rng)
	if err != nil {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", err)
	}
	re2, err := RandomScalar(rng)
	if err != nil {
		return Credential{}, Pi{}, fmt.Errorf("prove: %w", err)
	}
	rmz := make(map[int]fr.Element, numHidden)
	for it := 0; it < numHidden; it++ {
		r, err := RandomScalar(rng)
		if err != nil {
			return Credential{}, Pi{}, fmt.Errorf("prove: %w", err)
		}
		rmz[it] = r
	}

	// t_verify = G1*r_v + sigma_xr*(v*r_mr) + sum_hidden sigma_x(it)*(v*r_mz(it))
	var tVerifyJac bn254.G1Jac
	tVerifyJac.FromAffine(&sys.G1)
	tVerifyJac.ScalarMultiplication(&tVerifyJac, rv.BigInt(new(big.Int)))
	mul.Mul(&v, &rmr)
	addScaledG1(&tVerifyJac, &ieSig.RevocationSigma, &mul)
	for it := 0; it < numHidden; it++ {
		r := rmz[it]
		mul.Mul(&v, &r)
		addScaledG1(&tVerifyJac, &ieSig.AttributeSigmas[it], &mul)
	}
	tVerify := g1JacToAffine(&tVerifyJac)

	// t_revoke = C*(r_mr + r_i)
	mul.Add(&rmr, &ri)
	var tRevoke bn254.G1Affine
	tRevoke.ScalarMultiplication(&cred.Pseudonym, mul.BigInt(new(big.Int)))

	// t_sig = G1*r_i + h(0)*r_e1 + h(1)*r_e2
	var tSigJac bn254.G1Jac
	tSigJac.FromAffine(&sys.G1)
	tSigJac.ScalarMultiplication(&tSigJac, ri.BigInt(new(big.Int)))
	addScaledG1(&tSigJac, &raParams.H[0], &re1)
	addScaledG1(&tSigJac, &raParams.H[1], &re2)
	tSig := g1JacToAffine(&tSigJac)

	// t_sig1 = G1*r_v + sigma_hat_e1*r_e1
	var tSig1Jac bn254.G1Jac
	tSig1Jac.FromAffine(&sys.G1)
	tSig1Jac.ScalarMultiplication(&tSig1Jac, rv.BigInt(new(big.Int)))
	addScaledG1(&tSig1Jac, &cred.SigmaHatE1, &re1)
	tSig1 := g1JacToAffine(&tSig1Jac)

	// t_sig2 = G1*r_v + sigma_hat_e2*r_e2
	var tSig2Jac bn254.G1Jac
	tSig2Jac.FromAffine(&sys.G1)
	tSig2Jac.ScalarMultiplication(&tSig2Jac, rv.BigInt(new(big.Int)))
	addScaledG1(&tSig2Jac, &cred.SigmaHatE2, &re2)
	tSig2 := g1JacToAffine(&tSig2Jac)

	// e <-- H(t values || credential || nonce)
	e := sys.hashToFr(
		encodeG1(&tVerify), encodeG1(&tRevoke),
		encodeG1(&tSig), encodeG1(&tSig1), encodeG1(&tSig2),
		encodeG1(&cred.SigmaHat), encodeG1(&cred.SigmaHatE1), encodeG1(&cred.SigmaHatE2),
		encodeG1(&cred.SigmaMinusE1), encodeG1(&cred.SigmaMinusE2),
		encodeG1(&cred.Pseudonym), nonce[:],
	)

	// responses s = r + e*w for witnesses
	// (v, -mr, i, -e1, -e2, -m(it) hidden)
	pi := Pi{E: e, SMz: make(map[int]fr.Element, numHidden)}
	var term fr.Element

	term.Mul(&e, &v)
	pi.SV.Add(&rv, &term)

	term.Mul(&e, &raSig.Mr)
	pi.SMr.Sub(&rmr, &term)

	term.Mul(&e, &iSecret)
	pi.SI.Add(&ri, &term)

	term.Mul(&e, &e1)
	pi.SE1.Sub(&re1, &term)

	term.Mul(&e, &e2)
	pi.SE2.Sub(&re2, &term)

	for it := 0; it < numHidden; it++ {
		m := attributeToFr(attrs[it].Value)
		term.Mul(&e, &m)

		r := rmz[it]
		var s fr.Element
		s.Sub(&r, &term)
		pi.SMz[it] = s
	}

	return cred, pi, nil
}
