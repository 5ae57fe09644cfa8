package rkvac

import (
	"fmt"
	"io"
	"math/big"
	"time"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// GenerateNonceEpoch draws a fresh session nonce from rng and derives the
// current epoch from the local clock.
func GenerateNonceEpoch(rng io.Reader) (Nonce, Epoch, error) {
	var nonce Nonce
	if _, err := io.ReadFull(rng, nonce[:]); err != nil {
		return Nonce{}, Epoch{}, fmt.Errorf("%w: %v", ErrSampleFailed, err)
	}
	return nonce, EpochFromTime(time.Now()), nil
}

// EpochFromTime encodes t as a protocol epoch: day of the month, zero-based
// month, then the year since 1900 as two big-endian bytes.
func EpochFromTime(t time.Time) Epoch {
	year := t.Year() - 1900
	return Epoch{
		byte(t.Day()),
		byte(int(t.Month()) - 1),
		byte(year >> 8),
		byte(year),
	}
}

// VerifyProofOfKnowledge checks a showing session. It reconstructs the
// prover's commitments from the responses, recomputes the Fiat-Shamir
// challenge, checks the pairing equations binding the blinded randomizer
// signatures to the revocation authority key, and finally tests the
// pseudonym against the revocation list (rl may be nil to skip).
//
// The result is all-or-nothing: any failed sub-check returns ErrProofInvalid
// with no indication of which equation broke.
func VerifyProofOfKnowledge(sys SystemParams, raParams RaParams, raPK RaPublicKey,
	ieKeys IssuerKeys, nonce Nonce, epoch Epoch, attrs Attributes,
	cred Credential, pi Pi, rl *RevocationList) error {

	n := len(attrs)
	if n == 0 || n > MaxAttributes || n != len(ieKeys.AttributeSKs) {
		return fmt.Errorf("verify: %w", ErrConfigInvalid)
	}
	if raParams.J < RevocationValueJ || len(raParams.H) != raParams.J {
		return fmt.Errorf("verify: %w", ErrConfigInvalid)
	}
	if pi.SMz == nil && attrs.hiddenCount() > 0 {
		return fmt.Errorf("verify: %w", ErrProofInvalid)
	}

	var negE fr.Element
	negE.Neg(&pi.E)
	negEBig := negE.BigInt(new(big.Int))

	var mul fr.Element

	// t_verify = sigma_hat*(-e*x(0)) + G1*s_v + sigma_hat*(x(r)*s_mr)
	//          + sum_hidden sigma_hat*(x(it)*s_mz(it))
	//          + sum_disclosed sigma_hat*(-e*x(it)*m(it))
	var tVerifyJac bn254.G1Jac
	tVerifyJac.FromAffine(&cred.SigmaHat)
	mul.Mul(&negE, &ieKeys.SK)
	tVerifyJac.ScalarMultiplication(&tVerifyJac, mul.BigInt(new(big.Int)))
	addScaledG1(&tVerifyJac, &sys.G1, &pi.SV)
	mul.Mul(&ieKeys.RevocationSK, &pi.SMr)
	addScaledG1(&tVerifyJac, &cred.SigmaHat, &mul)
	for it := 0; it < n; it++ {
		if attrs[it].Disclosed {
			continue
		}
		smz, ok := pi.SMz[it]
		if !ok {
			return fmt.Errorf("verify: %w", ErrProofInvalid)
		}
		mul.Mul(&ieKeys.AttributeSKs[it], &smz)
		addScaledG1(&tVerifyJac, &cred.SigmaHat, &mul)
	}
	for it := 0; it < n; it++ {
		if !attrs[it].Disclosed {
			continue
		}
		m := attributeToFr(attrs[it].Value)
		mul.Mul(&negE, &ieKeys.AttributeSKs[it])
		mul.Mul(&mul, &m)
		addScaledG1(&tVerifyJac, &cred.SigmaHat, &mul)
	}
	tVerify := g1JacToAffine(&tVerifyJac)

	// H(epoch), -H(epoch)
	epochHash := sys.hashToFr(epoch[:])
	var epochHashNeg fr.Element
	epochHashNeg.Neg(&epochHash)

	// t_revoke = (G1 + C*(-H(epoch)))*(-e) + C*s_mr + C*s_i
	var tRevokeJac bn254.G1Jac
	var chAff bn254.G1Affine
	chAff.ScalarMultiplication(&cred.Pseudonym, epochHashNeg.BigInt(new(big.Int)))
	chAff.Add(&sys.G1, &chAff)
	tRevokeJac.FromAffine(&chAff)
	tRevokeJac.ScalarMultiplication(&tRevokeJac, negEBig)
	addScaledG1(&tRevokeJac, &cred.Pseudonym, &pi.SMr)
	addScaledG1(&tRevokeJac, &cred.Pseudonym, &pi.SI)
	tRevoke := g1JacToAffine(&tRevokeJac)

	// t_sig = G1*s_i + h(0)*s_e1 + h(1)*s_e2
	var tSigJac bn254.G1Jac
	tSigJac.FromAffine(&sys.G1)
	tSigJac.ScalarMultiplication(&tSigJac, pi.SI.BigInt(new(big.Int)))
	addScaledG1(&tSigJac, &raParams.H[0], &pi.SE1)
	addScaledG1(&tSigJac, &raParams.H[1], &pi.SE2)
	tSig := g1JacToAffine(&tSigJac)

	// t_sig1 = sigma_minus_e1*(-e) + sigma_hat_e1*s_e1 + G1*s_v
	var tSig1Jac bn254.G1Jac
	tSig1Jac.FromAffine(&cred.SigmaMinusE1)
	tSig1Jac.ScalarMultiplication(&tSig1Jac, negEBig)
	addScaledG1(&tSig1Jac, &cred.SigmaHatE1, &pi.SE1)
	addScaledG1(&tSig1Jac, &sys.G1, &pi.SV)
	tSig1 := g1JacToAffine(&tSig1Jac)

	// t_sig2 = sigma_minus_e2*(-e) + sigma_hat_e2*s_e2 + G1*s_v
	var tSig2Jac bn254.G1Jac
	tSig2Jac.FromAffine(&cred.SigmaMinusE2)
	tSig2Jac.ScalarMultiplication(&tSig2Jac, negEBig)
	addScaledG1(&tSig2Jac, &cred.SigmaHatE2, &pi.SE2)
	addScaledG1(&tSig2Jac, &sys.G1, &pi.SV)
	tSig2 := g1JacToAffine(&tSig2Jac)

	// e' <-- H(t values || credential || nonce)
	expected := sys.hashToFr(
		encodeG1(&tVerify), encodeG1(&tRevoke),
		encodeG1(&tSig), encodeG1(&tSig1), encodeG1(&tSig2),
		encodeG1(&cred.SigmaHat), encodeG1(&cred.SigmaHatE1), encodeG1(&cred.SigmaHatE2),
		encodeG1(&cred.SigmaMinusE1), encodeG1(&cred.SigmaMinusE2),
		encodeG1(&cred.Pseudonym), nonce[:],
	)
	if !expected.Equal(&pi.E) {
		return fmt.Errorf("verify: %w", ErrProofInvalid)
	}

	// e(sigma_minus_e, G2) ?= e(sigma_hat_e, ra_pk), checked as a product
	// with the second pairing negated
	var negG2 bn254.G2Affine
	negG2.Neg(&sys.G2)

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{cred.SigmaMinusE1, cred.SigmaHatE1},
		[]bn254.G2Affine{negG2, raPK.PK},
	)
	if err != nil || !ok {
		return fmt.Errorf("verify: %w", ErrProofInvalid)
	}

	ok, err = bn254.PairingCheck(
		[]bn254.G1Affine{cred.SigmaMinusE2, cred.SigmaHatE2},
		[]bn254.G2Affine{negG2, raPK.PK},
	)
	if err != nil || !ok {
		return fmt.Errorf("verify: %w", ErrProofInvalid)
	}

	// pseudonym must not be blacklisted for this epoch
	if rl != nil && rl.Contains(epoch, cred.Pseudonym) {
		return fmt.Errorf("verify: %w", ErrProofInvalid)
	}

	return nil
}
