package rkvac

import (
	"math/big"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// addScaledG1 accumulates base*scalar into acc.
func addScaledG1(acc *bn254.G1Jac, base *bn254.G1Affine, scalar *fr.Element) {
	var tmp bn254.G1Jac
	tmp.FromAffine(base)
	tmp.ScalarMultiplication(&tmp, scalar.BigInt(new(big.Int)))
	acc.AddAssign(&tmp)
}

// g1JacToAffine converts a G1 Jacobian point to affine.
func g1JacToAffine(p *bn254.G1Jac) bn254.G1Affine {
	var result bn254.G1Affine
	result.FromJacobian(p)
	return result
}
