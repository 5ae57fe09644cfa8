package rkvac

import (
	"math/big"
	"sync"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

type pseudonymKey [bn254.SizeOfG1AffineCompressed]byte

// RevocationList is the verifier-side blacklist of pseudonyms, bucketed per
// epoch. A user's pseudonym depends on which randomizer pair the showing
// picked, so revoking one handle blacklists all k*k candidate pseudonyms for
// the epoch. Safe for concurrent use.
type RevocationList struct {
	mu      sync.RWMutex
	revoked map[Epoch]map[pseudonymKey]struct{}
}

// NewRevocationList returns an empty revocation list.
func NewRevocationList() *RevocationList {
	return &RevocationList{
		revoked: make(map[Epoch]map[pseudonymKey]struct{}),
	}
}

// RevokeHandle blacklists, for the given epoch, every pseudonym a user
// holding the revocation handle mr can produce:
//
//	C(a,b) = G1 * 1/(H(epoch) - mr + alpha(0)*e(a) + alpha(1)*e(b))
//
// for every randomizer pair (a, b). Only the revocation authority knows mr,
// the alphas and the randomizers, so this expansion is its job; verifiers
// receive the resulting list.
func (rl *RevocationList) RevokeHandle(sys SystemParams, raParams RaParams, mr fr.Element, epoch Epoch) {
	epochHash := sys.hashToFr(epoch[:])

	var base fr.Element
	base.Sub(&epochHash, &mr)

	entries := make(map[pseudonymKey]struct{}, raParams.K*raParams.K)
	var term1, term2, denom fr.Element
	var c bn254.G1Affine
	for a := 0; a < raParams.K; a++ {
		term1.Mul(&raParams.Alphas[0], &raParams.Randomizers[a])
		for b := 0; b < raParams.K; b++ {
			term2.Mul(&raParams.Alphas[1], &raParams.Randomizers[b])
			denom.Add(&base, &term1)
			denom.Add(&denom, &term2)
			if denom.IsZero() {
				continue
			}
			denom.Inverse(&denom)

			c.ScalarMultiplication(&sys.G1, denom.BigInt(new(big.Int)))
			entries[pseudonymKey(c.Bytes())] = struct{}{}
		}
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	bucket, ok := rl.revoked[epoch]
	if !ok {
		bucket = make(map[pseudonymKey]struct{}, len(entries))
		rl.revoked[epoch] = bucket
	}
	for k := range entries {
		bucket[k] = struct{}{}
	}
}

// Contains reports whether the pseudonym is blacklisted for the epoch.
func (rl *RevocationList) Contains(epoch Epoch, pseudonym bn254.G1Affine) bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	bucket, ok := rl.revoked[epoch]
	if !ok {
		return false
	}
	_, hit := bucket[pseudonymKey(pseudonym.Bytes())]
	return hit
}
