package rkvac

import (
	"errors"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Errors shared across the protocol roles. The verifier deliberately maps
// every failed sub-check to ErrProofInvalid so that a negative result never
// reveals which equation broke.
var (
	ErrCurveInit            = errors.New("cannot initialise curve parameters")
	ErrConfigInvalid        = errors.New("invalid protocol configuration")
	ErrSampleFailed         = errors.New("randomness sampling failed")
	ErrArithmetic           = errors.New("curve arithmetic produced an invalid point")
	ErrRaSignatureInvalid   = errors.New("revocation authority signature is invalid")
	ErrProofInvalid         = errors.New("proof of knowledge is invalid")
	ErrInvalidSignatureData = errors.New("invalid signature data")
	ErrInvalidProofData     = errors.New("invalid proof data")
)

// Nonce is a verifier-chosen random value mixed into the Fiat-Shamir
// transcript of a single showing session.
type Nonce [NonceLength]byte

// Epoch is the 4-byte time bucket scoping pseudonym unlinkability.
// Byte 0 is the day of the month, byte 1 the zero-based month, bytes 2-3
// the year since 1900 in big-endian order.
type Epoch [EpochLength]byte

// UserIdentifier is the user's long-term identifier as seen by the
// revocation authority and the issuer. At most MaxIDLength bytes.
type UserIdentifier []byte

// Attribute is a single 32-byte attribute value together with its
// disclosure flag for the current showing session.
type Attribute struct {
	Value     [ECSize]byte
	Disclosed bool
}

// Attributes is the ordered attribute set bound to one credential.
type Attributes []Attribute

// RaParams holds the revocation authority's public parameters: the alpha
// base points and the pre-signed randomizer set shared with every user.
type RaParams struct {
	K, J int

	Alphas []fr.Element     // alpha_j
	H      []bn254.G1Affine // h_j = G1 * alpha_j

	Randomizers      []fr.Element     // e_k
	RandomizerSigmas []bn254.G1Affine // sigma_e_k = G1 * 1/(e_k + sk)
}

// RaPrivateKey is the revocation authority MAC key.
type RaPrivateKey struct {
	SK fr.Element
}

// RaPublicKey is the G2 half used in pairing checks.
type RaPublicKey struct {
	PK bn254.G2Affine
}

// RaKeys bundles the revocation authority key pair.
type RaKeys struct {
	PrivateKey RaPrivateKey
	PublicKey  RaPublicKey
}

// RaSignature is the weak Boneh-Boyen MAC over a user identifier:
// sigma = G1 * 1/(H(mr||id) + sk) for a fresh random mr.
type RaSignature struct {
	Mr    fr.Element
	Sigma bn254.G1Affine
}

// IssuerKeys holds the issuer's private scalars. The verifier keeps a copy;
// there is no issuer public key in a keyed-verification scheme.
type IssuerKeys struct {
	SK           fr.Element   // x(0)
	AttributeSKs []fr.Element // x(1)...x(n)
	RevocationSK fr.Element   // x(r)
}

// IssuerSignature is the issuer's MAC over the attribute set and the
// revocation handle, plus the per-key auxiliary points the user needs to
// build showing commitments without learning any issuer key.
type IssuerSignature struct {
	Sigma           bn254.G1Affine
	AttributeSigmas []bn254.G1Affine // sigma * x(i)
	RevocationSigma bn254.G1Affine   // sigma * x(r)
}

// Credential is the randomized credential presented in one showing session.
// Every point is blinded with a fresh scalar and must never be reused.
type Credential struct {
	Pseudonym    bn254.G1Affine // C
	SigmaHat     bn254.G1Affine
	SigmaHatE1   bn254.G1Affine
	SigmaHatE2   bn254.G1Affine
	SigmaMinusE1 bn254.G1Affine
	SigmaMinusE2 bn254.G1Affine
}

// Pi is the proof of knowledge accompanying a Credential: the Fiat-Shamir
// challenge and one response per hidden witness. SMz holds responses for
// hidden attributes only, keyed by attribute index.
type Pi struct {
	E   fr.Element
	SV  fr.Element
	SMr fr.Element
	SI  fr.Element
	SE1 fr.Element
	SE2 fr.Element
	SMz map[int]fr.Element
}

// hiddenCount returns the number of non-disclosed attributes.
func (a Attributes) hiddenCount() int {
	n := 0
	for _, attr := range a {
		if !attr.Disclosed {
			n++
		}
	}
	return n
}
