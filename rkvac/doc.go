/*
Package rkvac implements a revocable keyed-verification anonymous credential
(RKVAC) protocol over the BN254 pairing-friendly curve.

Three cryptographic roles take part in a session:

 1. A revocation authority certifies a user's revocation handle with a
    weak Boneh-Boyen style MAC and publishes a set of pre-signed
    randomizers used to blind that handle during showing.
 2. An issuer signs the user's attributes together with the revocation
    handle, after checking the revocation authority's MAC with a pairing
    equation.
 3. A user proves, non-interactively via a Fiat-Shamir transformed
    sigma-protocol, possession of a valid issuer signature, a valid and
    unrevoked handle, and the values of any attributes the verifier asks
    to see, without revealing hidden attributes or a linkable identifier.

Verification is keyed: the verifier holds the issuer's private keys, so no
issuer public key exists and signatures are MACs in disguise.

A typical session:

	sys := rkvac.SysSetup()

	raParams, raKeys, _ := rkvac.RaSetup(sys, rand.Reader)
	raSig, _ := rkvac.RaMac(sys, raKeys.PrivateKey, id, rand.Reader)

	ieKeys, _ := rkvac.IssuerSetup(len(attrs), rand.Reader)
	ieSig, _ := rkvac.Issue(sys, ieKeys, id, attrs, raKeys.PublicKey, raSig)

	nonce, epoch, _ := rkvac.GenerateNonceEpoch(rand.Reader)
	cred, pi, _ := rkvac.ComputeProofOfKnowledge(sys, raParams, raSig, ieSig,
		attrs, disclosed, nonce, epoch, rand.Reader)

	err := rkvac.VerifyProofOfKnowledge(sys, raParams, raKeys.PublicKey,
		ieKeys, nonce, epoch, attrs, cred, pi, nil)

All hash-to-scalar conversions follow the legacy smartcard wire convention:
a SHA-1 digest left-padded with zero bytes to 32 bytes, read as a big-endian
integer and reduced modulo the group order. SysSetupWithHash upgrades the
digest when wire compatibility is not required.
*/
package rkvac
