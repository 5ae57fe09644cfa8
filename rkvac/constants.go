package rkvac

// Protocol configuration. These values are part of the wire contract shared
// with the legacy smartcard applet and must not change between peers.
const (
	// MaxAttributes is the largest attribute set an issuer key covers.
	MaxAttributes = 9

	// MaxIDLength bounds the user identifier passed to the revocation
	// authority MAC.
	MaxIDLength = 16

	// ECSize is the byte width of a serialized Fr scalar.
	ECSize = 32

	// NonceLength is the byte length of a verifier nonce.
	NonceLength = 8

	// EpochLength is the byte length of a verifier epoch.
	EpochLength = 4

	// RevocationValueK is the number of pre-signed randomizers the
	// revocation authority publishes.
	RevocationValueK = 10

	// RevocationValueJ is the number of alpha base points. The showing
	// protocol binds the session secret to the first two.
	RevocationValueJ = 2

	// shaDigestLength and shaDigestPadding describe the default SHA-1
	// hash-to-Fr mapping: a 20-byte digest left-padded with 12 zero bytes
	// before reduction modulo the group order.
	shaDigestLength  = 20
	shaDigestPadding = ECSize - shaDigestLength
)
