package rkvac

import (
	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// hashToFr hashes the concatenation of chunks and maps the digest to Fr.
//
// The digest is left-padded with zero bytes to ECSize, read as a big-endian
// integer and reduced modulo the group order. With the default SHA-1 digest
// this is the 12-zero-byte prepend the smartcard applet expects; the padding
// is a wire invariant and must stay byte-exact.
func (sys SystemParams) hashToFr(chunks ...[]byte) fr.Element {
	h := sys.hashNew()
	for _, c := range chunks {
		h.Write(c)
	}
	digest := h.Sum(nil)

	var buf [ECSize]byte
	copy(buf[ECSize-len(digest):], digest)

	var e fr.Element
	e.SetBytes(buf[:])
	return e
}

// encodeG1 returns the canonical fixed-length byte form of a G1 point used
// in hash transcripts. Prover and verifier must produce bit-identical
// encodings, so this is the only place a point is turned into transcript
// bytes.
func encodeG1(p *bn254.G1Affine) []byte {
	return p.Marshal()
}
