package rkvac

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"
)

// drbgReader is an HMAC-SHA256 generator in the style of RFC 6979. It lets
// tests and vector generation reproduce identical credentials and proofs
// bit-for-bit from a seed. It is not a substitute for crypto/rand in
// production use.
type drbgReader struct {
	k []byte
	v []byte
}

// NewDeterministicRNG returns a deterministic byte stream derived from seed,
// suitable wherever the protocol functions accept an io.Reader.
func NewDeterministicRNG(seed []byte) io.Reader {
	d := &drbgReader{
		k: make([]byte, sha256.Size),
		v: make([]byte, sha256.Size),
	}
	for i := range d.v {
		d.v[i] = 0x01
	}

	// K = HMAC(K, V || 0x00 || seed); V = HMAC(K, V)
	mac := hmac.New(sha256.New, d.k)
	mac.Write(d.v)
	mac.Write([]byte{0x00})
	mac.Write(seed)
	d.k = mac.Sum(nil)

	mac = hmac.New(sha256.New, d.k)
	mac.Write(d.v)
	d.v = mac.Sum(nil)

	return d
}

// Read fills p with the next bytes of the deterministic stream. It never
// fails.
func (d *drbgReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		mac := hmac.New(sha256.New, d.k)
		mac.Write(d.v)
		d.v = mac.Sum(nil)

		n += copy(p[n:], d.v)
	}
	return len(p), nil
}
