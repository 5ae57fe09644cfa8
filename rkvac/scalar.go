package rkvac

import (
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// RandomScalar draws a uniformly random non-zero element of Fr from rng.
//
// Rejection sampling with a masked top byte keeps the distribution uniform
// without modulo bias. Redraws on an out-of-range or zero sample stay inside
// this call; a failing reader is a hard ErrSampleFailed.
func RandomScalar(rng io.Reader) (fr.Element, error) {
	var e fr.Element

	order := fr.Modulus()
	byteLen := (order.BitLen() + 7) / 8

	// mask for the most significant byte
	bits := order.BitLen() % 8
	mask := byte(0xFF)
	if bits > 0 {
		mask = byte(1<<bits) - 1
	}

	buf := make([]byte, byteLen)
	v := new(big.Int)

	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return e, fmt.Errorf("%w: %v", ErrSampleFailed, err)
		}
		buf[0] &= mask

		v.SetBytes(buf)
		if v.Sign() != 0 && v.Cmp(order) < 0 {
			break
		}
	}

	e.SetBigInt(v)
	return e, nil
}

// randomIndex draws a uniform index in [0, n) from rng.
func randomIndex(rng io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, ErrConfigInvalid
	}

	var buf [8]byte
	limit := (1 << 63) / uint64(n) * uint64(n)

	for {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrSampleFailed, err)
		}
		v := uint64(buf[0])<<56 | uint64(buf[1])<<48 | uint64(buf[2])<<40 | uint64(buf[3])<<32 |
			uint64(buf[4])<<24 | uint64(buf[5])<<16 | uint64(buf[6])<<8 | uint64(buf[7])
		v &= 1<<63 - 1
		if v < limit {
			return int(v % uint64(n)), nil
		}
	}
}

// attributeToFr maps a 32-byte attribute value to Fr, big-endian reduced
// modulo the group order, matching the issuance-side conversion.
func attributeToFr(value [ECSize]byte) fr.Element {
	var e fr.Element
	e.SetBytes(value[:])
	return e
}
