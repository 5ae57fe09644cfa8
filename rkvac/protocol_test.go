package rkvac

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSession holds everything one full protocol run produces.
type testSession struct {
	sys      SystemParams
	id       UserIdentifier
	attrs    Attributes
	raParams RaParams
	raKeys   RaKeys
	raSig    RaSignature
	ieKeys   IssuerKeys
	ieSig    IssuerSignature
	nonce    Nonce
	epoch    Epoch
	cred     Credential
	pi       Pi
}

var testEpochTime = time.Date(2020, time.March, 17, 12, 0, 0, 0, time.UTC)

// newTestSession runs the whole pipeline with a deterministic RNG.
func newTestSession(t *testing.T, n, d int, seed string) *testSession {
	t.Helper()

	rng := NewDeterministicRNG([]byte(seed))
	s := &testSession{sys: SysSetup()}

	s.id = make(UserIdentifier, MaxIDLength)
	_, err := io.ReadFull(rng, s.id)
	require.NoError(t, err)

	s.attrs = make(Attributes, n)
	for i := range s.attrs {
		_, err := io.ReadFull(rng, s.attrs[i].Value[:])
		require.NoError(t, err)
	}

	s.raParams, s.raKeys, err = RaSetup(s.sys, rng)
	require.NoError(t, err)

	s.raSig, err = RaMac(s.sys, s.raKeys.PrivateKey, s.id, rng)
	require.NoError(t, err)

	s.ieKeys, err = IssuerSetup(n, rng)
	require.NoError(t, err)

	s.ieSig, err = Issue(s.sys, s.ieKeys, s.id, s.attrs, s.raKeys.PublicKey, s.raSig)
	require.NoError(t, err)

	_, err = io.ReadFull(rng, s.nonce[:])
	require.NoError(t, err)
	s.epoch = EpochFromTime(testEpochTime)

	s.cred, s.pi, err = ComputeProofOfKnowledge(s.sys, s.raParams, s.raSig, s.ieSig,
		s.attrs, d, s.nonce, s.epoch, rng)
	require.NoError(t, err)

	return s
}

func (s *testSession) verify(rl *RevocationList) error {
	return VerifyProofOfKnowledge(s.sys, s.raParams, s.raKeys.PublicKey, s.ieKeys,
		s.nonce, s.epoch, s.attrs, s.cred, s.pi, rl)
}

func TestProveVerifyScenarios(t *testing.T) {
	tests := []struct {
		name string
		n, d int
	}{
		{"single hidden attribute", 1, 0},
		{"maximum hidden", MaxAttributes, 0},
		{"everything disclosed", MaxAttributes, MaxAttributes},
		{"partial disclosure", 4, 2},
		{"all but one disclosed", 5, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, tc.n, tc.d, "scenario-"+tc.name)

			require.NoError(t, s.verify(nil))
			assert.Len(t, s.pi.SMz, tc.n-tc.d)

			// disclosure is tail-biased
			for i, attr := range s.attrs {
				assert.Equal(t, i >= tc.n-tc.d, attr.Disclosed, "attribute %d", i)
			}
		})
	}
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	s := newTestSession(t, 4, 2, "tamper-smr")

	// flip one byte of s_mr on the wire
	raw := s.pi.Marshal()
	raw[2*ECSize+16] ^= 0x01

	var bad Pi
	require.NoError(t, bad.Unmarshal(raw))
	s.pi = bad

	assert.ErrorIs(t, s.verify(nil), ErrProofInvalid)
}

func TestVerifyRejectsTamperedHiddenResponse(t *testing.T) {
	s := newTestSession(t, 4, 2, "tamper-smz")

	smz := s.pi.SMz[0]
	var one fr.Element
	one.SetOne()
	smz.Add(&smz, &one)
	s.pi.SMz[0] = smz

	assert.ErrorIs(t, s.verify(nil), ErrProofInvalid)
}

func TestVerifyRejectsWrongRaKey(t *testing.T) {
	s := newTestSession(t, 4, 2, "wrong-ra-key")

	_, otherKeys, err := RaSetup(s.sys, NewDeterministicRNG([]byte("other-ra")))
	require.NoError(t, err)

	err = VerifyProofOfKnowledge(s.sys, s.raParams, otherKeys.PublicKey, s.ieKeys,
		s.nonce, s.epoch, s.attrs, s.cred, s.pi, nil)
	assert.ErrorIs(t, err, ErrProofInvalid)
}

func TestVerifyRejectsReplayedEpoch(t *testing.T) {
	s := newTestSession(t, 4, 2, "replay-epoch")

	s.epoch = EpochFromTime(testEpochTime.AddDate(0, 1, 0))
	assert.ErrorIs(t, s.verify(nil), ErrProofInvalid)
}

func TestVerifyRejectsFlippedDisclosedAttribute(t *testing.T) {
	s := newTestSession(t, 4, 2, "flip-disclosed")

	s.attrs[3].Value[0] ^= 0xFF
	assert.ErrorIs(t, s.verify(nil), ErrProofInvalid)
}

func TestProofsDifferAcrossNonces(t *testing.T) {
	s := newTestSession(t, 3, 1, "freshness")

	var otherNonce Nonce
	copy(otherNonce[:], s.nonce[:])
	otherNonce[0] ^= 0x01

	rng := NewDeterministicRNG([]byte("freshness-second-proof"))
	_, pi2, err := ComputeProofOfKnowledge(s.sys, s.raParams, s.raSig, s.ieSig,
		s.attrs, 1, otherNonce, s.epoch, rng)
	require.NoError(t, err)

	assert.False(t, s.pi.E.Equal(&pi2.E), "challenges must differ across nonces")
}

func TestDeterministicReproduction(t *testing.T) {
	s1 := newTestSession(t, 4, 2, "same-seed")
	s2 := newTestSession(t, 4, 2, "same-seed")

	assert.True(t, bytes.Equal(s1.cred.Marshal(), s2.cred.Marshal()),
		"credentials must match bit for bit under the same seed")
	assert.True(t, bytes.Equal(s1.pi.Marshal(), s2.pi.Marshal()),
		"proofs must match bit for bit under the same seed")

	s3 := newTestSession(t, 4, 2, "different-seed")
	assert.False(t, bytes.Equal(s1.pi.Marshal(), s3.pi.Marshal()))
}

func TestProveRejectsBadConfig(t *testing.T) {
	s := newTestSession(t, 2, 0, "bad-config")

	rng := NewDeterministicRNG([]byte("bad-config-prove"))

	_, _, err := ComputeProofOfKnowledge(s.sys, s.raParams, s.raSig, s.ieSig,
		s.attrs, 3, s.nonce, s.epoch, rng)
	assert.ErrorIs(t, err, ErrConfigInvalid)

	_, _, err = ComputeProofOfKnowledge(s.sys, s.raParams, s.raSig, s.ieSig,
		nil, 0, s.nonce, s.epoch, rng)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestProveVerifyProperty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property sweep in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 12

	properties := gopter.NewProperties(parameters)

	properties.Property("honest proofs verify for every (n, d)", prop.ForAll(
		func(n int, dRaw int, seed int64) bool {
			d := dRaw % (n + 1)

			rng := NewDeterministicRNG([]byte{
				byte(seed >> 56), byte(seed >> 48), byte(seed >> 40), byte(seed >> 32),
				byte(seed >> 24), byte(seed >> 16), byte(seed >> 8), byte(seed),
				byte(n), byte(d),
			})
			sys := SysSetup()

			id := make(UserIdentifier, MaxIDLength)
			if _, err := io.ReadFull(rng, id); err != nil {
				return false
			}
			attrs := make(Attributes, n)
			for i := range attrs {
				if _, err := io.ReadFull(rng, attrs[i].Value[:]); err != nil {
					return false
				}
			}

			raParams, raKeys, err := RaSetup(sys, rng)
			if err != nil {
				return false
			}
			raSig, err := RaMac(sys, raKeys.PrivateKey, id, rng)
			if err != nil {
				return false
			}
			ieKeys, err := IssuerSetup(n, rng)
			if err != nil {
				return false
			}
			ieSig, err := Issue(sys, ieKeys, id, attrs, raKeys.PublicKey, raSig)
			if err != nil {
				return false
			}

			var nonce Nonce
			if _, err := io.ReadFull(rng, nonce[:]); err != nil {
				return false
			}
			epoch := EpochFromTime(testEpochTime)

			cred, pi, err := ComputeProofOfKnowledge(sys, raParams, raSig, ieSig,
				attrs, d, nonce, epoch, rng)
			if err != nil {
				return false
			}

			return VerifyProofOfKnowledge(sys, raParams, raKeys.PublicKey, ieKeys,
				nonce, epoch, attrs, cred, pi, nil) == nil
		},
		gen.IntRange(1, MaxAttributes),
		gen.IntRange(0, MaxAttributes),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
