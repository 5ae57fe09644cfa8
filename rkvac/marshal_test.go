package rkvac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRoundTrip(t *testing.T) {
	s := newTestSession(t, 4, 2, "marshal-credential")

	raw := s.cred.Marshal()
	require.Len(t, raw, 6*pointSize)

	var got Credential
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, s.cred, got)

	assert.ErrorIs(t, got.Unmarshal(raw[:len(raw)-1]), ErrInvalidProofData)
}

func TestPiRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n, d int
	}{
		{"hidden responses present", 4, 2},
		{"empty hidden set", 3, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, tc.n, tc.d, "marshal-pi-"+tc.name)

			raw := s.pi.Marshal()
			var got Pi
			require.NoError(t, got.Unmarshal(raw))
			assert.Equal(t, s.pi, got)

			assert.ErrorIs(t, got.Unmarshal(raw[:6*ECSize]), ErrInvalidProofData)
			assert.ErrorIs(t, got.Unmarshal(append(raw, 0)), ErrInvalidProofData)
		})
	}
}

func TestRaSignatureRoundTrip(t *testing.T) {
	s := newTestSession(t, 2, 0, "marshal-ra-sig")

	raw := s.raSig.Marshal()
	var got RaSignature
	require.NoError(t, got.Unmarshal(raw))
	assert.True(t, got.Mr.Equal(&s.raSig.Mr))
	assert.True(t, got.Sigma.Equal(&s.raSig.Sigma))

	assert.ErrorIs(t, got.Unmarshal(raw[:ECSize]), ErrInvalidSignatureData)
}

func TestIssuerSignatureRoundTrip(t *testing.T) {
	s := newTestSession(t, 4, 0, "marshal-ie-sig")

	raw := s.ieSig.Marshal()
	var got IssuerSignature
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, s.ieSig, got)

	// corrupt the attribute count
	raw[2*pointSize] = MaxAttributes + 1
	assert.ErrorIs(t, got.Unmarshal(raw), ErrInvalidSignatureData)
}
