package rkvac

import (
	"sort"

	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const pointSize = bn254.SizeOfG1AffineCompressed

// Marshal serializes the signature as mr followed by the compressed sigma.
func (s *RaSignature) Marshal() []byte {
	var result []byte

	mr := s.Mr.Bytes()
	result = append(result, mr[:]...)
	sigma := s.Sigma.Bytes()
	result = append(result, sigma[:]...)

	return result
}

// Unmarshal parses a signature produced by Marshal.
func (s *RaSignature) Unmarshal(data []byte) error {
	if len(data) != ECSize+pointSize {
		return ErrInvalidSignatureData
	}

	if err := s.Mr.SetBytesCanonical(data[:ECSize]); err != nil {
		return ErrInvalidSignatureData
	}
	if err := s.Sigma.Unmarshal(data[ECSize:]); err != nil {
		return ErrInvalidSignatureData
	}

	return nil
}

// Marshal serializes the signature as sigma, the revocation sigma, then the
// count-prefixed attribute sigmas.
func (s *IssuerSignature) Marshal() []byte {
	var result []byte

	sigma := s.Sigma.Bytes()
	result = append(result, sigma[:]...)
	revocationSigma := s.RevocationSigma.Bytes()
	result = append(result, revocationSigma[:]...)

	result = append(result, byte(len(s.AttributeSigmas)))
	for i := range s.AttributeSigmas {
		b := s.AttributeSigmas[i].Bytes()
		result = append(result, b[:]...)
	}

	return result
}

// Unmarshal parses a signature produced by Marshal.
func (s *IssuerSignature) Unmarshal(data []byte) error {
	if len(data) < 2*pointSize+1 {
		return ErrInvalidSignatureData
	}

	offset := 0
	if err := s.Sigma.Unmarshal(data[offset : offset+pointSize]); err != nil {
		return ErrInvalidSignatureData
	}
	offset += pointSize

	if err := s.RevocationSigma.Unmarshal(data[offset : offset+pointSize]); err != nil {
		return ErrInvalidSignatureData
	}
	offset += pointSize

	count := int(data[offset])
	offset++
	if count == 0 || count > MaxAttributes || len(data) != offset+count*pointSize {
		return ErrInvalidSignatureData
	}

	s.AttributeSigmas = make([]bn254.G1Affine, count)
	for i := 0; i < count; i++ {
		if err := s.AttributeSigmas[i].Unmarshal(data[offset : offset+pointSize]); err != nil {
			return ErrInvalidSignatureData
		}
		offset += pointSize
	}

	return nil
}

// Marshal serializes the credential as its six compressed points in protocol
// order.
func (c *Credential) Marshal() []byte {
	var result []byte

	for _, p := range []*bn254.G1Affine{
		&c.SigmaHat, &c.SigmaHatE1, &c.SigmaHatE2,
		&c.SigmaMinusE1, &c.SigmaMinusE2, &c.Pseudonym,
	} {
		b := p.Bytes()
		result = append(result, b[:]...)
	}

	return result
}

// Unmarshal parses a credential produced by Marshal.
func (c *Credential) Unmarshal(data []byte) error {
	if len(data) != 6*pointSize {
		return ErrInvalidProofData
	}

	offset := 0
	for _, p := range []*bn254.G1Affine{
		&c.SigmaHat, &c.SigmaHatE1, &c.SigmaHatE2,
		&c.SigmaMinusE1, &c.SigmaMinusE2, &c.Pseudonym,
	} {
		if err := p.Unmarshal(data[offset : offset+pointSize]); err != nil {
			return ErrInvalidProofData
		}
		offset += pointSize
	}

	return nil
}

// Marshal serializes the proof: the challenge, the five fixed responses,
// then the count-prefixed hidden-attribute responses tagged with their
// attribute index in ascending order.
func (p *Pi) Marshal() []byte {
	var result []byte

	for _, s := range []*fr.Element{&p.E, &p.SV, &p.SMr, &p.SI, &p.SE1, &p.SE2} {
		b := s.Bytes()
		result = append(result, b[:]...)
	}

	indices := make([]int, 0, len(p.SMz))
	for idx := range p.SMz {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	result = append(result, byte(len(indices)))
	for _, idx := range indices {
		result = append(result, byte(idx>>24), byte(idx>>16), byte(idx>>8), byte(idx))

		s := p.SMz[idx]
		b := s.Bytes()
		result = append(result, b[:]...)
	}

	return result
}

// Unmarshal parses a proof produced by Marshal.
func (p *Pi) Unmarshal(data []byte) error {
	if len(data) < 6*ECSize+1 {
		return ErrInvalidProofData
	}

	offset := 0
	for _, s := range []*fr.Element{&p.E, &p.SV, &p.SMr, &p.SI, &p.SE1, &p.SE2} {
		if err := s.SetBytesCanonical(data[offset : offset+ECSize]); err != nil {
			return ErrInvalidProofData
		}
		offset += ECSize
	}

	count := int(data[offset])
	offset++
	if count > MaxAttributes || len(data) != offset+count*(4+ECSize) {
		return ErrInvalidProofData
	}

	p.SMz = make(map[int]fr.Element, count)
	for i := 0; i < count; i++ {
		idx := int(data[offset])<<24 | int(data[offset+1])<<16 |
			int(data[offset+2])<<8 | int(data[offset+3])
		offset += 4

		var s fr.Element
		if err := s.SetBytesCanonical(data[offset : offset+ECSize]); err != nil {
			return ErrInvalidProofData
		}
		offset += ECSize

		p.SMz[idx] = s
	}

	return nil
}
