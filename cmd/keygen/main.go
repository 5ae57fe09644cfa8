// Command keygen generates revocation authority and issuer key material and
// writes it to a JSON file. Intended for test deployments; key custody and
// distribution are out of scope.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/rs/zerolog"

	"github.com/a-wear/rkvac-protocol-go/rkvac"
)

type keyFile struct {
	AttributeCount int      `json:"attributeCount"`
	RaPrivateKey   string   `json:"raPrivateKey"`
	RaPublicKey    string   `json:"raPublicKey"`
	IssuerKey      string   `json:"issuerKey"`
	AttributeKeys  []string `json:"attributeKeys"`
	RevocationKey  string   `json:"revocationKey"`
}

func scalarB64(e fr.Element) string {
	b := e.Bytes()
	return base64.StdEncoding.EncodeToString(b[:])
}

func main() {
	attributeCount := flag.Int("attributes", rkvac.MaxAttributes, "number of attributes the issuer key covers")
	outputFile := flag.String("output", "keys.json", "output file for the key material")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	sys := rkvac.SysSetup()

	_, raKeys, err := rkvac.RaSetup(sys, rand.Reader)
	if err != nil {
		logger.Error().Err(err).Msg("cannot generate revocation authority keys")
		os.Exit(1)
	}

	ieKeys, err := rkvac.IssuerSetup(*attributeCount, rand.Reader)
	if err != nil {
		logger.Error().Err(err).Msg("cannot generate issuer keys")
		os.Exit(1)
	}

	out := keyFile{
		AttributeCount: *attributeCount,
		RaPrivateKey:   scalarB64(raKeys.PrivateKey.SK),
		RaPublicKey:    base64.StdEncoding.EncodeToString(raKeys.PublicKey.PK.Marshal()),
		IssuerKey:      scalarB64(ieKeys.SK),
		RevocationKey:  scalarB64(ieKeys.RevocationSK),
	}
	for _, sk := range ieKeys.AttributeSKs {
		out.AttributeKeys = append(out.AttributeKeys, scalarB64(sk))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("cannot marshal key material")
		os.Exit(1)
	}
	if err := os.WriteFile(*outputFile, data, 0600); err != nil {
		logger.Error().Err(err).Msg("cannot write key file")
		os.Exit(1)
	}

	fmt.Printf("Key material for %d attributes saved to %s\n", *attributeCount, *outputFile)
}
