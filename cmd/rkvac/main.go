// Command rkvac runs a complete credential lifecycle locally: revocation
// authority and issuer setup, issuance, and one showing session verified
// with selective attribute disclosure.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/a-wear/rkvac-protocol-go/rkvac"
)

func main() {
	numAttributes := flag.Int("attributes", rkvac.MaxAttributes, "number of user attributes (1-9)")
	flag.IntVar(numAttributes, "a", rkvac.MaxAttributes, "shorthand for -attributes")
	numDisclosed := flag.Int("disclosed-attributes", 0, "number of attributes to disclose (0-attributes)")
	flag.IntVar(numDisclosed, "d", 0, "shorthand for -disclosed-attributes")
	verbose := flag.Bool("verbose", false, "log protocol progress")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	if *numAttributes < 1 || *numAttributes > rkvac.MaxAttributes {
		logger.Error().Int("attributes", *numAttributes).Msg("invalid number of user attributes (1-9)")
		os.Exit(1)
	}
	if *numDisclosed < 0 || *numDisclosed > *numAttributes {
		logger.Error().Int("disclosed", *numDisclosed).Int("attributes", *numAttributes).
			Msg("the number of disclosed attributes is greater than the number of user attributes")
		os.Exit(1)
	}

	logger.Info().Int("attributes", *numAttributes).Int("disclosed", *numDisclosed).Msg("starting session")

	sys := rkvac.SysSetup()

	// user identifier and attribute values
	id := make(rkvac.UserIdentifier, rkvac.MaxIDLength)
	if _, err := rand.Read(id); err != nil {
		logger.Error().Err(err).Msg("cannot generate the user identifier")
		os.Exit(1)
	}
	attrs := make(rkvac.Attributes, *numAttributes)
	for i := range attrs {
		if _, err := rand.Read(attrs[i].Value[:]); err != nil {
			logger.Error().Err(err).Msg("cannot generate the user attributes")
			os.Exit(1)
		}
	}

	raParams, raKeys, err := rkvac.RaSetup(sys, rand.Reader)
	if err != nil {
		logger.Error().Err(err).Msg("cannot initialize the revocation authority")
		os.Exit(1)
	}
	logger.Info().Int("k", raParams.K).Int("j", raParams.J).Msg("revocation authority ready")

	raSig, err := rkvac.RaMac(sys, raKeys.PrivateKey, id, rand.Reader)
	if err != nil {
		logger.Error().Err(err).Msg("cannot compute the revocation authority MAC")
		os.Exit(1)
	}

	ieKeys, err := rkvac.IssuerSetup(*numAttributes, rand.Reader)
	if err != nil {
		logger.Error().Err(err).Msg("cannot initialize the issuer")
		os.Exit(1)
	}

	ieSig, err := rkvac.Issue(sys, ieKeys, id, attrs, raKeys.PublicKey, raSig)
	if err != nil {
		logger.Error().Err(err).Msg("cannot compute the user attributes signature")
		os.Exit(1)
	}
	logger.Info().Msg("credential issued")

	nonce, epoch, err := rkvac.GenerateNonceEpoch(rand.Reader)
	if err != nil {
		logger.Error().Err(err).Msg("cannot generate nonce or epoch")
		os.Exit(1)
	}

	cred, pi, err := rkvac.ComputeProofOfKnowledge(sys, raParams, raSig, ieSig,
		attrs, *numDisclosed, nonce, epoch, rand.Reader)
	if err != nil {
		logger.Error().Err(err).Msg("cannot compute the user proof of knowledge")
		os.Exit(1)
	}
	logger.Info().Msg("proof of knowledge computed")

	err = rkvac.VerifyProofOfKnowledge(sys, raParams, raKeys.PublicKey, ieKeys,
		nonce, epoch, attrs, cred, pi, nil)
	if err != nil {
		logger.Error().Err(err).Msg("cannot verify the user proof of knowledge")
		os.Exit(1)
	}

	fmt.Println("OK!")
}
