// Command bench times proof generation and verification across attribute
// counts and renders the results as a PNG chart.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/a-wear/rkvac-protocol-go/rkvac"
)

func main() {
	iterations := flag.Int("iterations", 20, "iterations per attribute count")
	disclosed := flag.Int("disclosed", 0, "number of disclosed attributes (capped at the attribute count)")
	output := flag.String("output", "bench.png", "output chart file")
	flag.Parse()

	if *iterations < 1 {
		fmt.Fprintln(os.Stderr, "Error: iterations must be at least 1")
		os.Exit(1)
	}

	sys := rkvac.SysSetup()

	id := make(rkvac.UserIdentifier, rkvac.MaxIDLength)
	if _, err := rand.Read(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	raParams, raKeys, err := rkvac.RaSetup(sys, rand.Reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	raSig, err := rkvac.RaMac(sys, raKeys.PrivateKey, id, rand.Reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	xs := make([]float64, 0, rkvac.MaxAttributes)
	proveMs := make([]float64, 0, rkvac.MaxAttributes)
	verifyMs := make([]float64, 0, rkvac.MaxAttributes)

	for n := 1; n <= rkvac.MaxAttributes; n++ {
		d := *disclosed
		if d > n {
			d = n
		}

		attrs := make(rkvac.Attributes, n)
		for i := range attrs {
			if _, err := rand.Read(attrs[i].Value[:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}

		ieKeys, err := rkvac.IssuerSetup(n, rand.Reader)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ieSig, err := rkvac.Issue(sys, ieKeys, id, attrs, raKeys.PublicKey, raSig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var proveTotal, verifyTotal time.Duration
		for it := 0; it < *iterations; it++ {
			nonce, epoch, err := rkvac.GenerateNonceEpoch(rand.Reader)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			start := time.Now()
			cred, pi, err := rkvac.ComputeProofOfKnowledge(sys, raParams, raSig, ieSig,
				attrs, d, nonce, epoch, rand.Reader)
			proveTotal += time.Since(start)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			start = time.Now()
			err = rkvac.VerifyProofOfKnowledge(sys, raParams, raKeys.PublicKey, ieKeys,
				nonce, epoch, attrs, cred, pi, nil)
			verifyTotal += time.Since(start)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}

		proveAvg := proveTotal.Seconds() * 1000 / float64(*iterations)
		verifyAvg := verifyTotal.Seconds() * 1000 / float64(*iterations)
		fmt.Printf("n=%d d=%d prove=%.2fms verify=%.2fms\n", n, d, proveAvg, verifyAvg)

		xs = append(xs, float64(n))
		proveMs = append(proveMs, proveAvg)
		verifyMs = append(verifyMs, verifyAvg)
	}

	graph := chart.Chart{
		Title: "RKVAC prove/verify time",
		XAxis: chart.XAxis{Name: "attributes"},
		YAxis: chart.YAxis{Name: "milliseconds"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "prove", XValues: xs, YValues: proveMs},
			chart.ContinuousSeries{Name: "verify", XValues: xs, YValues: verifyMs},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Chart saved to %s\n", *output)
}
