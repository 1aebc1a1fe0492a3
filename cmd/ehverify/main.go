package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/ehverify/ehverify/pkg/config"
	"github.com/ehverify/ehverify/pkg/core/consensus"
	"github.com/ehverify/ehverify/pkg/core/equihash"
	"github.com/ehverify/ehverify/pkg/core/types"
)

// Exit codes.
const (
	exitValid   = 0
	exitInvalid = 1
	exitInput   = 2
)

const usage = `Usage: ehverify <command> [flags]

Commands:
  verify   check one header/solution pair
  pow      check the Equihash solution and target of a block header
  batch    verify a JSON file of jobs
  params   list the supported (N, K) parameter sets
  config   print the default TOML configuration
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return exitInput
	}

	switch args[0] {
	case "verify":
		return runVerify(args[1:], stdout, stderr)
	case "pow":
		return runPoW(args[1:], stdout, stderr)
	case "batch":
		return runBatch(args[1:], stdout, stderr)
	case "params":
		return runParams(stdout)
	case "config":
		return runConfig(stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitValid
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n%s", args[0], usage)
		return exitInput
	}
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	log.Printf("Config: loaded %s (n=%d k=%d personalization=%q)", path, cfg.N, cfg.K, cfg.Personalization)
	return cfg, nil
}

func decodeHex(name, s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

// newVerifier builds a verifier for n/k, falling back to the configured
// parameter set when both are zero.
func newVerifier(cfg config.Config, n, k uint) (*equihash.Verifier, error) {
	if n == 0 && k == 0 {
		n, k = uint(cfg.N), uint(cfg.K)
	}
	if n > math.MaxUint32 || k > math.MaxUint32 {
		return nil, fmt.Errorf("%w: n=%d k=%d", equihash.ErrUnsupportedParameters, n, k)
	}
	p, err := equihash.LookupParams(uint32(n), uint32(k))
	if err != nil {
		return nil, err
	}
	return equihash.NewVerifier(p, equihash.Options{
		Personalization: cfg.Personalization,
		Workers:         cfg.LeafWorkers,
	})
}

type pairFlags struct {
	header, solution, configPath *string
	n, k                         *uint
}

func newPairFlagSet(name string, stderr io.Writer) (*flag.FlagSet, pairFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs, pairFlags{
		header:     fs.String("header", "", "140-byte block header (hex)"),
		solution:   fs.String("solution", "", "minimal-encoded solution (hex)"),
		n:          fs.Uint("n", 0, "Equihash N (default from config)"),
		k:          fs.Uint("k", 0, "Equihash K (default from config)"),
		configPath: fs.String("config", "", "TOML config file"),
	}
}

// parse decodes the pair and builds its verifier. Any error is an input
// error.
func (f pairFlags) parse(fs *flag.FlagSet, args []string) (*equihash.Verifier, []byte, []byte, error) {
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}
	if *f.header == "" || *f.solution == "" {
		return nil, nil, nil, errors.New("-header and -solution are required")
	}
	header, err := decodeHex("header", *f.header)
	if err != nil {
		return nil, nil, nil, err
	}
	solution, err := decodeHex("solution", *f.solution)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := loadConfig(*f.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	v, err := newVerifier(cfg, *f.n, *f.k)
	if err != nil {
		return nil, nil, nil, err
	}
	return v, header, solution, nil
}

func runVerify(args []string, stdout, stderr io.Writer) int {
	fs, flags := newPairFlagSet("verify", stderr)
	v, header, solution, err := flags.parse(fs, args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}

	ok, err := v.Verify(header, solution)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
	if !ok {
		fmt.Fprintln(stdout, "invalid")
		return exitInvalid
	}
	fmt.Fprintln(stdout, "valid")
	return exitValid
}

func runPoW(args []string, stdout, stderr io.Writer) int {
	fs, flags := newPairFlagSet("pow", stderr)
	expectHex := fs.String("expect", "", "expected block hash in display order (hex)")
	v, raw, solution, err := flags.parse(fs, args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
	h, err := types.ParseBlockHeader(raw)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
	var expect types.Hash
	if *expectHex != "" {
		if expect, err = types.HashFromReverseHex(*expectHex); err != nil {
			fmt.Fprintf(stderr, "Error: expect: %v\n", err)
			return exitInput
		}
	}

	hash, err := consensus.ValidateHeaderPoW(h, solution, v)
	switch {
	case err == nil && *expectHex != "" && hash != expect:
		fmt.Fprintf(stdout, "invalid: block hash %s, want %s\n", hash, expect)
		return exitInvalid
	case err == nil:
		fmt.Fprintf(stdout, "valid %s\n", hash)
		return exitValid
	case errors.Is(err, consensus.ErrInvalidSolution), errors.Is(err, consensus.ErrHashAboveTarget):
		fmt.Fprintf(stdout, "invalid: %v\n", err)
		return exitInvalid
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
}

func runParams(stdout io.Writer) int {
	fmt.Fprintf(stdout, "%-4s %-3s %-8s %-9s %-13s %s\n", "N", "K", "indices", "bits/idx", "solution(B)", "hash(B)")
	for _, p := range equihash.SupportedParams() {
		fmt.Fprintf(stdout, "%-4d %-3d %-8d %-9d %-13d %d\n",
			p.N, p.K, p.IndicesPerSolution(), p.MinimalBitsPerIndex(), p.SolutionWidth(), p.HashOutput())
	}
	return exitValid
}

func runConfig(stdout, stderr io.Writer) int {
	out, err := config.ExampleTOML()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
	stdout.Write(out)
	return exitValid
}
