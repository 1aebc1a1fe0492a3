package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/ehverify/ehverify/pkg/store"
	"github.com/ehverify/ehverify/pkg/validator"
)

// batchJob is one entry of the batch input file.
type batchJob struct {
	ID       string `json:"id"`
	Header   string `json:"header"`
	Solution string `json:"solution"`
	N        uint32 `json:"n,omitempty"`
	K        uint32 `json:"k,omitempty"`
}

type batchResult struct {
	ID     string `json:"id"`
	Valid  bool   `json:"valid"`
	Cached bool   `json:"cached,omitempty"`
	Error  string `json:"error,omitempty"`
}

// runBatch exits 0 when every job is valid, 1 when any job is invalid or
// malformed, and 2 when the batch itself cannot be read.
func runBatch(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "JSON file with an array of jobs")
	outPath := fs.String("out", "", "write results here instead of stdout")
	storePath := fs.String("store", "", "verdict store directory (overrides config)")
	configPath := fs.String("config", "", "TOML config file")
	if err := fs.Parse(args); err != nil {
		return exitInput
	}
	if *inPath == "" {
		fmt.Fprintln(stderr, "Error: -in is required")
		return exitInput
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
	var input []batchJob
	if err := sonic.Unmarshal(data, &input); err != nil {
		fmt.Fprintf(stderr, "Error: parse %s: %v\n", *inPath, err)
		return exitInput
	}

	st, err := store.NewBadgerStore(cfg.StorePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
	defer st.Close()

	v, err := validator.New(cfg, st)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := make([]batchResult, len(input))
	var jobs []validator.Job
	var slots []int
	for i, in := range input {
		results[i].ID = in.ID
		header, err := decodeHex("header", in.Header)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		solution, err := decodeHex("solution", in.Solution)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		jobs = append(jobs, validator.Job{ID: in.ID, Header: header, Solution: solution, N: in.N, K: in.K})
		slots = append(slots, i)
	}

	for j, res := range v.VerifyBatch(ctx, jobs) {
		out := &results[slots[j]]
		out.Valid = res.Valid
		out.Cached = res.Cached
		if res.Err != nil {
			out.Error = res.Err.Error()
		}
	}

	encoded, err := sonic.ConfigDefault.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
	encoded = append(encoded, '\n')
	if *outPath != "" {
		if err := os.WriteFile(*outPath, encoded, 0o644); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitInput
		}
		log.Printf("Batch: wrote %d results to %s", len(results), *outPath)
	} else {
		stdout.Write(encoded)
	}

	for _, r := range results {
		if !r.Valid {
			return exitInvalid
		}
	}
	return exitValid
}
