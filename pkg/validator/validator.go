package validator

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/remeh/sizedwaitgroup"

	"github.com/ehverify/ehverify/pkg/config"
	"github.com/ehverify/ehverify/pkg/core/equihash"
	"github.com/ehverify/ehverify/pkg/store"
)

// Job is one header/solution submission. Zero N and K select the
// configured default parameter set.
type Job struct {
	ID       string
	Header   []byte
	Solution []byte
	N        uint32
	K        uint32
}

// Result is the outcome of a Job. Err is set only for malformed input or
// a cancelled batch; an invalid solution is Valid == false with Err == nil.
type Result struct {
	ID     string
	Valid  bool
	Cached bool
	Err    error
}

// Validator verifies submissions, caching verdicts of well-formed inputs
// in an optional VerdictStore.
type Validator struct {
	cfg   config.Config
	store store.VerdictStore

	mu        sync.Mutex
	verifiers map[equihash.Params]*equihash.Verifier
}

// New returns a Validator. st may be nil to disable verdict caching.
func New(cfg config.Config, st store.VerdictStore) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{
		cfg:       cfg,
		store:     st,
		verifiers: make(map[equihash.Params]*equihash.Verifier),
	}, nil
}

func (v *Validator) verifier(n, k uint32) (*equihash.Verifier, error) {
	if n == 0 && k == 0 {
		n, k = v.cfg.N, v.cfg.K
	}
	p, err := equihash.LookupParams(n, k)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if ver, ok := v.verifiers[p]; ok {
		return ver, nil
	}
	ver, err := equihash.NewVerifier(p, equihash.Options{
		Personalization: v.cfg.Personalization,
		Workers:         v.cfg.LeafWorkers,
	})
	if err != nil {
		return nil, err
	}
	v.verifiers[p] = ver
	return ver, nil
}

// Verify checks a single job.
func (v *Validator) Verify(job Job) Result {
	res := Result{ID: job.ID}

	ver, err := v.verifier(job.N, job.K)
	if err != nil {
		res.Err = err
		return res
	}
	p := ver.Params()

	key := store.VerdictKey(v.cfg.Personalization, p, job.Header, job.Solution)
	if v.store != nil {
		verdict, err := v.store.GetVerdict(key)
		switch {
		case err == nil:
			res.Valid = verdict.Valid
			res.Cached = true
			return res
		case !errors.Is(err, store.ErrVerdictNotFound):
			log.Printf("Validator: verdict lookup for %s failed: %v", job.ID, err)
		}
	}

	ok, err := ver.Verify(job.Header, job.Solution)
	if err != nil {
		log.Printf("Validator: rejected malformed job %s (%s): %v", job.ID, p, err)
		res.Err = err
		return res
	}
	res.Valid = ok

	if v.store != nil {
		verdict := store.Verdict{Valid: ok, N: p.N, K: p.K, VerifiedAt: time.Now()}
		if err := v.store.SaveVerdict(key, verdict); err != nil {
			log.Printf("Validator: failed to save verdict for %s: %v", job.ID, err)
		}
	}
	return res
}

// VerifyBatch verifies jobs on at most cfg.Workers goroutines and returns
// results in input order. Jobs not started before ctx is done get ctx.Err().
func (v *Validator) VerifyBatch(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	swg := sizedwaitgroup.New(v.cfg.Workers)

	for i, job := range jobs {
		// AddWithContext may still acquire a slot once ctx is done.
		if err := ctx.Err(); err != nil {
			results[i] = Result{ID: job.ID, Err: err}
			continue
		}
		if err := swg.AddWithContext(ctx); err != nil {
			results[i] = Result{ID: job.ID, Err: err}
			continue
		}
		go func(i int, job Job) {
			defer swg.Done()
			results[i] = v.Verify(job)
		}(i, job)
	}
	swg.Wait()

	valid := 0
	for _, r := range results {
		if r.Valid {
			valid++
		}
	}
	log.Printf("Validator: batch of %d jobs, %d valid", len(jobs), valid)
	return results
}
