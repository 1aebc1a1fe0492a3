package store

import (
	"errors"
	"testing"
	"time"

	"github.com/ehverify/ehverify/pkg/core/equihash"
	"github.com/ehverify/ehverify/pkg/core/types"
)

func mustNewTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore("") // In-memory
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBadgerStore_SaveAndGet(t *testing.T) {
	s := mustNewTestStore(t)
	key := types.Hash{0x01}
	want := Verdict{Valid: true, N: 200, K: 9, VerifiedAt: time.Unix(1700000000, 0).UTC()}

	if err := s.SaveVerdict(key, want); err != nil {
		t.Fatalf("SaveVerdict: %v", err)
	}
	got, err := s.GetVerdict(key)
	if err != nil {
		t.Fatalf("GetVerdict: %v", err)
	}
	if got.Valid != want.Valid || got.N != want.N || got.K != want.K || !got.VerifiedAt.Equal(want.VerifiedAt) {
		t.Fatalf("GetVerdict = %+v, want %+v", got, want)
	}
}

func TestBadgerStore_Overwrite(t *testing.T) {
	s := mustNewTestStore(t)
	key := types.Hash{0x02}
	if err := s.SaveVerdict(key, Verdict{Valid: true}); err != nil {
		t.Fatalf("SaveVerdict: %v", err)
	}
	if err := s.SaveVerdict(key, Verdict{Valid: false}); err != nil {
		t.Fatalf("SaveVerdict: %v", err)
	}
	got, err := s.GetVerdict(key)
	if err != nil {
		t.Fatalf("GetVerdict: %v", err)
	}
	if got.Valid {
		t.Fatal("overwritten verdict still valid")
	}
}

func TestBadgerStore_NotFound(t *testing.T) {
	s := mustNewTestStore(t)
	if _, err := s.GetVerdict(types.Hash{0xff}); !errors.Is(err, ErrVerdictNotFound) {
		t.Fatalf("GetVerdict error = %v, want ErrVerdictNotFound", err)
	}
}

func TestBadgerStore_OnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	key := types.Hash{0x03}
	if err := s.SaveVerdict(key, Verdict{Valid: true, N: 48, K: 5}); err != nil {
		t.Fatalf("SaveVerdict: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = NewBadgerStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.GetVerdict(key)
	if err != nil {
		t.Fatalf("GetVerdict after reopen: %v", err)
	}
	if !got.Valid || got.N != 48 || got.K != 5 {
		t.Fatalf("GetVerdict after reopen = %+v", got)
	}
}

func TestVerdictKey(t *testing.T) {
	p := equihash.Params{N: 200, K: 9}
	header := make([]byte, 140)
	soln := make([]byte, 1344)

	base := VerdictKey("ZcashPoW", p, header, soln)
	// BLAKE2b-256("ZcashPoW" || le32(200) || le32(9) || header || solution)
	const want = "76c69c72082d04e2a8443d11e0c6df6a435386ec8e5334fcbd922af1adcebac2"
	if got := base.Hex(); got != want {
		t.Fatalf("VerdictKey = %s, want %s", got, want)
	}
	if base.IsZero() {
		t.Fatal("VerdictKey returned the zero hash")
	}

	soln2 := make([]byte, 1344)
	soln2[0] = 1
	variants := map[string]types.Hash{
		"personalization": VerdictKey("BgoldPoW", p, header, soln),
		"params":          VerdictKey("ZcashPoW", equihash.Params{N: 144, K: 5}, header, soln),
		"solution":        VerdictKey("ZcashPoW", p, header, soln2),
	}
	for name, k := range variants {
		if k == base {
			t.Errorf("changing %s did not change the key", name)
		}
	}
}
