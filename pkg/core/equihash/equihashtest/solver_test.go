package equihashtest

import (
	"bytes"
	"testing"

	"github.com/ehverify/ehverify/pkg/core/equihash"
)

func TestFixturesAreWellFormed(t *testing.T) {
	p := equihash.Params{N: 48, K: 5}
	fixtures, err := Fixtures(p, 3)
	if err != nil {
		t.Fatalf("Fixtures: %v", err)
	}
	for i, f := range fixtures {
		if len(f.Indices) != p.IndicesPerSolution() {
			t.Fatalf("fixture %d has %d indices, want %d", i, len(f.Indices), p.IndicesPerSolution())
		}
		if len(f.Solution) != p.SolutionWidth() {
			t.Fatalf("fixture %d solution is %d bytes, want %d", i, len(f.Solution), p.SolutionWidth())
		}
		for j := 1; j < len(f.Indices); j += 2 {
			if f.Indices[j-1] >= f.Indices[j] {
				t.Fatalf("fixture %d: leaf pair %d is not ordered", i, j/2)
			}
		}
		if i > 0 && bytes.Equal(f.Header, fixtures[i-1].Header) {
			t.Fatalf("fixtures %d and %d share a header", i-1, i)
		}
	}
}

func TestChunks(t *testing.T) {
	got := chunks([]byte{0xab, 0xcd, 0xef}, 8)
	want := []uint32{0xab, 0xcd, 0xef}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunks 8-bit = %x, want %x", got, want)
		}
	}
	got = chunks([]byte{0xab, 0xcd, 0xef}, 12)
	if len(got) != 2 || got[0] != 0xabc || got[1] != 0xdef {
		t.Fatalf("chunks 12-bit = %x, want [abc def]", got)
	}
}

func TestHeaderNonce(t *testing.T) {
	if bytes.Equal(Header(1), Header(2)) {
		t.Fatal("different nonces produced the same header")
	}
	if len(Header(0)) != equihash.HeaderSize {
		t.Fatalf("header length = %d, want %d", len(Header(0)), equihash.HeaderSize)
	}
}
