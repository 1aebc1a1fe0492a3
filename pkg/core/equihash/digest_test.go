package equihash

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/dchest/blake2b"
)

func TestPersonalization_Zcash(t *testing.T) {
	got, err := Personalization(DefaultPersonalization, Params{N: 200, K: 9})
	if err != nil {
		t.Fatalf("Personalization: %v", err)
	}
	want := []byte("ZcashPoW\xc8\x00\x00\x00\x09\x00\x00\x00")
	if !bytes.Equal(got, want) {
		t.Fatalf("Personalization = %x, want %x", got, want)
	}
}

func TestPersonalization_BadPrefix(t *testing.T) {
	for _, prefix := range []string{"", "Zcash", "ZcashPoWX"} {
		if _, err := Personalization(prefix, DefaultParams); !errors.Is(err, ErrInvalidPersonalization) {
			t.Errorf("Personalization(%q) error = %v, want ErrInvalidPersonalization", prefix, err)
		}
	}
}

func TestInitializeDigest_HeaderLength(t *testing.T) {
	for _, n := range []int{0, HeaderSize - 1, HeaderSize + 1} {
		_, err := InitializeDigest(DefaultParams, DefaultPersonalization, make([]byte, n))
		if !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("header len %d: error = %v, want ErrMalformedHeader", n, err)
		}
	}
}

func TestHashBlock_MatchesDirectBlake2b(t *testing.T) {
	p := Params{N: 200, K: 9}
	header := testHeader(7)
	s, err := InitializeDigest(p, DefaultPersonalization, header)
	if err != nil {
		t.Fatalf("InitializeDigest: %v", err)
	}

	person := []byte("ZcashPoW\xc8\x00\x00\x00\x09\x00\x00\x00")
	h, err := blake2b.New(&blake2b.Config{Size: 50, Person: person})
	if err != nil {
		t.Fatalf("blake2b.New: %v", err)
	}
	h.Write(header)
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], 3)
	h.Write(le[:])
	want := h.Sum(nil)

	got, err := s.HashBlock(3)
	if err != nil {
		t.Fatalf("HashBlock: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("HashBlock(3) = %x, want %x", got, want)
	}
}

func TestExpand_LeafPacking(t *testing.T) {
	for _, p := range SupportedParams() {
		t.Run(p.String(), func(t *testing.T) {
			s, err := InitializeDigest(p, DefaultPersonalization, testHeader(1))
			if err != nil {
				t.Fatalf("InitializeDigest: %v", err)
			}
			per := p.IndicesPerHashOutput()
			block, err := s.HashBlock(5)
			if err != nil {
				t.Fatalf("HashBlock: %v", err)
			}
			if len(block) != p.HashOutput() {
				t.Fatalf("block length = %d, want %d", len(block), p.HashOutput())
			}
			for j := 0; j < per; j++ {
				leaf, err := s.Expand(uint32(5*per + j))
				if err != nil {
					t.Fatalf("Expand: %v", err)
				}
				want := block[j*p.LeafBytes() : (j+1)*p.LeafBytes()]
				if !bytes.Equal(leaf, want) {
					t.Fatalf("leaf %d = %x, want %x", 5*per+j, leaf, want)
				}
			}
		})
	}
}

func TestDigestDependsOnPersonalization(t *testing.T) {
	header := testHeader(0)
	zec, err := InitializeDigest(DefaultParams, DefaultPersonalization, header)
	if err != nil {
		t.Fatalf("InitializeDigest: %v", err)
	}
	btg, err := InitializeDigest(DefaultParams, "BgoldPoW", header)
	if err != nil {
		t.Fatalf("InitializeDigest: %v", err)
	}
	a, _ := zec.Expand(0)
	b, _ := btg.Expand(0)
	if bytes.Equal(a, b) {
		t.Fatal("different personalizations produced the same leaf digest")
	}
}

func TestExpand_ConcurrentMatchesSequential(t *testing.T) {
	p := Params{N: 96, K: 5}
	s, err := InitializeDigest(p, DefaultPersonalization, testHeader(3))
	if err != nil {
		t.Fatalf("InitializeDigest: %v", err)
	}
	const count = 200
	want := make([][]byte, count)
	for i := range want {
		want[i], _ = s.Expand(uint32(i))
	}

	got := make([][]byte, count)
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = s.Expand(uint32(i))
		}(i)
	}
	wg.Wait()

	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Fatalf("leaf %d differs under concurrency", i)
		}
	}
}
