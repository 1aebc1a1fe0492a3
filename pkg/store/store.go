package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/blake2b"

	"github.com/ehverify/ehverify/pkg/core/equihash"
	"github.com/ehverify/ehverify/pkg/core/types"
)

var (
	ErrVerdictNotFound = errors.New("verdict not found in store")
)

// Verdict is the stored outcome of verifying one well-formed submission.
type Verdict struct {
	Valid      bool
	N          uint32
	K          uint32
	VerifiedAt time.Time
}

// VerdictStore defines the interface for persistent verdict storage.
type VerdictStore interface {
	SaveVerdict(key types.Hash, v Verdict) error
	GetVerdict(key types.Hash) (Verdict, error)
	Close() error
}

// VerdictKey identifies a submission:
// BLAKE2b-256(personalization || le32(N) || le32(K) || header || solution).
func VerdictKey(personalization string, p equihash.Params, header, solution []byte) types.Hash {
	buf := make([]byte, 0, len(personalization)+8+len(header)+len(solution))
	buf = append(buf, personalization...)
	buf = binary.LittleEndian.AppendUint32(buf, p.N)
	buf = binary.LittleEndian.AppendUint32(buf, p.K)
	buf = append(buf, header...)
	buf = append(buf, solution...)
	return blake2b.Sum256(buf)
}

// BadgerStore implements VerdictStore using BadgerDB.
// Badger serialises its own transactions, so no extra locking is needed.
type BadgerStore struct {
	db *badger.DB
}

var _ VerdictStore = (*BadgerStore)(nil)

// NewBadgerStore creates or opens a BadgerDB store at the given path.
// If path is empty, it opens an in-memory store (for testing).
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	// Reduce logging noise
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &BadgerStore{
		db: db,
	}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Keys:
// Verdict: "verdict:<key>" -> gob(Verdict)

func verdictKey(key types.Hash) []byte {
	return []byte(fmt.Sprintf("verdict:%x", key))
}

func (s *BadgerStore) SaveVerdict(key types.Hash, v Verdict) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(verdictKey(key), buf.Bytes())
	})
}

func (s *BadgerStore) GetVerdict(key types.Hash) (Verdict, error) {
	var v Verdict
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(verdictKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrVerdictNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&v)
		})
	})
	if err != nil {
		return Verdict{}, err
	}
	return v, nil
}
