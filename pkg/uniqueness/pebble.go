// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package uniqueness

import (
	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"

	"github.com/SmartBFT-Go/notary/pkg/types"
)

// PebbleStore is a persistent Store backed by Pebble. Keys are the
// canonical string form of a state ref, values the consuming tx id.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) a uniqueness store at the given path.
func OpenPebble(path string) (*PebbleStore, error) {
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(32 << 20),
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 2,
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening uniqueness store at %s", path)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Commit(txID types.TxID, refs []types.StateRef) error {
	// Conflict scan before any write, so a transaction either consumes
	// its whole ref set or none of it.
	for _, ref := range refs {
		consumer, ok, err := s.Consumer(ref)
		if err != nil {
			return err
		}
		if ok && consumer != txID {
			return conflict(ref, consumer)
		}
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for _, ref := range refs {
		if err := batch.Set([]byte(ref.String()), []byte(txID), nil); err != nil {
			return errors.Wrapf(err, "staging input state %s", ref)
		}
	}
	return errors.Wrapf(batch.Commit(pebble.Sync), "committing inputs of transaction %s", txID)
}

func (s *PebbleStore) Consumer(ref types.StateRef) (types.TxID, bool, error) {
	value, closer, err := s.db.Get([]byte(ref.String()))
	if err == pebble.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "reading input state %s", ref)
	}
	consumer := types.TxID(value) // copies; value is invalid after Close
	if err := closer.Close(); err != nil {
		return "", false, errors.Wrapf(err, "reading input state %s", ref)
	}
	return consumer, true, nil
}

func (s *PebbleStore) Close() error {
	return errors.Wrap(s.db.Close(), "closing uniqueness store")
}
