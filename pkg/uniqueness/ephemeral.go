// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package uniqueness

import (
	"sync"

	"github.com/SmartBFT-Go/notary/pkg/types"
)

// Ephemeral is an in-memory Store, for tests and single-process clusters.
type Ephemeral struct {
	lock     sync.RWMutex
	consumed map[types.StateRef]types.TxID
}

func NewEphemeral() *Ephemeral {
	return &Ephemeral{
		consumed: make(map[types.StateRef]types.TxID),
	}
}

func (e *Ephemeral) Commit(txID types.TxID, refs []types.StateRef) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	for _, ref := range refs {
		if consumer, ok := e.consumed[ref]; ok && consumer != txID {
			return conflict(ref, consumer)
		}
	}
	for _, ref := range refs {
		e.consumed[ref] = txID
	}
	return nil
}

func (e *Ephemeral) Consumer(ref types.StateRef) (types.TxID, bool, error) {
	e.lock.RLock()
	defer e.lock.RUnlock()

	consumer, ok := e.consumed[ref]
	return consumer, ok, nil
}

func (e *Ephemeral) Close() error {
	return nil
}
