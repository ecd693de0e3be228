// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package uniqueness

import (
	"fmt"

	"github.com/SmartBFT-Go/notary/pkg/types"
)

// Store binds consumed input states to the transaction that consumed
// them, enforcing first-committer-wins: a state, once bound, is never
// rebound to a different transaction.
//
// A Store is only ever mutated by the single serial command executor of
// its replica; the atomicity requirement is over the ref set of one
// commit, not over concurrent writers.
type Store interface {
	// Commit atomically binds every ref to txID. If any ref is already
	// bound to a different transaction, nothing is written and the
	// returned error is a *types.NotaryError of kind Conflict naming the
	// contested ref and its true consumer. Refs already bound to txID
	// itself are accepted, so resubmitting a committed transaction
	// succeeds. Any other error is a storage fault.
	Commit(txID types.TxID, refs []types.StateRef) error

	// Consumer returns the transaction a ref is bound to, if any.
	Consumer(ref types.StateRef) (types.TxID, bool, error)

	Close() error
}

func conflict(ref types.StateRef, consumer types.TxID) *types.NotaryError {
	return &types.NotaryError{
		Kind:       types.Conflict,
		Detail:     fmt.Sprintf("input state %s already consumed by transaction %s", ref, consumer),
		Ref:        ref,
		ConsumedBy: consumer,
	}
}
