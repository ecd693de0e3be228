// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package api

import (
	"context"

	"github.com/SmartBFT-Go/notary/pkg/types"
)

// Arbiter is the client side of the agreement substrate: a total-order
// broadcast that delivers the same sequence of commands to every replica
// and collects their replies into a single agreed result.
// Submit blocks until a quorum of reply payloads is available, or until
// the substrate reports that no verdict can be reached. A command, once
// admitted, executes on the replicas whether or not the caller keeps
// waiting on the returned result.
type Arbiter interface {
	Submit(ctx context.Context, request []byte) ([][]byte, error)
}

// Resolver fetches the transitive dependencies of a transaction so that it
// can be fully verified. Resolution may perform network I/O against the
// submitting party.
type Resolver interface {
	Resolve(stx types.SignedTransaction, caller types.PartyID) (types.ResolvedTransaction, error)
}

// Verifier runs full ledger verification over a resolved transaction.
// A deterministic ledger-level rejection is reported as
// *types.VerificationError, a signature fault surfaced during verification
// as *types.SignatureError; any other error is unclassified and aborts
// command execution on the replica.
type Verifier interface {
	Verify(rtx types.ResolvedTransaction) error
}

// TimestampChecker decides whether a transaction's time window is
// satisfied by this replica's clock. Replicas may disagree at the window
// edges; this is the one tolerated non-determinism in the pipeline.
type TimestampChecker interface {
	IsValid(w types.TimeWindow) bool
}

// Signer holds this replica's notary key share.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
	KeyID() []byte
}

// Logger defines the contract for logging.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Panicf(template string, args ...interface{})
}
