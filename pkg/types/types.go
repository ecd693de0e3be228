// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package types

import (
	"crypto/sha256"
	"encoding/asn1"
	"encoding/hex"
	"fmt"
)

// PartyID identifies the party submitting a transaction for notarisation.
type PartyID string

// TxID is the hex-encoded digest of a wire transaction.
type TxID string

// StateRef identifies a single ledger state consumed by a transaction:
// the transaction that produced the state, and the index of the state
// among its outputs.
type StateRef struct {
	TxID  TxID
	Index int
}

func (r StateRef) String() string {
	return fmt.Sprintf("%s:%d", r.TxID, r.Index)
}

// TimeWindow bounds the wall-clock time at which a transaction may be
// notarised, in microseconds since the Unix epoch. A zero bound is open.
type TimeWindow struct {
	NotBefore int64
	NotAfter  int64
}

// WireTransaction is the notary-visible part of a ledger transaction:
// an opaque payload, the input states it consumes, and its time window.
type WireTransaction struct {
	Payload []byte
	Inputs  []StateRef
	Window  TimeWindow
}

// ID computes the transaction id over the canonical encoding of the
// transaction. The same transaction yields the same id on every node.
func (t WireTransaction) ID() TxID {
	raw, err := asn1.Marshal(wireTransactionFrom(t))
	if err != nil {
		panic(fmt.Sprintf("failed marshaling transaction: %v", err))
	}
	return TxID(computeDigest(raw))
}

// DigitalSignature is a signature over a transaction id, by the Ed25519
// public key carried in KeyID.
type DigitalSignature struct {
	KeyID []byte
	Value []byte
}

// SignedTransaction couples a wire transaction with the signatures
// collected over its id.
type SignedTransaction struct {
	Tx         WireTransaction
	Signatures []DigitalSignature
}

// ResolvedTransaction is a signed transaction together with the raw
// dependencies fetched by the Resolver. The dependencies are opaque to
// the notary; only the ledger Verifier interprets them.
type ResolvedTransaction struct {
	SignedTransaction
	Dependencies [][]byte
}

// CommitRequest is the command submitted into the agreement substrate:
// one transaction and the identity of the party submitting it. Its
// encoding is deterministic, so every replica observes identical bytes.
type CommitRequest struct {
	Transaction SignedTransaction
	Caller      PartyID
}

// ReplicaResponse is the reply of a single replica to a commit request.
// Exactly one of Signature and Err is set.
type ReplicaResponse struct {
	Signature *DigitalSignature
	Err       *NotaryError
}

// ClusterResponse is the verdict of the whole cluster: a quorum of
// replica signatures over the transaction id, or the agreed rejection.
// Exactly one of Signatures and Err is set.
type ClusterResponse struct {
	Signatures []DigitalSignature
	Err        *NotaryError
}

func computeDigest(rawBytes []byte) string {
	h := sha256.New()
	h.Write(rawBytes)
	digest := h.Sum(nil)
	return hex.EncodeToString(digest)
}
