// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package types

import (
	"encoding/asn1"

	"github.com/pkg/errors"
)

// Requests and replies travel through the agreement substrate as opaque
// bytes. ASN.1 DER is used because marshaling is deterministic: the same
// request value serializes to identical bytes on every node, which the
// replicated execution relies on.

type wireStateRef struct {
	TxID  string
	Index int
}

type wireTransaction struct {
	Payload   []byte
	Inputs    []wireStateRef
	NotBefore int64
	NotAfter  int64
}

type wireSignature struct {
	KeyID []byte
	Value []byte
}

type wireCommitRequest struct {
	Tx         wireTransaction
	Signatures []wireSignature
	Caller     string `asn1:"utf8"`
}

type wireReplicaResponse struct {
	Kind       int
	KeyID      []byte
	Value      []byte
	Detail     string `asn1:"utf8"`
	RefTxID    string
	RefIndex   int
	ConsumedBy string
}

func wireTransactionFrom(t WireTransaction) wireTransaction {
	w := wireTransaction{
		Payload:   t.Payload,
		NotBefore: t.Window.NotBefore,
		NotAfter:  t.Window.NotAfter,
	}
	for _, in := range t.Inputs {
		w.Inputs = append(w.Inputs, wireStateRef{TxID: string(in.TxID), Index: in.Index})
	}
	return w
}

func transactionFromWire(w wireTransaction) WireTransaction {
	t := WireTransaction{
		Payload: w.Payload,
		Window:  TimeWindow{NotBefore: w.NotBefore, NotAfter: w.NotAfter},
	}
	if len(t.Payload) == 0 {
		t.Payload = nil
	}
	for _, in := range w.Inputs {
		t.Inputs = append(t.Inputs, StateRef{TxID: TxID(in.TxID), Index: in.Index})
	}
	return t
}

func (r CommitRequest) ToBytes() ([]byte, error) {
	w := wireCommitRequest{
		Tx:     wireTransactionFrom(r.Transaction.Tx),
		Caller: string(r.Caller),
	}
	for _, sig := range r.Transaction.Signatures {
		w.Signatures = append(w.Signatures, wireSignature{KeyID: sig.KeyID, Value: sig.Value})
	}
	raw, err := asn1.Marshal(w)
	return raw, errors.Wrap(err, "marshaling commit request")
}

func CommitRequestFromBytes(raw []byte) (*CommitRequest, error) {
	var w wireCommitRequest
	rest, err := asn1.Unmarshal(raw, &w)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling commit request")
	}
	if len(rest) > 0 {
		return nil, errors.Errorf("%d trailing bytes after commit request", len(rest))
	}
	req := &CommitRequest{
		Transaction: SignedTransaction{Tx: transactionFromWire(w.Tx)},
		Caller:      PartyID(w.Caller),
	}
	for _, sig := range w.Signatures {
		req.Transaction.Signatures = append(req.Transaction.Signatures, DigitalSignature{KeyID: sig.KeyID, Value: sig.Value})
	}
	return req, nil
}

func (r ReplicaResponse) ToBytes() ([]byte, error) {
	var w wireReplicaResponse
	switch {
	case r.Err != nil:
		w.Kind = int(r.Err.Kind)
		w.Detail = r.Err.Detail
		w.RefTxID = string(r.Err.Ref.TxID)
		w.RefIndex = r.Err.Ref.Index
		w.ConsumedBy = string(r.Err.ConsumedBy)
	case r.Signature != nil:
		w.KeyID = r.Signature.KeyID
		w.Value = r.Signature.Value
	default:
		return nil, errors.New("replica response carries neither signature nor error")
	}
	raw, err := asn1.Marshal(w)
	return raw, errors.Wrap(err, "marshaling replica response")
}

func ReplicaResponseFromBytes(raw []byte) (*ReplicaResponse, error) {
	var w wireReplicaResponse
	rest, err := asn1.Unmarshal(raw, &w)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling replica response")
	}
	if len(rest) > 0 {
		return nil, errors.Errorf("%d trailing bytes after replica response", len(rest))
	}
	if w.Kind == 0 {
		return &ReplicaResponse{Signature: &DigitalSignature{KeyID: w.KeyID, Value: w.Value}}, nil
	}
	kind := ErrorKind(w.Kind)
	if kind < SignaturesMissing || kind > Conflict {
		return nil, errors.Errorf("unknown notary error kind %d", w.Kind)
	}
	return &ReplicaResponse{Err: &NotaryError{
		Kind:       kind,
		Detail:     w.Detail,
		Ref:        StateRef{TxID: TxID(w.RefTxID), Index: w.RefIndex},
		ConsumedBy: TxID(w.ConsumedBy),
	}}, nil
}
