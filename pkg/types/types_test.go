// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package types

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(t *testing.T) CommitRequest {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	tx := WireTransaction{
		Payload: []byte("transfer 5 from alice to bob"),
		Inputs: []StateRef{
			{TxID: "4bf5122f344554c53bde2ebb8cd2b7e3d1600ad631c385a5d7cce23c7785459a", Index: 0},
			{TxID: "4bf5122f344554c53bde2ebb8cd2b7e3d1600ad631c385a5d7cce23c7785459a", Index: 3},
		},
		Window: TimeWindow{NotBefore: 1000, NotAfter: 2000},
	}
	return CommitRequest{
		Transaction: SignedTransaction{
			Tx: tx,
			Signatures: []DigitalSignature{
				{KeyID: pub, Value: ed25519.Sign(priv, []byte(tx.ID()))},
			},
		},
		Caller: "alice",
	}
}

func TestCommitRequestEncodingIsDeterministic(t *testing.T) {
	req := testRequest(t)

	raw1, err := req.ToBytes()
	require.NoError(t, err)
	raw2, err := req.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, raw1, raw2)

	// An equal value decoded on another node re-encodes to the same bytes.
	req2, err := CommitRequestFromBytes(raw1)
	require.NoError(t, err)
	raw3, err := req2.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, raw1, raw3)
}

func TestCommitRequestRoundTrip(t *testing.T) {
	req := testRequest(t)

	raw, err := req.ToBytes()
	require.NoError(t, err)
	req2, err := CommitRequestFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, &req, req2)
}

func TestCommitRequestFromGarbage(t *testing.T) {
	_, err := CommitRequestFromBytes([]byte{0x13, 0x37})
	assert.Error(t, err)
}

func TestTransactionIDIgnoresSignatures(t *testing.T) {
	req := testRequest(t)
	unsigned := SignedTransaction{Tx: req.Transaction.Tx}
	assert.Equal(t, req.Transaction.Tx.ID(), unsigned.Tx.ID())
}

func TestReplicaResponseRoundTrip(t *testing.T) {
	signature := ReplicaResponse{
		Signature: &DigitalSignature{KeyID: []byte{1, 2, 3}, Value: []byte{4, 5, 6}},
	}
	raw, err := signature.ToBytes()
	require.NoError(t, err)
	decoded, err := ReplicaResponseFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, &signature, decoded)

	rejection := ReplicaResponse{
		Err: &NotaryError{
			Kind:       Conflict,
			Detail:     "input state aa:0 already consumed by transaction bb",
			Ref:        StateRef{TxID: "aa", Index: 0},
			ConsumedBy: "bb",
		},
	}
	raw, err = rejection.ToBytes()
	require.NoError(t, err)
	decoded, err = ReplicaResponseFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, &rejection, decoded)
}

func TestReplicaResponseRejectsEmptyVariant(t *testing.T) {
	_, err := ReplicaResponse{}.ToBytes()
	assert.Error(t, err)
}

func TestVerifySignatures(t *testing.T) {
	req := testRequest(t)
	stx := req.Transaction

	assert.NoError(t, stx.VerifySignatures(nil))

	t.Run("no signatures", func(t *testing.T) {
		unsigned := SignedTransaction{Tx: stx.Tx}
		require.ErrorIs(t, unsigned.VerifySignatures(nil), ErrNoSignatures)
	})

	t.Run("only the notary's own signature", func(t *testing.T) {
		notaryKey := stx.Signatures[0].KeyID
		require.ErrorIs(t, stx.VerifySignatures(notaryKey), ErrNoSignatures)
	})

	t.Run("tampered signature", func(t *testing.T) {
		tampered := SignedTransaction{Tx: stx.Tx}
		sig := DigitalSignature{
			KeyID: stx.Signatures[0].KeyID,
			Value: append([]byte{}, stx.Signatures[0].Value...),
		}
		sig.Value[0] ^= 0xff
		tampered.Signatures = []DigitalSignature{sig}
		err := tampered.VerifySignatures(nil)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoSignatures)
	})

	t.Run("malformed key", func(t *testing.T) {
		malformed := SignedTransaction{
			Tx:         stx.Tx,
			Signatures: []DigitalSignature{{KeyID: []byte{1, 2}, Value: []byte{3}}},
		}
		assert.Error(t, malformed.VerifySignatures(nil))
	})
}
