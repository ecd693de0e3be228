// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package notary

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SmartBFT-Go/notary/pkg/types"
)

type fakeArbiter struct {
	replies   [][]byte
	err       error
	block     bool
	submitted [][]byte
}

func (f *fakeArbiter) Submit(ctx context.Context, request []byte) ([][]byte, error) {
	f.submitted = append(f.submitted, request)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.replies, f.err
}

func testClient(t *testing.T, arbiter *fakeArbiter) *Client {
	basicLog, err := zap.NewDevelopment()
	require.NoError(t, err)

	return &Client{
		Config:  DefaultConfiguration,
		Arbiter: arbiter,
		Logger:  basicLog.Sugar(),
	}
}

func signatureReply(t *testing.T, id byte) []byte {
	raw, err := types.ReplicaResponse{
		Signature: &types.DigitalSignature{KeyID: []byte{id}, Value: []byte{id, id}},
	}.ToBytes()
	require.NoError(t, err)
	return raw
}

func errorReply(t *testing.T, nerr *types.NotaryError) []byte {
	raw, err := types.ReplicaResponse{Err: nerr}.ToBytes()
	require.NoError(t, err)
	return raw
}

func TestClientCollectsQuorumSignatures(t *testing.T) {
	arbiter := &fakeArbiter{
		replies: [][]byte{signatureReply(t, 1), signatureReply(t, 2), signatureReply(t, 3)},
	}
	c := testClient(t, arbiter)

	verdict, err := c.CommitTransaction(context.Background(), signedTx(t, "ok", ref("aa", 0)), "alice")
	require.NoError(t, err)
	require.Nil(t, verdict.Err)
	require.Len(t, verdict.Signatures, 3)
	assert.Equal(t, []byte{2}, verdict.Signatures[1].KeyID)
	assert.Len(t, arbiter.submitted, 1)
}

func TestClientSurfacesReplicaError(t *testing.T) {
	nerr := &types.NotaryError{
		Kind:       types.Conflict,
		Detail:     "input state aa:0 already consumed by transaction bb",
		Ref:        ref("aa", 0),
		ConsumedBy: "bb",
	}
	arbiter := &fakeArbiter{
		replies: [][]byte{signatureReply(t, 1), errorReply(t, nerr)},
	}
	c := testClient(t, arbiter)

	verdict, err := c.CommitTransaction(context.Background(), signedTx(t, "clash", ref("aa", 0)), "alice")
	require.NoError(t, err)
	require.NotNil(t, verdict.Err)
	assert.Equal(t, nerr, verdict.Err)
	assert.Empty(t, verdict.Signatures)
}

func TestClientFailsWithoutQuorum(t *testing.T) {
	arbiter := &fakeArbiter{err: errors.New("insufficient live replicas")}
	c := testClient(t, arbiter)

	_, err := c.CommitTransaction(context.Background(), signedTx(t, "alone", ref("aa", 0)), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient live replicas")
}

func TestClientStopsWaitingOnTimeout(t *testing.T) {
	arbiter := &fakeArbiter{block: true}
	c := testClient(t, arbiter)
	c.Config.SubmitTimeout = 50 * time.Millisecond

	_, err := c.CommitTransaction(context.Background(), signedTx(t, "slow", ref("aa", 0)), "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	// The command was admitted; only the wait was abandoned.
	assert.Len(t, arbiter.submitted, 1)
}

func TestClientRejectsMalformedReply(t *testing.T) {
	arbiter := &fakeArbiter{replies: [][]byte{{0xde, 0xad}}}
	c := testClient(t, arbiter)

	_, err := c.CommitTransaction(context.Background(), signedTx(t, "noise", ref("aa", 0)), "alice")
	require.Error(t, err)
}

func TestHandlerRelaysVerdict(t *testing.T) {
	basicLog, err := zap.NewDevelopment()
	require.NoError(t, err)
	logger := basicLog.Sugar()

	t.Run("success", func(t *testing.T) {
		arbiter := &fakeArbiter{replies: [][]byte{signatureReply(t, 1), signatureReply(t, 2)}}
		h := &Handler{Client: testClient(t, arbiter), Logger: logger}

		sigs, err := h.Notarise(context.Background(), signedTx(t, "ok", ref("aa", 0)), "alice")
		require.NoError(t, err)
		assert.Len(t, sigs, 2)
	})

	t.Run("rejection", func(t *testing.T) {
		nerr := &types.NotaryError{Kind: types.TransactionInvalid, Detail: "rejected by the ledger"}
		arbiter := &fakeArbiter{replies: [][]byte{errorReply(t, nerr)}}
		h := &Handler{Client: testClient(t, arbiter), Logger: logger}

		_, err := h.Notarise(context.Background(), signedTx(t, "bad", ref("aa", 0)), "alice")
		require.Error(t, err)
		var got *types.NotaryError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, nerr, got)
	})

	t.Run("substrate failure", func(t *testing.T) {
		arbiter := &fakeArbiter{err: errors.New("quorum unreachable")}
		h := &Handler{Client: testClient(t, arbiter), Logger: logger}

		_, err := h.Notarise(context.Background(), signedTx(t, "lost", ref("aa", 0)), "alice")
		require.Error(t, err)
		var got *types.NotaryError
		assert.False(t, errors.As(err, &got))
	})
}

func TestConfigurationValidate(t *testing.T) {
	assert.NoError(t, DefaultConfiguration.Validate())
	assert.Error(t, Configuration{MaxInflight: 0}.Validate())
	assert.Error(t, Configuration{MaxInflight: 1, SubmitTimeout: -time.Second}.Validate())
}
