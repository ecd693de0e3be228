// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package notary

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/SmartBFT-Go/notary/pkg/api"
	"github.com/SmartBFT-Go/notary/pkg/metrics/disabled"
	"github.com/SmartBFT-Go/notary/pkg/types"
)

// Client submits commit requests into the agreement substrate and folds
// the quorum of replica replies into a single cluster verdict. It is safe
// for concurrent use; every call owns its request and response pair.
type Client struct {
	Config  Configuration
	Arbiter api.Arbiter
	Logger  api.Logger
	Metrics *Metrics

	startOnce sync.Once
	inflight  *semaphore.Weighted
}

// CommitTransaction blocks until the cluster reaches a verdict on stx, or
// until the substrate reports that no verdict can be reached (too few
// live replicas), which fails the submission; retrying is the caller's
// decision. Cancelling the context only abandons the wait: a command
// already admitted to the substrate executes on the replicas regardless.
func (c *Client) CommitTransaction(ctx context.Context, stx types.SignedTransaction, caller types.PartyID) (types.ClusterResponse, error) {
	c.startOnce.Do(func() {
		max := c.Config.MaxInflight
		if max <= 0 {
			max = DefaultConfiguration.MaxInflight
		}
		c.inflight = semaphore.NewWeighted(max)
		if c.Metrics == nil {
			c.Metrics = NewMetrics(&disabled.Provider{})
		}
	})

	if c.Config.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Config.SubmitTimeout)
		defer cancel()
	}

	if err := c.inflight.Acquire(ctx, 1); err != nil {
		return types.ClusterResponse{}, errors.Wrap(err, "acquiring a submission slot")
	}
	defer c.inflight.Release(1)
	c.Metrics.CountOfInflight.Add(1)
	defer c.Metrics.CountOfInflight.Add(-1)

	raw, err := types.CommitRequest{Transaction: stx, Caller: caller}.ToBytes()
	if err != nil {
		return types.ClusterResponse{}, err
	}

	txID := stx.Tx.ID()
	c.Logger.Debugf("Submitting transaction %s from %s for notarisation", txID, caller)
	replies, err := c.Arbiter.Submit(ctx, raw)
	if err != nil {
		return types.ClusterResponse{}, errors.Wrapf(err, "no cluster verdict for transaction %s", txID)
	}

	signatures := make([]types.DigitalSignature, 0, len(replies))
	for _, rawReply := range replies {
		reply, err := types.ReplicaResponseFromBytes(rawReply)
		if err != nil {
			return types.ClusterResponse{}, errors.Wrapf(err, "malformed replica reply for transaction %s", txID)
		}
		if reply.Err != nil {
			// The substrate reconciles divergent replies; an error it
			// hands back is the cluster's agreed outcome.
			return types.ClusterResponse{Err: reply.Err}, nil
		}
		signatures = append(signatures, *reply.Signature)
	}
	return types.ClusterResponse{Signatures: signatures}, nil
}
