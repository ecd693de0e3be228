// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package notary

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/SmartBFT-Go/notary/pkg/api"
	"github.com/SmartBFT-Go/notary/pkg/metrics/disabled"
	"github.com/SmartBFT-Go/notary/pkg/types"
	"github.com/SmartBFT-Go/notary/pkg/uniqueness"
)

// Replica is the deterministic commit executor run by every cluster
// member. It holds no request-to-request state; everything persistent
// lives in the uniqueness Store, so a replica restarted mid-stream
// reconstructs identical decisions from (command, store state) alone.
//
// Execute must be invoked serially, in the order assigned by the
// agreement substrate: a later command may depend on the store state
// left behind by an earlier one.
type Replica struct {
	Config     Configuration
	Store      uniqueness.Store
	Resolver   api.Resolver
	Verifier   api.Verifier
	Timestamps api.TimestampChecker
	Signer     api.Signer
	Logger     api.Logger
	Metrics    *Metrics

	startOnce sync.Once
}

// Execute runs a single agreed command through the notarisation pipeline
// and returns the encoded ReplicaResponse. The returned error is the
// unclassified channel: storage faults, signing faults, and unexpected
// verification failures abort the command unmasked instead of being
// disguised as a deterministic rejection — the cluster must surface such
// divergence, not agree on a wrong answer. Classified rejections are
// encoded in the response and return a nil error.
func (r *Replica) Execute(command []byte) ([]byte, error) {
	r.startOnce.Do(func() {
		if r.Metrics == nil {
			r.Metrics = NewMetrics(&disabled.Provider{})
		}
	})

	resp, err := r.execute(command)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		r.Metrics.CountOfRejected.With("kind", resp.Err.Kind.String()).Add(1)
	} else {
		r.Metrics.CountOfNotarised.Add(1)
	}
	return resp.ToBytes()
}

func (r *Replica) execute(command []byte) (*types.ReplicaResponse, error) {
	req, err := types.CommitRequestFromBytes(command)
	if err != nil {
		// Every replica observes the same bytes, so a decode failure is
		// itself deterministic and must be answered, not skipped.
		r.Logger.Warnf("Replica %d received a malformed commit request: %v", r.Config.SelfID, err)
		return reject(&types.NotaryError{
			Kind:   types.TransactionInvalid,
			Detail: "malformed commit request",
		}), nil
	}
	txID := req.Transaction.Tx.ID()

	if err := req.Transaction.VerifySignatures(r.Signer.KeyID()); err != nil {
		r.Logger.Warnf("Replica %d rejected transaction %s from %s: %v", r.Config.SelfID, txID, req.Caller, err)
		return reject(&types.NotaryError{
			Kind:   types.SignaturesMissing,
			Detail: err.Error(),
		}), nil
	}

	if !r.Timestamps.IsValid(req.Transaction.Tx.Window) {
		// Replicas may disagree here at the very edges of the window;
		// that divergence is bounded and accepted.
		return reject(&types.NotaryError{
			Kind:   types.TransactionInvalid,
			Detail: fmt.Sprintf("transaction %s is outside its time window", txID),
		}), nil
	}

	rtx, err := r.Resolver.Resolve(req.Transaction, req.Caller)
	if err == nil {
		err = r.Verifier.Verify(rtx)
	}
	if err != nil {
		var serr *types.SignatureError
		var verr *types.VerificationError
		switch {
		case errors.As(err, &serr):
			return reject(&types.NotaryError{Kind: types.SignaturesInvalid, Detail: serr.Reason}), nil
		case errors.As(err, &verr):
			return reject(&types.NotaryError{Kind: types.TransactionInvalid, Detail: verr.Reason}), nil
		default:
			return nil, errors.Wrapf(err, "verifying transaction %s", txID)
		}
	}

	if err := r.Store.Commit(txID, req.Transaction.Tx.Inputs); err != nil {
		var nerr *types.NotaryError
		if errors.As(err, &nerr) {
			r.Logger.Infof("Replica %d rejected transaction %s: %v", r.Config.SelfID, txID, nerr)
			return reject(nerr), nil
		}
		return nil, errors.Wrapf(err, "committing inputs of transaction %s", txID)
	}

	sig, err := r.Signer.Sign([]byte(txID))
	if err != nil {
		return nil, errors.Wrapf(err, "signing transaction %s", txID)
	}

	r.Logger.Debugf("Replica %d notarised transaction %s", r.Config.SelfID, txID)
	return &types.ReplicaResponse{
		Signature: &types.DigitalSignature{KeyID: r.Signer.KeyID(), Value: sig},
	}, nil
}

func reject(err *types.NotaryError) *types.ReplicaResponse {
	return &types.ReplicaResponse{Err: err}
}
