// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package notary

import (
	"context"

	"github.com/SmartBFT-Go/notary/pkg/api"
	"github.com/SmartBFT-Go/notary/pkg/types"
)

// Handler is the front door of the notary: it receives one signed
// transaction from a counterparty and relays the cluster verdict back.
type Handler struct {
	Client *Client
	Logger api.Logger
}

// Notarise returns the quorum of notary signatures over the transaction
// id, or the cluster's rejection as a *types.NotaryError.
func (h *Handler) Notarise(ctx context.Context, stx types.SignedTransaction, caller types.PartyID) ([]types.DigitalSignature, error) {
	verdict, err := h.Client.CommitTransaction(ctx, stx, caller)
	if err != nil {
		h.Logger.Errorf("Notarisation of transaction %s from %s failed: %v", stx.Tx.ID(), caller, err)
		return nil, err
	}
	if verdict.Err != nil {
		h.Logger.Warnf("Transaction %s from %s was rejected: %v", stx.Tx.ID(), caller, verdict.Err)
		return nil, verdict.Err
	}
	h.Logger.Infof("Transaction %s from %s notarised with %d signatures", stx.Tx.ID(), caller, len(verdict.Signatures))
	return verdict.Signatures, nil
}
