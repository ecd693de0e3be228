// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package types

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"

	"github.com/hdevalence/ed25519consensus"
	"github.com/pkg/errors"
)

// ErrNoSignatures is returned by VerifySignatures when the transaction
// carries no signature other than the excluded key's.
var ErrNoSignatures = errors.New("no signatures attached to transaction")

// VerifySignatures checks every signature attached to the transaction
// over its id, skipping the key given in excluding (the notary's own key,
// whose signature is the output of notarisation, not an input to it).
// Verification follows ZIP-215 rules, so acceptance of a given signature
// is bit-for-bit identical on every replica.
func (stx SignedTransaction) VerifySignatures(excluding []byte) error {
	msg := []byte(stx.Tx.ID())
	checked := 0
	for _, sig := range stx.Signatures {
		if len(excluding) > 0 && bytes.Equal(sig.KeyID, excluding) {
			continue
		}
		if len(sig.KeyID) != ed25519.PublicKeySize {
			return errors.Errorf("signature carries malformed key %s", hex.EncodeToString(sig.KeyID))
		}
		if !ed25519consensus.Verify(ed25519.PublicKey(sig.KeyID), msg, sig.Value) {
			return errors.Errorf("invalid signature by key %s", hex.EncodeToString(sig.KeyID))
		}
		checked++
	}
	if checked == 0 {
		return ErrNoSignatures
	}
	return nil
}
