// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package types

import "fmt"

// ErrorKind enumerates the classified rejections a notary replica may
// produce. The set is closed: an honest replica maps every deterministic
// rejection to exactly one of these kinds, and anything it cannot
// classify aborts command execution instead of being forced into the set.
type ErrorKind int

const (
	// SignaturesMissing: the transaction carries no verifiable signature,
	// or a signature failed verification ahead of validation.
	SignaturesMissing ErrorKind = iota + 1
	// SignaturesInvalid: a signature fault surfaced while verifying the
	// resolved transaction against the ledger.
	SignaturesInvalid
	// TransactionInvalid: the transaction failed ledger verification or
	// its time window, or the commit request could not be decoded.
	TransactionInvalid
	// Conflict: an input state was already consumed by a different
	// transaction.
	Conflict
)

func (k ErrorKind) String() string {
	switch k {
	case SignaturesMissing:
		return "SIGNATURES_MISSING"
	case SignaturesInvalid:
		return "SIGNATURES_INVALID"
	case TransactionInvalid:
		return "TRANSACTION_INVALID"
	case Conflict:
		return "CONFLICT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(k))
	}
}

// NotaryError is a classified, deterministic rejection. Honest replicas
// given the same request over the same store state produce identical
// kinds and details. For Conflict, Ref names the contested input state
// and ConsumedBy the transaction that consumed it.
type NotaryError struct {
	Kind       ErrorKind
	Detail     string
	Ref        StateRef
	ConsumedBy TxID
}

func (e *NotaryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// VerificationError is returned by a ledger Verifier or a Resolver for a
// deterministic ledger-level rejection of a transaction.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return "transaction verification failed: " + e.Reason
}

// SignatureError is returned by a ledger Verifier for a signature fault
// discovered while verifying a resolved transaction.
type SignatureError struct {
	Reason string
}

func (e *SignatureError) Error() string {
	return "signature verification failed: " + e.Reason
}
