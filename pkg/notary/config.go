// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package notary

import (
	"time"

	"github.com/pkg/errors"
)

// Configuration defines the parameters needed in order to create an
// instance of Replica or Client.
type Configuration struct {
	// SelfID is the identifier of this replica within the cluster.
	SelfID uint64

	// MaxInflight is the maximal number of commit submissions a Client
	// keeps in flight concurrently; further callers block until a slot
	// frees up.
	MaxInflight int64
	// SubmitTimeout is the interval after which a Client stops waiting
	// for the cluster verdict on a submission. The command, once
	// admitted to the agreement substrate, still executes on the
	// replicas. Zero disables the timeout.
	SubmitTimeout time.Duration
}

// DefaultConfiguration contains reasonable values for a small cluster.
var DefaultConfiguration = Configuration{
	MaxInflight:   200,
	SubmitTimeout: 30 * time.Second,
}

// Validate checks that the configuration is sane.
func (c Configuration) Validate() error {
	if c.MaxInflight <= 0 {
		return errors.Errorf("MaxInflight should be greater than zero")
	}
	if c.SubmitTimeout < 0 {
		return errors.Errorf("SubmitTimeout should not be negative")
	}
	return nil
}
