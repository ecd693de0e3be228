// Copyright IBM Corp. All Rights Reserved.
//
// SPDX-License-Identifier: Apache-2.0
//

package notary

import metrics "github.com/SmartBFT-Go/notary/pkg/api"

var countOfNotarisedOpts = metrics.CounterOpts{
	Namespace:    "notary",
	Subsystem:    "replica",
	Name:         "count_of_notarised",
	Help:         "Count of transactions notarised by this replica.",
	StatsdFormat: "%{#fqname}",
}

var countOfRejectedOpts = metrics.CounterOpts{
	Namespace:    "notary",
	Subsystem:    "replica",
	Name:         "count_of_rejected",
	Help:         "Count of transactions rejected by this replica.",
	LabelNames:   []string{"kind"},
	StatsdFormat: "%{#fqname}.%{kind}",
}

var countOfInflightOpts = metrics.GaugeOpts{
	Namespace:    "notary",
	Subsystem:    "client",
	Name:         "count_of_inflight",
	Help:         "Count of commit submissions currently in flight.",
	StatsdFormat: "%{#fqname}",
}

// Metrics encapsulates the meters of the notary pipeline.
type Metrics struct {
	CountOfNotarised metrics.Counter
	CountOfRejected  metrics.Counter
	CountOfInflight  metrics.Gauge
}

func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		CountOfNotarised: p.NewCounter(countOfNotarisedOpts),
		CountOfRejected:  p.NewCounter(countOfRejectedOpts),
		CountOfInflight:  p.NewGauge(countOfInflightOpts),
	}
}
