/*
Package metrics exposes trie activity as prometheus metrics.
*/
package metrics

import (
	"fmt"
	"io"
	"strings"

	"github.com/nspcc-dev/bintrie/pkg/bintrie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Namespace is the prefix of all metrics defined here.
const Namespace = "bintrie"

// Metrics for monitoring trie activity.
var (
	//nodesCreated prometheus metric.
	nodesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of created trie nodes including intermediate ones",
			Name:      "nodes_created_total",
			Namespace: Namespace,
		},
	)
	//payloadsStored prometheus metric.
	payloadsStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of processed inserts",
			Name:      "payloads_stored_total",
			Namespace: Namespace,
		},
	)
	//digestCacheHits prometheus metric.
	digestCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of reused cached node digests",
			Name:      "digest_cache_hits_total",
			Namespace: Namespace,
		},
	)
	//digestComputed prometheus metric.
	digestComputed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of recomputed node digests",
			Name:      "digest_computed_total",
			Namespace: Namespace,
		},
	)
)

func init() {
	prometheus.MustRegister(
		nodesCreated,
		payloadsStored,
		digestCacheHits,
		digestComputed,
	)
}

// Observer implements bintrie.Observer by updating package counters.
type Observer struct{}

var _ bintrie.Observer = Observer{}

// NodeCreated implements bintrie.Observer.
func (Observer) NodeCreated() { nodesCreated.Inc() }

// PayloadStored implements bintrie.Observer.
func (Observer) PayloadStored() { payloadsStored.Inc() }

// DigestCacheHit implements bintrie.Observer.
func (Observer) DigestCacheHit() { digestCacheHits.Inc() }

// DigestComputed implements bintrie.Observer.
func (Observer) DigestComputed() { digestComputed.Inc() }

// Write dumps all bintrie metrics gathered by g in the text exposition
// format. prometheus.DefaultGatherer is used if g is nil.
func Write(w io.Writer, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), Namespace+"_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
