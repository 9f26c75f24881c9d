package main

import (
	"sync"

	"github.com/NiubilityNetCore/claim-share-server/events"
	"github.com/NiubilityNetCore/claim-share-server/services/kafka"
)

// relayPublisher forwards to the current kafka producer. Broker rediscovery
// swaps the producer underneath without the rest of the app noticing.
type relayPublisher struct {
	mu sync.RWMutex
	ap *kafka.AsyncProducer
}

func (r *relayPublisher) set(ap *kafka.AsyncProducer) {
	r.mu.Lock()
	r.ap = ap
	r.mu.Unlock()
}

// Publish implements the events.Publisher interface.
func (r *relayPublisher) Publish(e events.Event) {
	r.mu.RLock()
	ap := r.ap
	r.mu.RUnlock()
	if ap != nil {
		ap.Publish(e)
	}
}
