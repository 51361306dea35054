package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

const (
	mirrorBucket  = "orders"
	eventsSubject = "orders.events"
)

// Mirror replicates the order collection into a NATS JetStream key-value
// bucket and publishes change events, so out-of-process consumers (staff
// dashboards, the robot bridge) can follow along. The in-memory store stays
// authoritative; mirror failures surface as ErrUpstreamUnavailable and the
// caller decides whether to degrade.
type Mirror struct {
	nc *nats.Conn
	kv nats.KeyValue
}

func NewMirror(nc *nats.Conn) (*Mirror, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	kv, err := js.KeyValue(mirrorBucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{Bucket: mirrorBucket})
	}
	if err != nil {
		return nil, fmt.Errorf("open bucket %q: %w", mirrorBucket, err)
	}

	return &Mirror{nc: nc, kv: kv}, nil
}

// PutOrder writes the order's current state under its ID.
func (m *Mirror) PutOrder(ctx context.Context, o Order) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", o.ID, err)
	}
	if _, err := m.kv.Put(o.ID, b); err != nil {
		return fmt.Errorf("%w: put order %s: %v", ErrUpstreamUnavailable, o.ID, err)
	}
	return nil
}

// PublishEvent emits a change event on the orders subject. Fire-and-forget.
func (m *Mirror) PublishEvent(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := m.nc.Publish(eventsSubject, b); err != nil {
		return fmt.Errorf("%w: publish event: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// Purge removes every mirrored order. Pairs with ClearAll on the
// authoritative store.
func (m *Mirror) Purge(ctx context.Context) error {
	keys, err := m.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: list keys: %v", ErrUpstreamUnavailable, err)
	}
	for _, k := range keys {
		if err := m.kv.Purge(k); err != nil {
			return fmt.Errorf("%w: purge %s: %v", ErrUpstreamUnavailable, k, err)
		}
	}
	return nil
}
