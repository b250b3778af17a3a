// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// gateKeyPrefix namespaces in-flight submission keys in Valkey.
	gateKeyPrefix = "submit:"

	// DefaultGateTTL caps how long a crashed request can hold the gate.
	// It must exceed the course API timeout.
	DefaultGateTTL = 30 * time.Second
)

// SubmitGate allows at most one create-course call in flight per tutor.
// It is the server-side counterpart of disabling the form while loading.
type SubmitGate struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmitGate creates a gate backed by the given Valkey client.
func NewSubmitGate(client *redis.Client, ttl time.Duration) *SubmitGate {
	if ttl <= 0 {
		ttl = DefaultGateTTL
	}
	return &SubmitGate{client: client, ttl: ttl}
}

// Acquire claims the gate for key. It returns false when another submission
// for the same key is still running.
func (g *SubmitGate) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, gateKeyPrefix+key, time.Now().Unix(), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submit gate acquire: %w", err)
	}
	return ok, nil
}

// Release frees the gate for key. Errors are logged; the TTL clears the key
// eventually either way.
func (g *SubmitGate) Release(ctx context.Context, key string) {
	if err := g.client.Del(ctx, gateKeyPrefix+key).Err(); err != nil {
		slog.Warn("submit gate release error", "key", key, "error", err)
	}
}
