//nolint:testpackage // Testing the limiter clock requires same package access
package api

import (
	"testing"
	"time"
)

func TestIntakeLimiter_PerClient(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	l := NewIntakeLimiter(1, 2, nil)
	l.now = func() time.Time { return now }

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("burst of 2 should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Error("third request within the same instant should be throttled")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("other clients have their own budget")
	}

	now = now.Add(time.Second)
	if !l.Allow("10.0.0.1") {
		t.Error("a token should refill after one second")
	}
}

func TestIntakeLimiter_EvictsIdleClients(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	l := NewIntakeLimiter(1, 1, nil)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(clientIdleTTL + time.Minute)
	l.Allow("10.0.0.2")

	if _, ok := l.clients["10.0.0.1"]; ok {
		t.Error("idle client should have been evicted")
	}
	if len(l.clients) != 1 {
		t.Errorf("clients = %d, want 1", len(l.clients))
	}
}
