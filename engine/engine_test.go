package engine

import (
	"context"
	"testing"

	"github.com/krisalay/s3fifo-cache/types"
)

type recordingStore struct {
	loads int
	puts  int
}

func (s *recordingStore) Load(ctx context.Context, key string) (any, error) {
	s.loads++
	return "loaded:" + key, nil
}

func (s *recordingStore) Put(ctx context.Context, key string, value any) error {
	s.puts++
	return nil
}

type recordingPolicy struct {
	writes int
	closed bool
}

func (p *recordingPolicy) OnWrite(ctx context.Context, key string, value any) { p.writes++ }
func (p *recordingPolicy) Close()                                             { p.closed = true }

func TestNewCacheEngineNormalizesNilMetrics(t *testing.T) {
	e := NewCacheEngine(nil, nil, nil)

	if e.Metrics == nil {
		t.Fatal("expected NoopMetrics substitution, got nil")
	}
	// Must be callable without panicking.
	e.Metrics.Hit()
	e.Metrics.Miss()
}

func TestNewCacheEngineKeepsGivenMetrics(t *testing.T) {
	m := types.NoopMetrics{}
	e := NewCacheEngine(nil, nil, m)

	if e.Metrics != m {
		t.Fatal("expected the provided metrics to be kept")
	}
}

func TestOnWriteForwardsToPolicy(t *testing.T) {
	p := &recordingPolicy{}
	e := NewCacheEngine(nil, p, nil)

	e.OnWrite(context.Background(), "k", "v")
	if p.writes != 1 {
		t.Fatalf("expected 1 forwarded write, got %d", p.writes)
	}
}

func TestOnWriteWithoutPolicyIsNoop(t *testing.T) {
	e := NewCacheEngine(nil, nil, nil)
	e.OnWrite(context.Background(), "k", "v") // must not panic
}

func TestLoad(t *testing.T) {
	s := &recordingStore{}
	e := NewCacheEngine(s, nil, nil)

	if !e.CanLoad() {
		t.Fatal("expected CanLoad with a loader configured")
	}

	v, err := e.Load(context.Background(), "x")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if v != "loaded:x" || s.loads != 1 {
		t.Fatalf("expected loaded:x with 1 load, got %v (%d loads)", v, s.loads)
	}
}

func TestCanLoadWithoutLoader(t *testing.T) {
	e := NewCacheEngine(nil, nil, nil)
	if e.CanLoad() {
		t.Fatal("expected CanLoad false without a loader")
	}
}

func TestCloseShutsDownPolicy(t *testing.T) {
	p := &recordingPolicy{}
	e := NewCacheEngine(nil, p, nil)

	e.Close()
	if !p.closed {
		t.Fatal("expected policy closed")
	}

	// Close without a policy is a no-op.
	NewCacheEngine(nil, nil, nil).Close()
}
