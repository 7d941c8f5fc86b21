package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func delta(t *testing.T, collector prometheus.Collector, observe func()) float64 {
	t.Helper()

	before := testutil.ToFloat64(collector)
	observe()
	after := testutil.ToFloat64(collector)
	return after - before
}

func TestBuilderRecords(t *testing.T) {
	m := NewBuilder("")
	start := time.Now().Add(-time.Second)

	if inc := delta(t, builderFilesTotal.WithLabelValues("unknown", "success"), func() {
		m.ObserveFile(nil, 10, 4, start)
	}); inc != 1 {
		t.Fatalf("expected file counter increment, got %v", inc)
	}

	if inc := delta(t, builderBlocksTotal.WithLabelValues("unknown", "out"), func() {
		m.ObserveFile(errors.New("corrupt"), 3, 2, start)
	}); inc != 2 {
		t.Fatalf("expected filtered blocks to add 2, got %v", inc)
	}

	if inc := delta(t, builderAddressesTotal.WithLabelValues("unknown", "duplicate"), func() {
		m.ObserveInsert(5, 7)
	}); inc != 7 {
		t.Fatalf("expected duplicate counter to add 7, got %v", inc)
	}
}

func TestBuilderRunKinds(t *testing.T) {
	m := NewBuilder(model.Testnet)
	start := time.Now()

	tests := []struct {
		name string
		err  error
		kind string
	}{
		{name: "success", err: nil, kind: "none"},
		{name: "interrupted", err: context.Canceled, kind: "interrupted"},
		{name: "capacity", err: &model.CapacityExceededError{Capacity: 8, Limit: 6}, kind: "capacity_exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if inc := delta(t, builderRunsTotal.WithLabelValues("testnet", tt.kind), func() {
				m.ObserveRun(tt.err, start)
			}); inc != 1 {
				t.Fatalf("expected run counter increment for %s, got %v", tt.kind, inc)
			}
		})
	}
}

func TestStoreRecords(t *testing.T) {
	m := NewStore(model.Mainnet)
	start := time.Now().Add(-10 * time.Millisecond)

	if inc := delta(t, storeCheckpointsTotal.WithLabelValues("mainnet", "error"), func() {
		m.ObserveCheckpoint(3, errors.New("sync failed"), start)
	}); inc != 1 {
		t.Fatalf("expected checkpoint error increment, got %v", inc)
	}
	m.ObserveCheckpoint(1, nil, start)

	m.ObserveEntries(75, 100)
	if got := testutil.ToFloat64(storeEntries.WithLabelValues("mainnet")); got != 75 {
		t.Fatalf("entries gauge = %v, want 75", got)
	}
	if got := testutil.ToFloat64(storeFill.WithLabelValues("mainnet")); got != 0.75 {
		t.Fatalf("fill gauge = %v, want 0.75", got)
	}
}
