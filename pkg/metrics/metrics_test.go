package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilSafeWithoutRegisterer(t *testing.T) {
	m := New(nil)
	m.ObserveRequest("GET", "/animals", "200", time.Millisecond)
	m.IncLogin("success")
	m.IncSnapshotWrite("fazenda_users")
}

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncLogin("success")
	m.IncLogin("success")
	m.IncLogin("denied")
	m.IncSnapshotWrite("fazenda_users")

	if got := testutil.ToFloat64(m.logins.WithLabelValues("success")); got != 2 {
		t.Fatalf("success logins = %f, want 2", got)
	}
	if got := testutil.ToFloat64(m.snapshotWrites.WithLabelValues("fazenda_users")); got != 1 {
		t.Fatalf("snapshot writes = %f, want 1", got)
	}
}
