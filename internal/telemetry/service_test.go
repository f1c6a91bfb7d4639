package telemetry

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/geo"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type fakeWorkers struct {
	rows     []models.FieldWorker
	archives []models.RouteArchive
}

func (f *fakeWorkers) FindByID(id string) (models.FieldWorker, bool) {
	for _, w := range f.rows {
		if w.ID == id {
			return w, true
		}
	}
	return models.FieldWorker{}, false
}

func (f *fakeWorkers) Update(_ context.Context, worker models.FieldWorker) (bool, error) {
	for i, w := range f.rows {
		if w.ID == worker.ID {
			f.rows[i] = worker
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWorkers) ArchiveRoute(_ context.Context, archive models.RouteArchive) error {
	f.archives = append(f.archives, archive)
	return nil
}

func (f *fakeWorkers) RouteHistory(workerID string) []models.RouteArchive {
	var out []models.RouteArchive
	for _, a := range f.archives {
		if a.WorkerID == workerID {
			out = append(out, a)
		}
	}
	return out
}

type fakeIncidents struct{ count int }

func (f *fakeIncidents) CountByWorker(string) int { return f.count }

type fakeTasks struct{ completed int }

func (f *fakeTasks) CountCompletedByWorker(string) int { return f.completed }

var testNow = time.Date(2025, time.March, 29, 10, 45, 0, 0, time.UTC)

func newTestService(t *testing.T, workers *fakeWorkers, incidents *fakeIncidents, tasks *fakeTasks) Service {
	t.Helper()
	svc, err := NewService(workers, incidents, tasks, 5, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRecordPositionAppendsAndAccruesDistance(t *testing.T) {
	// Three samples on a meridian, roughly 1 km then 2 km apart.
	a := geo.Point{Lat: 0, Lng: 0}
	b := geo.Point{Lat: 0.009, Lng: 0}
	c := geo.Point{Lat: 0.027, Lng: 0}

	workers := &fakeWorkers{rows: []models.FieldWorker{{ID: "P001"}}}
	svc := newTestService(t, workers, &fakeIncidents{}, &fakeTasks{})
	ctx := context.Background()

	for _, p := range []geo.Point{a, b, c} {
		ok, err := svc.RecordPosition(ctx, "P001", p, nil, false)
		if err != nil || !ok {
			t.Fatalf("RecordPosition = %v, %v", ok, err)
		}
	}

	w := workers.rows[0]
	if len(w.Route) != 3 {
		t.Fatalf("route length = %d, want 3", len(w.Route))
	}
	if math.Abs(w.DistanceKm-3.0) > 0.01 {
		t.Errorf("distance = %f km, want ~3.0", w.DistanceKm)
	}
	if w.LastLocation == nil || w.LastLocation.Lat != c.Lat {
		t.Errorf("last location = %+v, want %+v", w.LastLocation, c)
	}
}

func TestRecordPositionSuppressesGPSNoise(t *testing.T) {
	// ~3.3 m apart, under the 5 m floor.
	a := geo.Point{Lat: 0, Lng: 0}
	b := geo.Point{Lat: 0.00003, Lng: 0}

	workers := &fakeWorkers{rows: []models.FieldWorker{{ID: "P001"}}}
	svc := newTestService(t, workers, &fakeIncidents{}, &fakeTasks{})
	ctx := context.Background()

	if _, err := svc.RecordPosition(ctx, "P001", a, nil, false); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordPosition(ctx, "P001", b, nil, false); err != nil {
		t.Fatal(err)
	}

	if workers.rows[0].DistanceKm != 0 {
		t.Errorf("distance = %f, want 0 for sub-floor delta", workers.rows[0].DistanceKm)
	}
	if len(workers.rows[0].Route) != 2 {
		t.Errorf("route length = %d, want 2: noise still lands on the route", len(workers.rows[0].Route))
	}
}

func TestRecordPositionReplacesRoute(t *testing.T) {
	existing := []models.TimedPoint{{Point: geo.Point{Lat: 1, Lng: 1}, Timestamp: testNow.Add(-time.Hour)}}
	workers := &fakeWorkers{rows: []models.FieldWorker{{ID: "P001", Route: existing}}}
	svc := newTestService(t, workers, &fakeIncidents{}, &fakeTasks{})

	replacement := []models.TimedPoint{
		{Point: geo.Point{Lat: 2, Lng: 2}, Timestamp: testNow.Add(-30 * time.Minute)},
		{Point: geo.Point{Lat: 3, Lng: 3}, Timestamp: testNow},
	}
	ok, err := svc.RecordPosition(context.Background(), "P001", geo.Point{Lat: 3, Lng: 3}, replacement, false)
	if err != nil || !ok {
		t.Fatalf("RecordPosition = %v, %v", ok, err)
	}

	if len(workers.rows[0].Route) != 2 {
		t.Fatalf("route length = %d, want 2 after replacement", len(workers.rows[0].Route))
	}
	if len(workers.archives) != 0 {
		t.Error("no archive expected without close-out")
	}
}

func TestRecordPositionCloseOutArchivesAndRestarts(t *testing.T) {
	existing := []models.TimedPoint{
		{Point: geo.Point{Lat: 1, Lng: 1}, Timestamp: testNow.Add(-2 * time.Hour)},
		{Point: geo.Point{Lat: 1.01, Lng: 1}, Timestamp: testNow.Add(-time.Hour)},
	}
	workers := &fakeWorkers{rows: []models.FieldWorker{{ID: "P001", Route: existing}}}
	svc := newTestService(t, workers, &fakeIncidents{}, &fakeTasks{})

	point := geo.Point{Lat: 1.02, Lng: 1}
	ok, err := svc.RecordPosition(context.Background(), "P001", point, existing, true)
	if err != nil || !ok {
		t.Fatalf("RecordPosition = %v, %v", ok, err)
	}

	if len(workers.archives) != 1 {
		t.Fatalf("archives = %d, want 1", len(workers.archives))
	}
	if len(workers.archives[0].Route) != 2 {
		t.Errorf("archived route length = %d, want 2", len(workers.archives[0].Route))
	}
	route := workers.rows[0].Route
	if len(route) != 1 || route[0].Lat != point.Lat {
		t.Errorf("restarted route = %+v, want single current point", route)
	}
}

func TestRecordPositionUnknownWorker(t *testing.T) {
	svc := newTestService(t, &fakeWorkers{}, &fakeIncidents{}, &fakeTasks{})
	ok, err := svc.RecordPosition(context.Background(), "ghost", geo.Point{}, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected false for unknown worker")
	}
}

func TestAddActivityAndStatistics(t *testing.T) {
	workers := &fakeWorkers{rows: []models.FieldWorker{{ID: "P001", DistanceKm: 1.5, ActiveSeconds: 600}}}
	svc := newTestService(t, workers, &fakeIncidents{count: 2}, &fakeTasks{completed: 3})
	ctx := context.Background()

	ok, err := svc.AddActivity(ctx, "P001", 2.5, 900)
	if err != nil || !ok {
		t.Fatalf("AddActivity = %v, %v", ok, err)
	}
	if ok, _ := svc.IncidentReported(ctx, "P001"); !ok {
		t.Fatal("IncidentReported failed")
	}

	stats, ok := svc.Statistics("P001")
	if !ok {
		t.Fatal("Statistics: worker not found")
	}
	if stats.DistanceKm != 4.0 {
		t.Errorf("distance = %f, want 4.0", stats.DistanceKm)
	}
	if stats.ActiveSeconds != 1500 {
		t.Errorf("active seconds = %d, want 1500", stats.ActiveSeconds)
	}
	if stats.IncidentsReported != 2 {
		t.Errorf("incidents = %d, want 2", stats.IncidentsReported)
	}
	if stats.TasksCompleted != 3 {
		t.Errorf("tasks completed = %d, want 3", stats.TasksCompleted)
	}
	if workers.rows[0].IncidentsToday != 1 {
		t.Errorf("incidentsToday = %d, want 1", workers.rows[0].IncidentsToday)
	}

	if _, ok := svc.Statistics("ghost"); ok {
		t.Error("expected false for unknown worker")
	}
}
