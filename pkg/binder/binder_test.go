package binder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chimdiadi/go-geoform/pkg/binder/debounce"
	"github.com/chimdiadi/go-geoform/pkg/suggest"
	"github.com/google/go-cmp/cmp"
)

// testClock arms timers that fire only when the test drives them.
type testClock struct {
	mu     sync.Mutex
	timers []func()
}

func (c *testClock) arm(_ time.Duration, fn func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = append(c.timers, fn)
	return noopTimer{}
}

func (c *testClock) fireLast() {
	c.mu.Lock()
	fn := c.timers[len(c.timers)-1]
	c.mu.Unlock()
	fn()
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

type recordingStore struct {
	mu     sync.Mutex
	values map[string]any
}

func newRecordingStore() *recordingStore {
	return &recordingStore{values: make(map[string]any)}
}

func (s *recordingStore) SetValue(path string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[path] = value
	return nil
}

func (s *recordingStore) get(path string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[path]
	return v, ok
}

type recordingWidget struct {
	mu      sync.Mutex
	updates [][]string
}

func (w *recordingWidget) SetOptions(labels []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updates = append(w.updates, append([]string(nil), labels...))
}

func (w *recordingWidget) last() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.updates) == 0 {
		return nil
	}
	return w.updates[len(w.updates)-1]
}

func (w *recordingWidget) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.updates)
}

type countingSource struct {
	mu    sync.Mutex
	texts []string
	items []suggest.Suggestion
	err   error
}

func (s *countingSource) Suggest(_ context.Context, text string) ([]suggest.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	if s.err != nil {
		return nil, s.err
	}
	return append([]suggest.Suggestion(nil), s.items...), nil
}

func (s *countingSource) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

var parisSuggestions = []suggest.Suggestion{
	{Label: "Paris, France", Lat: 48.8566, Lon: 2.3522},
	{Label: "Paris, Texas, USA", Lat: 33.6609, Lon: -95.5555},
}

func newTestBinder(t *testing.T, src suggest.Source, widget Widget, clock *testClock) (*Binder, *recordingStore) {
	t.Helper()
	b := New(
		WithSource(src),
		WithWidget(widget),
		WithClock(clock.arm),
	)
	store := newRecordingStore()
	if !b.Attach("origin", store) {
		t.Fatalf("attach failed")
	}
	return b, store
}

func TestAttachIsIdempotent(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{items: parisSuggestions}
	b, store := newTestBinder(t, src, &recordingWidget{}, clock)

	if b.Attach("origin", store) {
		t.Fatalf("second attach should no-op")
	}
	if b.Attach("destination", store) {
		t.Fatalf("attach to another input while bound should no-op")
	}

	b.OnInput("paris")
	clock.fireLast()

	if got := src.calls(); len(got) != 1 {
		t.Fatalf("expected one lookup after repeated attach, got %v", got)
	}
}

func TestAttachSilentlySkipsMissingInput(t *testing.T) {
	b := New()
	if b.Attach("", newRecordingStore()) {
		t.Fatalf("empty input name should skip")
	}
	if b.Attach("origin", nil) {
		t.Fatalf("nil store should skip")
	}
	if b.Attached() {
		t.Fatalf("binder should remain detached")
	}
}

func TestBelowMinCharsIssuesNoLookup(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{items: parisSuggestions}
	widget := &recordingWidget{}
	b, _ := newTestBinder(t, src, widget, clock)

	b.OnInput("pa")
	clock.fireLast()

	if got := src.calls(); len(got) != 0 {
		t.Fatalf("expected no lookups below threshold, got %v", got)
	}
	if got := widget.last(); len(got) != 0 {
		t.Fatalf("expected widget cleared, got %v", got)
	}
	if widget.count() != 1 {
		t.Fatalf("expected one widget update, got %d", widget.count())
	}
}

func TestBurstCollapsesToSingleLookupWithFinalText(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{items: parisSuggestions}
	b, _ := newTestBinder(t, src, &recordingWidget{}, clock)

	for _, text := range []string{"p", "pa", "par", "pari", "paris"} {
		b.OnInput(text)
	}
	clock.fireLast()

	want := []string{"paris"}
	if diff := cmp.Diff(want, src.calls()); diff != "" {
		t.Fatalf("lookup calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWidgetShowsLabelsInResponseOrder(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{items: parisSuggestions}
	widget := &recordingWidget{}
	b, _ := newTestBinder(t, src, widget, clock)

	b.OnInput("paris")
	clock.fireLast()

	want := []string{"Paris, France", "Paris, Texas, USA"}
	if diff := cmp.Diff(want, widget.last()); diff != "" {
		t.Fatalf("widget labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(parisSuggestions, b.Suggestions()); diff != "" {
		t.Fatalf("owned list mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectWritesCoordinatePair(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{items: parisSuggestions}
	b, store := newTestBinder(t, src, &recordingWidget{}, clock)

	b.OnInput("paris")
	clock.fireLast()
	b.OnSelect("Paris, France")

	lat, ok := store.get("origin_lat")
	if !ok || lat != 48.8566 {
		t.Fatalf("unexpected origin_lat: %v (ok=%v)", lat, ok)
	}
	lon, ok := store.get("origin_lon")
	if !ok || lon != 2.3522 {
		t.Fatalf("unexpected origin_lon: %v (ok=%v)", lon, ok)
	}
}

func TestSelectStaleLabelLeavesFieldsUnchanged(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{items: parisSuggestions}
	b, store := newTestBinder(t, src, &recordingWidget{}, clock)

	b.OnInput("paris")
	clock.fireLast()
	b.OnSelect("Lyon, France")

	if _, ok := store.get("origin_lat"); ok {
		t.Fatalf("origin_lat should be untouched on stale selection")
	}
	if _, ok := store.get("origin_lon"); ok {
		t.Fatalf("origin_lon should be untouched on stale selection")
	}
}

func TestLookupFailureYieldsEmptyList(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{err: errors.New("boom")}
	widget := &recordingWidget{}
	b, _ := newTestBinder(t, src, widget, clock)

	b.OnInput("paris")
	clock.fireLast()

	if got := widget.last(); len(got) != 0 {
		t.Fatalf("expected empty options after failure, got %v", got)
	}
	if got := b.Suggestions(); len(got) != 0 {
		t.Fatalf("expected empty list after failure, got %v", got)
	}
}

func TestCustomCoordinateFields(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{items: parisSuggestions}
	b := New(
		WithSource(src),
		WithClock(clock.arm),
		WithCoordinateFields("pickup.lat", "pickup.lon"),
	)
	store := newRecordingStore()
	b.Attach("pickup", store)

	b.OnInput("paris")
	clock.fireLast()
	b.OnSelect("Paris, Texas, USA")

	if lat, _ := store.get("pickup.lat"); lat != 33.6609 {
		t.Fatalf("unexpected pickup.lat: %v", lat)
	}
	if lon, _ := store.get("pickup.lon"); lon != -95.5555 {
		t.Fatalf("unexpected pickup.lon: %v", lon)
	}
}

// gateSource blocks each Suggest call until the test releases it, simulating
// a slow remote lookup.
type gateSource struct {
	mu      sync.Mutex
	pending []chan []suggest.Suggestion
}

func (g *gateSource) Suggest(ctx context.Context, _ string) ([]suggest.Suggestion, error) {
	release := make(chan []suggest.Suggestion)
	g.mu.Lock()
	g.pending = append(g.pending, release)
	g.mu.Unlock()
	select {
	case items := <-release:
		return items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gateSource) release(i int, items []suggest.Suggestion) {
	g.mu.Lock()
	ch := g.pending[i]
	g.mu.Unlock()
	ch <- items
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	clock := &testClock{}
	src := &gateSource{}
	widget := &recordingWidget{}
	b, _ := newTestBinder(t, src, widget, clock)

	first := make(chan struct{})
	b.OnInput("berlin")
	go func() {
		clock.fireLast()
		close(first)
	}()
	waitForPending(t, src, 1)

	second := make(chan struct{})
	b.OnInput("paris")
	go func() {
		clock.fireLast()
		close(second)
	}()
	waitForPending(t, src, 2)

	// The newer lookup completes first and publishes.
	src.release(1, parisSuggestions)
	<-second

	// The older lookup completes last; its result must be dropped.
	src.release(0, []suggest.Suggestion{{Label: "Berlin, Germany", Lat: 52.52, Lon: 13.405}})
	<-first

	want := []string{"Paris, France", "Paris, Texas, USA"}
	if diff := cmp.Diff(want, widget.last()); diff != "" {
		t.Fatalf("stale response overwrote newer result (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(parisSuggestions, b.Suggestions()); diff != "" {
		t.Fatalf("owned list mismatch (-want +got):\n%s", diff)
	}
}

func waitForPending(t *testing.T, src *gateSource, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		src.mu.Lock()
		count := len(src.pending)
		src.mu.Unlock()
		if count >= n {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d in-flight lookups", n)
		case <-time.After(time.Millisecond):
		}
	}
}

func TestDetachCancelsPendingAndClearsList(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{items: parisSuggestions}
	widget := &recordingWidget{}
	b, _ := newTestBinder(t, src, widget, clock)

	b.OnInput("paris")
	clock.fireLast()
	if b.Suggestions() == nil {
		t.Fatalf("expected suggestions before detach")
	}

	b.OnInput("berlin")
	b.Detach()

	if b.Pending() {
		t.Fatalf("pending lookup should be cancelled on detach")
	}
	if got := b.Suggestions(); len(got) != 0 {
		t.Fatalf("expected empty list after detach, got %v", got)
	}
	if b.Attached() || b.Input() != "" {
		t.Fatalf("binder should be detached")
	}

	b.OnInput("lyon")
	if b.Pending() {
		t.Fatalf("input while detached should be ignored")
	}
	if got := src.calls(); len(got) != 1 {
		t.Fatalf("expected only the pre-detach lookup, got %v", got)
	}
}

func TestFlushRunsPendingLookupNow(t *testing.T) {
	clock := &testClock{}
	src := &countingSource{items: parisSuggestions}
	b, _ := newTestBinder(t, src, &recordingWidget{}, clock)

	b.OnInput("paris")
	if !b.Flush() {
		t.Fatalf("expected flush to run the pending lookup")
	}
	if got := src.calls(); len(got) != 1 || got[0] != "paris" {
		t.Fatalf("unexpected lookup calls: %v", got)
	}
	if b.Flush() {
		t.Fatalf("second flush should find nothing pending")
	}
}
