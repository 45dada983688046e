package trace

import (
	"testing"
	"time"

	"flexpanes/internal/layout"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(10 * time.Millisecond)
	return c.t
}

func newTestRecorder(maxRecent int) (*Recorder, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	clock := &stepClock{t: time.Unix(1_700_000_000, 0)}
	return NewRecorder(tp.Tracer(InstrumentationName), maxRecent, clock.now), sr
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestRecorder_DragSessionBecomesOneSpan(t *testing.T) {
	rec, sr := newTestRecorder(0)
	e := layout.NewEngine([]layout.ChildDescriptor{
		{Role: layout.RolePanel, Proportion: 1},
		{Role: layout.RoleSeparator},
		{Role: layout.RolePanel, Proportion: 1},
	}, layout.Options{Observer: rec})
	e.SetBounds(layout.Rect{Width: 600, Height: 10})

	s := e.PressSeparator(0)
	s.Move(layout.Point{X: 450})
	s.Release()

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != SpanSeparatorDrag {
		t.Errorf("span name: got %q", span.Name())
	}
	after, ok := attrValue(span.Attributes(), "flexpanes.proportions.after")
	if !ok {
		t.Fatal("missing proportions.after attribute")
	}
	if got := after.AsFloat64Slice(); len(got) != 2 || got[0] != 1.5 || got[1] != 1 {
		t.Errorf("proportions.after: got %v", got)
	}
	applied, _ := attrValue(span.Attributes(), "flexpanes.frames.applied")
	if applied.AsInt64() != 1 {
		t.Errorf("frames.applied: got %d", applied.AsInt64())
	}
	if !span.EndTime().After(span.StartTime()) {
		t.Errorf("expected end after start, got %v..%v", span.StartTime(), span.EndTime())
	}

	last, ok := rec.Last()
	if !ok {
		t.Fatal("expected a summary")
	}
	if want := "drag sep 0: 1 applied, 0 dropped, 0 skipped"; last.String() != want {
		t.Errorf("summary: got %q, want %q", last.String(), want)
	}
}

func TestRecorder_SkippedFramesBecomeEvents(t *testing.T) {
	rec, sr := newTestRecorder(0)

	rec.SeparatorPressed(0, []float64{0, 1})
	rec.SeparatorMoved(0, []float64{0, 1}, false)
	rec.SeparatorMoved(0, []float64{0, 1}, true)
	rec.SeparatorReleased(0, []float64{0, 1}, layout.SessionStats{Skipped: 1, Applied: 1})

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	events := spans[0].Events()
	if len(events) != 1 || events[0].Name != "frame.skipped" {
		t.Errorf("expected one frame.skipped event, got %+v", events)
	}
}

func TestRecorder_SwapAndToggleAreInstantSpans(t *testing.T) {
	rec, sr := newTestRecorder(0)

	rec.PanelsSwapped(0, 2, layout.Order{2, 1, 0})
	rec.PanelToggled(1, true)

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != SpanPanelSwap || spans[1].Name() != SpanPanelToggle {
		t.Errorf("unexpected span names %q, %q", spans[0].Name(), spans[1].Name())
	}
	for _, s := range spans {
		if !s.EndTime().Equal(s.StartTime()) {
			t.Errorf("%s: expected zero duration", s.Name())
		}
	}
	order, _ := attrValue(spans[0].Attributes(), "flexpanes.order")
	if got := order.AsInt64Slice(); len(got) != 3 || got[0] != 2 {
		t.Errorf("order attribute: got %v", got)
	}

	recent := rec.Recent()
	if len(recent) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(recent))
	}
	if recent[0].String() != "swap 0<->2" {
		t.Errorf("swap summary: got %q", recent[0].String())
	}
	if recent[1].String() != "panel 1 collapsed=true" {
		t.Errorf("toggle summary: got %q", recent[1].String())
	}
}

func TestRecorder_KeepsOnlyMaxRecent(t *testing.T) {
	rec, _ := newTestRecorder(3)

	for i := range 5 {
		rec.PanelToggled(i, true)
	}

	recent := rec.Recent()
	if len(recent) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(recent))
	}
	if recent[0].Attributes["panel"] != "2" || recent[2].Attributes["panel"] != "4" {
		t.Errorf("expected panels 2..4, got %v .. %v", recent[0].Attributes, recent[2].Attributes)
	}
}

func TestRecorder_NilTracerStillSummarises(t *testing.T) {
	rec := NewRecorder(nil, 0, nil)

	rec.SeparatorPressed(1, []float64{1, 1, 1})
	rec.SeparatorReleased(1, []float64{1, 2, 1}, layout.SessionStats{Applied: 4, Dropped: 2})

	last, ok := rec.Last()
	if !ok || last.Attributes["dropped"] != "2" {
		t.Errorf("expected drag summary with 2 dropped, got %+v", last)
	}
}

func TestOTLPExporter_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	exp, err := NewOTLPExporter(t.Context())
	if err != nil {
		t.Fatalf("NewOTLPExporter: %v", err)
	}
	if exp != nil {
		t.Fatal("expected nil exporter when endpoint unset")
	}
	if exp.Tracer() != nil {
		t.Error("nil exporter should have no tracer")
	}
	if err := exp.Shutdown(t.Context()); err != nil {
		t.Errorf("Shutdown on nil exporter: %v", err)
	}
}
