package trace

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"flexpanes/internal/layout"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Span names.
const (
	SpanSeparatorDrag = "separator.drag"
	SpanPanelSwap     = "panel.swap"
	SpanPanelToggle   = "panel.toggle"
)

// Summary is a finished interaction, kept for display.
type Summary struct {
	Name       string
	Start      time.Time
	Duration   time.Duration
	Attributes map[string]string
}

// String renders the summary on one line.
func (s Summary) String() string {
	switch s.Name {
	case SpanSeparatorDrag:
		return fmt.Sprintf("drag sep %s: %s applied, %s dropped, %s skipped",
			s.Attributes["separator"], s.Attributes["applied"], s.Attributes["dropped"], s.Attributes["skipped"])
	case SpanPanelSwap:
		return fmt.Sprintf("swap %s<->%s", s.Attributes["source"], s.Attributes["over"])
	case SpanPanelToggle:
		return fmt.Sprintf("panel %s collapsed=%s", s.Attributes["panel"], s.Attributes["collapsed"])
	}
	return s.Name
}

// Recorder implements layout.Observer. Each separator drag becomes one span
// from press to release; swaps and toggles are zero-length spans.
type Recorder struct {
	tracer    oteltrace.Tracer
	now       func() time.Time
	maxRecent int
	recent    []Summary // oldest first

	drag      oteltrace.Span
	dragStart time.Time
}

var _ layout.Observer = (*Recorder)(nil)

// NewRecorder creates a recorder keeping the last maxRecent summaries
// (default 10). A nil tracer records summaries only.
func NewRecorder(tracer oteltrace.Tracer, maxRecent int, now func() time.Time) *Recorder {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(InstrumentationName)
	}
	if maxRecent <= 0 {
		maxRecent = 10
	}
	if now == nil {
		now = time.Now
	}
	return &Recorder{tracer: tracer, now: now, maxRecent: maxRecent}
}

// Recent returns finished interactions, newest last.
func (r *Recorder) Recent() []Summary {
	out := make([]Summary, len(r.recent))
	copy(out, r.recent)
	return out
}

// Last returns the newest finished interaction.
func (r *Recorder) Last() (Summary, bool) {
	if len(r.recent) == 0 {
		return Summary{}, false
	}
	return r.recent[len(r.recent)-1], true
}

// SeparatorPressed implements layout.Observer.
func (r *Recorder) SeparatorPressed(index int, proportions []float64) {
	if r.drag != nil {
		r.drag.End()
	}
	r.dragStart = r.now()
	_, r.drag = r.tracer.Start(context.Background(), SpanSeparatorDrag,
		oteltrace.WithTimestamp(r.dragStart),
		oteltrace.WithAttributes(
			attribute.Int("flexpanes.separator.index", index),
			attribute.Float64Slice("flexpanes.proportions.before", proportions),
		))
}

// SeparatorMoved implements layout.Observer. Only skipped frames are worth
// an event; applied ones show up in the final proportions.
func (r *Recorder) SeparatorMoved(index int, _ []float64, applied bool) {
	if r.drag == nil || applied {
		return
	}
	r.drag.AddEvent("frame.skipped", oteltrace.WithTimestamp(r.now()))
}

// SeparatorReleased implements layout.Observer.
func (r *Recorder) SeparatorReleased(index int, proportions []float64, stats layout.SessionStats) {
	end := r.now()
	if r.drag != nil {
		r.drag.SetAttributes(
			attribute.Float64Slice("flexpanes.proportions.after", proportions),
			attribute.Int("flexpanes.frames.applied", stats.Applied),
			attribute.Int("flexpanes.frames.dropped", stats.Dropped),
			attribute.Int("flexpanes.frames.skipped", stats.Skipped),
		)
		r.drag.End(oteltrace.WithTimestamp(end))
		r.drag = nil
	}
	r.push(Summary{
		Name:     SpanSeparatorDrag,
		Start:    r.dragStart,
		Duration: end.Sub(r.dragStart),
		Attributes: map[string]string{
			"separator": strconv.Itoa(index),
			"applied":   strconv.Itoa(stats.Applied),
			"dropped":   strconv.Itoa(stats.Dropped),
			"skipped":   strconv.Itoa(stats.Skipped),
		},
	})
}

// PanelsSwapped implements layout.Observer.
func (r *Recorder) PanelsSwapped(source, over int, order layout.Order) {
	r.instant(SpanPanelSwap, map[string]string{
		"source": strconv.Itoa(source),
		"over":   strconv.Itoa(over),
		"order":  fmt.Sprint([]int(order)),
	}, attribute.Int("flexpanes.panel.source", source),
		attribute.Int("flexpanes.panel.over", over),
		attribute.IntSlice("flexpanes.order", order))
}

// PanelToggled implements layout.Observer.
func (r *Recorder) PanelToggled(index int, collapsed bool) {
	r.instant(SpanPanelToggle, map[string]string{
		"panel":     strconv.Itoa(index),
		"collapsed": strconv.FormatBool(collapsed),
	}, attribute.Int("flexpanes.panel.index", index),
		attribute.Bool("flexpanes.panel.collapsed", collapsed))
}

func (r *Recorder) instant(name string, attrs map[string]string, kv ...attribute.KeyValue) {
	at := r.now()
	_, span := r.tracer.Start(context.Background(), name,
		oteltrace.WithTimestamp(at),
		oteltrace.WithAttributes(kv...))
	span.End(oteltrace.WithTimestamp(at))
	r.push(Summary{Name: name, Start: at, Attributes: attrs})
}

func (r *Recorder) push(s Summary) {
	r.recent = append(r.recent, s)
	if len(r.recent) > r.maxRecent {
		r.recent = r.recent[len(r.recent)-r.maxRecent:]
	}
}
