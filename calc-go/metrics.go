package calc_go

import (
	"cmp"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ahrtr/gocontainer/queue/priorityqueue"
)

// / A simple stopwatch which returns the time since Restart() was called.
type Stopwatch struct {
	started time.Time
}

func NewStopwatch() *Stopwatch {
	sw := &Stopwatch{}
	sw.Restart()
	return sw
}

func (sw *Stopwatch) Restart() { sw.started = time.Now() }

// / Seconds since Restart() call.
func (sw *Stopwatch) Elapsed() float64 { return time.Since(sw.started).Seconds() }

func (sw *Stopwatch) ElapsedNanos() int64 { return int64(time.Since(sw.started)) }

type Metric struct {
	Name string
	/// Number of times we've hit the code path.
	Count int
	/// Total time in nanoseconds we've spent on the code path.
	Sum int64
}

// / Metrics collects per-operation timings, enabled with `-d stats`.
type Metrics struct {
	mu      sync.Mutex
	metrics map[string]*Metric
}

func NewMetrics() *Metrics {
	return &Metrics{metrics: map[string]*Metric{}}
}

func (m *Metrics) Record(name string, nanos int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	metric, ok := m.metrics[name]
	if !ok {
		metric = &Metric{Name: name}
		m.metrics[name] = metric
	}
	metric.Count++
	metric.Sum += nanos
}

// / Lookup returns a copy of the named metric.
func (m *Metrics) Lookup(name string) (Metric, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	metric, ok := m.metrics[name]
	if !ok {
		return Metric{}, false
	}
	return *metric, true
}

// / Orders metrics by total time, largest first, then by name.
type metricCmp struct{}

func (metricCmp) Compare(v1, v2 interface{}) (int, error) {
	a, ok1 := v1.(Metric)
	b, ok2 := v2.(Metric)
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("metricCmp: unexpected values %T, %T", v1, v2)
	}
	if c := cmp.Compare(b.Sum, a.Sum); c != 0 {
		return c, nil
	}
	return cmp.Compare(a.Name, b.Name), nil
}

// / Sorted snapshot of all metrics.
func (m *Metrics) Snapshot() []Metric {
	m.mu.Lock()
	queue := priorityqueue.New().WithComparator(metricCmp{})
	for _, metric := range m.metrics {
		queue.Add(*metric)
	}
	m.mu.Unlock()

	out := make([]Metric, 0, queue.Size())
	for !queue.IsEmpty() {
		out = append(out, queue.Poll().(Metric))
	}
	return out
}

// / Print a summary report.
func (m *Metrics) Report(w io.Writer) {
	metrics := m.Snapshot()
	width := len("metric")
	for _, metric := range metrics {
		width = max(len(metric.Name), width)
	}

	fmt.Fprintf(w, "%-*s\t%-6s\t%-9s\t%s\n", width, "metric", "count", "avg (us)", "total (ms)")
	for _, metric := range metrics {
		micros := float64(metric.Sum) / 1e3
		fmt.Fprintf(w, "%-*s\t%-6d\t%-8.1f\t%.1f\n", width, metric.Name, metric.Count,
			micros/float64(metric.Count), micros/1e3)
	}
}

func metricName(line string) string {
	if body, ok := foldBody(line); ok {
		op, _, _ := DecodeOperation(body, 0)
		return "fold " + op.String()
	}
	op, _, _ := DecodeOperation(line, 0)
	return op.String()
}
