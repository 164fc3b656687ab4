package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	gen := tm.Begin("generate")
	tm.End(gen, "")
	mat := tm.Begin("materialize")
	tm.End(mat, "goja")
	tm.Record("execute", 5*time.Millisecond, "")
	tm.End(42, "ignored")

	report := tm.Report()
	if len(report.Phases) != 3 {
		t.Fatalf("phases = %d", len(report.Phases))
	}
	if report.Phases[0].DurationMS != 2 || report.Phases[1].Note != "goja" {
		t.Errorf("unexpected phases %+v", report.Phases)
	}
	if report.TotalMS != 9 {
		t.Errorf("total = %v, want 9", report.TotalMS)
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "generate", "// goja", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("file"), "")
		}()
	}
	wg.Wait()
	if got := len(tm.Phases()); got != 16 {
		t.Errorf("phases = %d, want 16", got)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Errorf("nil timer reported %+v", r)
	}
}
