package game

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotterDecimation(t *testing.T) {
	p := NewPlotter("i", "double")
	n := 0
	push := func() {
		p.Push(func() []float64 {
			return []float64{float64(n), 2 * float64(n)}
		})
		n++
	}

	for range MaxPlotLen {
		push()
	}
	if p.Len() != MaxPlotLen || p.Every != 1 {
		t.Fatalf("len = %d, every = %d", p.Len(), p.Every)
	}

	push()
	if p.Len() != MaxPlotLen/2+1 || p.Every != 2 {
		t.Fatalf("after decimation: len = %d, every = %d", p.Len(), p.Every)
	}
	xs, ys := p.Series(0, 1)
	if xs[1] != 2 || ys[1] != 4 || xs[len(xs)-1] != MaxPlotLen {
		t.Fatalf("unexpected samples %v... last %v", xs[:3], xs[len(xs)-1])
	}

	// odd pushes are skipped at every = 2
	push()
	if p.Len() != MaxPlotLen/2+1 {
		t.Fatalf("off-interval sample recorded")
	}
	push()
	if p.Len() != MaxPlotLen/2+2 {
		t.Fatalf("on-interval sample dropped")
	}
}

func TestPlotterCSV(t *testing.T) {
	p := NewPlotter("t (s)", "x")
	p.Push(func() []float64 { return []float64{0, 1.5} })
	p.Push(func() []float64 { return []float64{0.001, 2} })

	var buf bytes.Buffer
	if err := p.WriteCSV(&buf); err != nil {
		t.Fatalf("csv: %v", err)
	}
	want := "t (s),x\n0,1.5\n0.001,2\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}

	p.Clear()
	if p.Len() != 0 || p.Every != 1 {
		t.Fatalf("clear left %d samples", p.Len())
	}
}

func TestStats(t *testing.T) {
	var s Stats
	s.Inc(EventBounce)
	s.Add(EventCommand, 3)
	s.Add(numEvents, 1)

	s.StartFrame()
	s.Inc(EventBounce)

	if s.Frame[EventBounce] != 1 || s.Total[EventBounce] != 1 || s.Total[EventCommand] != 3 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if !strings.Contains(s.String(), "bounce: 1, 1") {
		t.Fatalf("unexpected dump %q", s.String())
	}
	if Event(200).String() != "event(200)" {
		t.Fatalf("unexpected name %q", Event(200).String())
	}
}

func TestTimer(t *testing.T) {
	var tm Timer
	tm.SetAlarm(10, 5)
	tests := []struct {
		frame        uint64
		justFinished bool
		finished     bool
	}{
		{14, false, false},
		{15, true, true},
		{16, false, true},
	}
	for _, tt := range tests {
		if tm.JustFinished(tt.frame) != tt.justFinished || tm.Finished(tt.frame) != tt.finished {
			t.Fatalf("frame %d: just=%v finished=%v", tt.frame, tm.JustFinished(tt.frame), tm.Finished(tt.frame))
		}
	}
}
