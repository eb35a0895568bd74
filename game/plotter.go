package game

import (
	"encoding/csv"
	"io"
	"strconv"
)

// MaxPlotLen is the number of samples kept per series before decimation.
const MaxPlotLen = 1024

// Plotter records parallel telemetry series. When the series are full every
// other sample is dropped and the sampling interval doubles.
type Plotter struct {
	Labels []string    `msgpack:"labels"`
	Data   [][]float64 `msgpack:"data"`
	I      int         `msgpack:"i"`
	Every  int         `msgpack:"every"`
}

func NewPlotter(labels ...string) *Plotter {
	p := &Plotter{Labels: append([]string(nil), labels...)}
	p.Clear()
	return p
}

func (p *Plotter) Clear() {
	p.I = 0
	p.Every = 1
	p.Data = make([][]float64, len(p.Labels))
}

// Len returns the number of samples in each series.
func (p *Plotter) Len() int {
	if p == nil || len(p.Data) == 0 {
		return 0
	}
	return len(p.Data[0])
}

// Push records a sample if it falls on the sampling interval. sample is
// only called for recorded samples.
func (p *Plotter) Push(sample func() []float64) {
	if p == nil {
		return
	}
	if p.Every < 1 {
		p.Every = 1
	}
	if p.I%p.Every == 0 {
		if p.Len() >= MaxPlotLen {
			for s := range p.Data {
				p.Data[s] = decimate(p.Data[s])
			}
			p.Every *= 2
		}
		values := sample()
		for s := range p.Data {
			if s < len(values) {
				p.Data[s] = append(p.Data[s], values[s])
			}
		}
	}
	p.I++
}

// decimate keeps the samples at even positions.
func decimate(series []float64) []float64 {
	n := 0
	for i := 0; i < len(series); i += 2 {
		series[n] = series[i]
		n++
	}
	return series[:n]
}

// Series returns the x and y series for plotting y against x.
func (p *Plotter) Series(x, y int) (xs, ys []float64) {
	return p.Data[x], p.Data[y]
}

// WriteCSV writes the labels and every sample row to w.
func (p *Plotter) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(p.Labels); err != nil {
		return err
	}
	row := make([]string, len(p.Data))
	for i := 0; i < p.Len(); i++ {
		for s := range p.Data {
			row[s] = strconv.FormatFloat(p.Data[s][i], 'g', 8, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
