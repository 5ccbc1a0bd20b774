// Package render turns analytics outputs into PNG chart artifacts. Charts
// are idempotent re-derivations of current data: concurrent writes to the
// same path are last-writer-wins by design, and every chart kind renders an
// explicit "no data" placeholder instead of failing on an empty corpus.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"kuisioner/internal/apperr"
)

// LabeledValue is one bar or slice.
type LabeledValue struct {
	Label string
	Value float64
}

// Renderer writes chart images. Safe for concurrent use; it holds only
// immutable style configuration.
type Renderer struct {
	style Style
}

// New creates a renderer with the given style.
func New(style Style) *Renderer {
	return &Renderer{style: style}
}

// DistributionBar renders the question-answer distribution as a horizontal
// bar chart, one bar per (question, answer) pair.
func (r *Renderer) DistributionBar(values []LabeledValue, path string) error {
	if len(values) == 0 {
		return r.placeholder("Answer Distribution", path)
	}
	return r.hbar("Answer Distribution", "Responses", values, path)
}

// WordFrequency renders the most frequent corpus terms as a vertical bar
// chart.
func (r *Renderer) WordFrequency(values []LabeledValue, path string) error {
	if len(values) == 0 {
		return r.placeholder("Word Frequency", path)
	}

	p := plot.New()
	p.Title.Text = "Word Frequency"
	p.Y.Label.Text = "Occurrences"

	bars, err := plotter.NewBarChart(labeledPlotterValues(values), vg.Points(18))
	if err != nil {
		return fmt.Errorf("word frequency bars: %w", err)
	}
	bars.Color = r.style.Primary
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels(values)...)
	p.X.Tick.Label.Rotation = -0.9
	p.X.Tick.Label.XAlign = -0.8

	return r.save(p, path)
}

// KeywordBar renders TF-IDF keyword scores as a horizontal bar chart,
// highest score on top.
func (r *Renderer) KeywordBar(values []LabeledValue, path string) error {
	if len(values) == 0 {
		return r.placeholder("Top Keywords (TF-IDF)", path)
	}
	return r.hbar("Top Keywords (TF-IDF)", "TF-IDF score", values, path)
}

// TopContributors renders respondents ranked by answer count as a
// horizontal bar chart.
func (r *Renderer) TopContributors(values []LabeledValue, path string) error {
	if len(values) == 0 {
		return r.placeholder("Top Contributors", path)
	}
	return r.hbar("Top Contributors", "Answers submitted", values, path)
}

// hbar is the shared horizontal bar layout. Values are drawn bottom-up, so
// the slice is reversed to put the first entry on top.
func (r *Renderer) hbar(title, xlabel string, values []LabeledValue, path string) error {
	rev := make([]LabeledValue, len(values))
	for i, v := range values {
		rev[len(values)-1-i] = v
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel

	bars, err := plotter.NewBarChart(labeledPlotterValues(rev), vg.Points(14))
	if err != nil {
		return fmt.Errorf("%s bars: %w", title, err)
	}
	bars.Horizontal = true
	bars.Color = r.style.Primary
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(labels(rev)...)

	return r.save(p, path)
}

// placeholder renders a titled "No data yet" panel so callers always get a
// valid image back.
func (r *Renderer) placeholder(title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.35, Y: 0.5}},
		Labels: []string{"No data yet"},
	})
	if err != nil {
		return fmt.Errorf("placeholder label: %w", err)
	}
	p.Add(lbl)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	return r.save(p, path)
}

func (r *Renderer) save(p *plot.Plot, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w: %v", filepath.Base(path), apperr.ErrRender, err)
	}
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	return nil
}

func labeledPlotterValues(values []LabeledValue) plotter.Values {
	out := make(plotter.Values, len(values))
	for i, v := range values {
		out[i] = v.Value
	}
	return out
}

func labels(values []LabeledValue) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Label
	}
	return out
}
