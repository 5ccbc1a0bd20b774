package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"kuisioner/internal/apperr"
)

// AnswerSharePie renders the share of each answer option as a pie chart.
func (r *Renderer) AnswerSharePie(values []LabeledValue, path string) error {
	vals := positiveChartValues(values)
	if len(vals) == 0 {
		return r.placeholder("Answer Share", path)
	}

	pie := chart.PieChart{
		Title:  "Answer Share",
		Width:  r.style.WidthPx,
		Height: r.style.HeightPx,
		Values: vals,
	}
	return r.renderChart(pie.Render, path)
}

// Donut renders the same share data as a donut chart.
func (r *Renderer) Donut(values []LabeledValue, path string) error {
	vals := positiveChartValues(values)
	if len(vals) == 0 {
		return r.placeholder("Answer Share", path)
	}

	donut := chart.DonutChart{
		Title:  "Answer Share",
		Width:  r.style.WidthPx,
		Height: r.style.HeightPx,
		Values: vals,
	}
	return r.renderChart(donut.Render, path)
}

// sentimentDonut backs the donut half of the sentiment pair.
func (r *Renderer) sentimentDonut(values []LabeledValue, path string) error {
	vals := positiveChartValues(values)
	if len(vals) == 0 {
		return r.placeholder("Sentiment", path)
	}

	donut := chart.DonutChart{
		Title:  "Sentiment",
		Width:  r.style.WidthPx,
		Height: r.style.HeightPx,
		Values: vals,
	}
	return r.renderChart(donut.Render, path)
}

func (r *Renderer) renderChart(render func(chart.RendererProvider, io.Writer) error, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := render(chart.PNG, f); err != nil {
		return fmt.Errorf("render %s: %w: %v", filepath.Base(path), apperr.ErrRender, err)
	}
	return nil
}

// positiveChartValues drops zero slices; go-chart cannot draw them and an
// all-zero chart should fall back to the placeholder anyway.
func positiveChartValues(values []LabeledValue) []chart.Value {
	out := make([]chart.Value, 0, len(values))
	for _, v := range values {
		if v.Value > 0 {
			out = append(out, chart.Value{Label: v.Label, Value: v.Value})
		}
	}
	return out
}
