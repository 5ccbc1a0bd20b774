package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"kuisioner/internal/model"
)

// SentimentCharts renders the label counts twice: a bar chart at barPath
// and a donut at donutPath.
func (r *Renderer) SentimentCharts(summary model.SentimentSummary, barPath, donutPath string) error {
	values := []LabeledValue{
		{Label: "positive", Value: float64(summary.Positive)},
		{Label: "neutral", Value: float64(summary.Neutral)},
		{Label: "negative", Value: float64(summary.Negative)},
	}

	total := summary.Positive + summary.Neutral + summary.Negative
	if total == 0 {
		if err := r.placeholder("Sentiment", barPath); err != nil {
			return err
		}
		return r.placeholder("Sentiment", donutPath)
	}

	if err := r.sentimentBar(values, barPath); err != nil {
		return err
	}
	return r.sentimentDonut(values, donutPath)
}

func (r *Renderer) sentimentBar(values []LabeledValue, path string) error {
	p := plot.New()
	p.Title.Text = "Sentiment"
	p.Y.Label.Text = "Answers"

	// One single-bar series per label so each keeps its palette color.
	for i, v := range values {
		bars, err := plotter.NewBarChart(plotter.Values{v.Value}, vg.Points(40))
		if err != nil {
			return fmt.Errorf("sentiment bars: %w", err)
		}
		bars.Color = r.style.paletteAt(i)
		bars.LineStyle.Width = 0
		bars.XMin = float64(i)
		p.Add(bars)
	}
	p.NominalX(labels(values)...)

	return r.save(p, path)
}
