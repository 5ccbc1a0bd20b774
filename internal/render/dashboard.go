package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"kuisioner/internal/model"
)

// StatsDashboard tiles the headline analytics into one composite image:
// summary figures, sentiment counts, topic shares and the response-length
// histogram.
func (r *Renderer) StatsDashboard(bundle model.AnalyticsBundle, wordCounts []float64, path string) error {
	if bundle.TextStats.Status != model.StatusOK {
		return r.placeholder("Statistics Dashboard", path)
	}

	summaryPlot, err := r.summaryPanel(bundle.TextStats)
	if err != nil {
		return err
	}

	sentPlot := plot.New()
	sentPlot.Title.Text = "Sentiment"
	sentPlot.Y.Label.Text = "Answers"
	sentValues := []LabeledValue{
		{Label: "positive", Value: float64(bundle.Sentiment.Summary.Positive)},
		{Label: "neutral", Value: float64(bundle.Sentiment.Summary.Neutral)},
		{Label: "negative", Value: float64(bundle.Sentiment.Summary.Negative)},
	}
	for i, v := range sentValues {
		bars, err := plotter.NewBarChart(plotter.Values{v.Value}, vg.Points(30))
		if err != nil {
			return fmt.Errorf("dashboard sentiment: %w", err)
		}
		bars.Color = r.style.paletteAt(i)
		bars.LineStyle.Width = 0
		bars.XMin = float64(i)
		sentPlot.Add(bars)
	}
	sentPlot.NominalX(labels(sentValues)...)

	topicPlot, err := r.topicPanel(bundle.Topics)
	if err != nil {
		return err
	}

	lengthPlot := plot.New()
	lengthPlot.Title.Text = "Response Length"
	lengthPlot.X.Label.Text = "Words per answer"
	if len(wordCounts) > 0 {
		hist, err := plotter.NewHist(plotter.Values(wordCounts), histBins(len(wordCounts)))
		if err != nil {
			return fmt.Errorf("dashboard histogram: %w", err)
		}
		hist.FillColor = r.style.Primary
		lengthPlot.Add(hist)
	}

	grid := [][]*plot.Plot{
		{summaryPlot, sentPlot},
		{topicPlot, lengthPlot},
	}
	return r.saveTiled(grid, 11*vg.Inch, 8*vg.Inch, path)
}

// summaryPanel is a text-only panel with the descriptive statistics.
func (r *Renderer) summaryPanel(ts model.TextStatistics) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Text Statistics"
	p.HideAxes()

	lines := []string{
		fmt.Sprintf("answers: %d", ts.Count),
		fmt.Sprintf("avg words: %.2f", ts.AvgWords),
		fmt.Sprintf("median words: %.1f", ts.MedianWords),
		fmt.Sprintf("std words: %.2f", ts.StdWords),
		fmt.Sprintf("avg chars: %.1f", ts.AvgChars),
		fmt.Sprintf("words min/max: %d / %d", ts.MinWords, ts.MaxWords),
	}

	xys := make([]plotter.XY, len(lines))
	for i := range lines {
		xys[i] = plotter.XY{X: 0.1, Y: 0.9 - 0.14*float64(i)}
	}
	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: lines})
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	p.Add(lbl)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

// topicPanel shows each topic's dominant-answer share; falls back to a bare
// titled panel when the topic model had insufficient data.
func (r *Renderer) topicPanel(topics model.TopicsResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Topic Shares"

	if topics.Status != model.StatusOK || len(topics.Topics) == 0 {
		p.HideAxes()
		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: 0.3, Y: 0.5}},
			Labels: []string{"insufficient data"},
		})
		if err != nil {
			return nil, fmt.Errorf("dashboard topics: %w", err)
		}
		p.Add(lbl)
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		return p, nil
	}

	names := make([]string, len(topics.Topics))
	for i, topic := range topics.Topics {
		bars, err := plotter.NewBarChart(plotter.Values{topic.Share}, vg.Points(30))
		if err != nil {
			return nil, fmt.Errorf("dashboard topics: %w", err)
		}
		bars.Color = r.style.paletteAt(i)
		bars.LineStyle.Width = 0
		bars.XMin = float64(i)
		p.Add(bars)
		names[i] = fmt.Sprintf("topic %d", topic.ID+1)
	}
	p.NominalX(names...)
	p.Y.Label.Text = "Share of answers"
	return p, nil
}
