package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"kuisioner/internal/apperr"
)

// ResponseLength renders a histogram and a box plot of per-answer word
// counts side by side in one image.
func (r *Renderer) ResponseLength(wordCounts []float64, path string) error {
	if len(wordCounts) == 0 {
		return r.placeholder("Response Length", path)
	}

	histPlot := plot.New()
	histPlot.Title.Text = "Response Length"
	histPlot.X.Label.Text = "Words per answer"
	histPlot.Y.Label.Text = "Answers"

	hist, err := plotter.NewHist(plotter.Values(wordCounts), histBins(len(wordCounts)))
	if err != nil {
		return fmt.Errorf("length histogram: %w", err)
	}
	hist.FillColor = r.style.Primary
	histPlot.Add(hist)

	boxPlot := plot.New()
	boxPlot.Title.Text = "Spread"
	boxPlot.Y.Label.Text = "Words per answer"

	box, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(wordCounts))
	if err != nil {
		return fmt.Errorf("length box plot: %w", err)
	}
	boxPlot.Add(box)
	boxPlot.NominalX("word count")

	return r.saveTiled([][]*plot.Plot{{histPlot, boxPlot}}, 10*vg.Inch, 5*vg.Inch, path)
}

func histBins(n int) int {
	bins := n / 2
	if bins < 5 {
		bins = 5
	}
	if bins > 20 {
		bins = 20
	}
	return bins
}

// saveTiled lays a grid of plots onto one PNG canvas.
func (r *Renderer) saveTiled(plots [][]*plot.Plot, w, h vg.Length, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	img := vgimg.New(w, h)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: len(plots[0]),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w: %v", filepath.Base(path), apperr.ErrRender, err)
	}
	return nil
}
