package render

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/psykhi/wordclouds"

	"kuisioner/internal/apperr"
)

// WordCloud renders term frequencies as a word cloud. The TTF font comes
// from the style; a missing font is a rendering failure, not a panic.
func (r *Renderer) WordCloud(freq map[string]int, path string) error {
	if len(freq) == 0 {
		return r.placeholder("Word Cloud", path)
	}
	if _, err := os.Stat(r.style.FontPath); err != nil {
		return fmt.Errorf("word cloud font %s: %w: %v", r.style.FontPath, apperr.ErrRender, err)
	}

	wc := wordclouds.NewWordcloud(freq,
		wordclouds.FontFile(r.style.FontPath),
		wordclouds.Width(r.style.WidthPx),
		wordclouds.Height(r.style.HeightPx),
		wordclouds.FontMaxSize(120),
		wordclouds.FontMinSize(14),
		wordclouds.Colors(r.style.Palette),
		wordclouds.BackgroundColor(r.style.Background),
	)

	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := png.Encode(f, wc.Draw()); err != nil {
		return fmt.Errorf("encode %s: %w: %v", filepath.Base(path), apperr.ErrRender, err)
	}
	return nil
}
