package bodeplot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Figure is a rendered, ready-to-encode comparison figure.
type Figure struct {
	rows [][]*plot.Plot
	cfg  Config
}

// Save writes the figure to path; the image format follows the file
// extension (.png, .jpg, .svg, .pdf).
func (f *Figure) Save(path string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return fmt.Errorf("bodeplot: output path %q has no extension to derive the image format from", path)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bodeplot: %w", err)
	}

	_, werr := f.WriteTo(out, ext)
	cerr := out.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("bodeplot: %w", cerr)
	}
	return nil
}

// WriteTo encodes the figure in the named format ("png", "jpg", "svg",
// "pdf") and writes it to w.
func (f *Figure) WriteTo(w io.Writer, imageFormat string) (int64, error) {
	switch strings.ToLower(imageFormat) {
	case "png":
		c := vgimg.New(f.cfg.Width, f.cfg.Height)
		f.draw(draw.New(c))
		return vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	case "jpg", "jpeg":
		c := vgimg.New(f.cfg.Width, f.cfg.Height)
		f.draw(draw.New(c))
		return vgimg.JpegCanvas{Canvas: c}.WriteTo(w)
	case "svg":
		c := vgsvg.New(f.cfg.Width, f.cfg.Height)
		f.draw(draw.New(c))
		return c.WriteTo(w)
	case "pdf":
		c := vgpdf.New(f.cfg.Width, f.cfg.Height)
		f.draw(draw.New(c))
		return c.WriteTo(w)
	default:
		return 0, fmt.Errorf("bodeplot: unsupported output format %q (want png, jpg, svg, or pdf)", imageFormat)
	}
}

// draw lays the panels out in a single column with aligned axes.
func (f *Figure) draw(dc draw.Canvas) {
	tiles := draw.Tiles{
		Rows: len(f.rows),
		Cols: 1,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(f.rows, tiles, dc)
	for i := range f.rows {
		f.rows[i][0].Draw(canvases[i][0])
	}
}
