package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/acgeom"
	"github.com/soypat/acgeom/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// View is a pair of projections drawn together.
type View int

const (
	TopView View = iota
	SideView
)

func (v View) String() string {
	switch v {
	case TopView:
		return "top"
	case SideView:
		return "side"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// ParseView parses "top" or "side".
func ParseView(s string) (View, error) {
	switch strings.ToLower(s) {
	case "top":
		return TopView, nil
	case "side":
		return SideView, nil
	}
	return 0, fmt.Errorf("unknown view %q", s)
}

// Projections returns the two silhouette lines of the view.
func (v View) Projections() [2]acgeom.Projection {
	if v == SideView {
		return [2]acgeom.Projection{acgeom.XZUpper, acgeom.XZLower}
	}
	return [2]acgeom.Projection{acgeom.XYRight, acgeom.XYLeft}
}

// Default image size.
const (
	DefaultWidth  = 16 * vg.Centimeter
	DefaultHeight = 16 * vg.Centimeter
)

var errNothingToPlot = errors.New("no computed outlines to plot")

// Plot returns a plot of the outlines of components in view v, placed in
// aircraft axes. Both axes share the same scale. Components without
// computed outlines are skipped.
func Plot(v View, components ...acgeom.Outliner) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = v.String() + " view"
	p.X.Label.Text = "x [m]"
	p.Y.Label.Text = "y [m]"
	if v == SideView {
		p.Y.Label.Text = "z [m]"
	}
	p.Add(plotter.NewGrid())

	var bounds d2.Box
	drawn := 0
	for i, c := range components {
		for j, proj := range v.Projections() {
			o := acgeom.Place(c, proj)
			if len(o) == 0 {
				continue
			}
			l, err := plotter.NewLine(o)
			if err != nil {
				return nil, fmt.Errorf("%s %v outline: %w", c.ID(), proj, err)
			}
			l.LineStyle.Color = plotutil.Color(i)
			l.LineStyle.Width = vg.Points(1)
			p.Add(l)
			if j == 0 {
				p.Legend.Add(c.ID(), l)
			}
			b := d2.Set(o).Bounds()
			if drawn == 0 {
				bounds = b
			} else {
				bounds = bounds.Extend(b)
			}
			drawn++
		}
	}
	if drawn == 0 {
		return nil, errNothingToPlot
	}
	// Leave a margin of a tenth of the larger side around the outlines.
	sq := bounds.Square()
	sq = sq.Enlarge(r2.Scale(0.1, sq.Size()))
	p.X.Min, p.X.Max = sq.Min.X, sq.Max.X
	p.Y.Min, p.Y.Max = sq.Min.Y, sq.Max.Y
	return p, nil
}

// WriteImage writes the plot to w in the given format: "png", "svg",
// "pdf", "eps", "jpg" or "tif".
func WriteImage(w io.Writer, p *plot.Plot, format string, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// CreateImage writes the plot to the file at path. The image format is
// taken from the file extension.
func CreateImage(path string, p *plot.Plot, width, height vg.Length) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("no image format in file name %q", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := WriteImage(file, p, format, width, height); err != nil {
		return err
	}
	return file.Close()
}
