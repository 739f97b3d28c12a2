package render_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/acgeom"
	"github.com/soypat/acgeom/nacelle"
	"github.com/soypat/acgeom/quantity"
	"github.com/soypat/acgeom/render"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func twin(t *testing.T, samples int) []acgeom.Outliner {
	t.Helper()
	p, err := nacelle.NewBuilder().ID("N1").DiameterMax(quantity.Metres(2)).Length(quantity.Metres(5)).Build()
	if err != nil {
		t.Fatal(err)
	}
	var out []acgeom.Outliner
	for _, y := range []float64{-4.5, 4.5} {
		n, err := nacelle.New(nil, p, nacelle.WithApex(r3.Vec{X: 10, Y: y, Z: -1}), nacelle.WithSamples(samples))
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, n)
	}
	return out
}

func TestPlotRanges(t *testing.T) {
	for _, v := range []render.View{render.TopView, render.SideView} {
		p, err := render.Plot(v, twin(t, 20)...)
		if err != nil {
			t.Fatal(err)
		}
		if p.X.Min > 10 || p.X.Max < 15 {
			t.Errorf("%v view x range [%g, %g] misses outlines", v, p.X.Min, p.X.Max)
		}
		if w, h := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min; !scalar.EqualWithinRel(w, h, 1e-9) {
			t.Errorf("%v view axes differ in scale: %g vs %g", v, p.X.Max-p.X.Min, p.Y.Max-p.Y.Min)
		}
	}
}

func TestWriteImage(t *testing.T) {
	p, err := render.Plot(render.TopView, twin(t, 20)...)
	if err != nil {
		t.Fatal(err)
	}
	var png bytes.Buffer
	if err := render.WriteImage(&png, p, "png", render.DefaultWidth, render.DefaultHeight); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Error("not a PNG image")
	}
	var svg bytes.Buffer
	if err := render.WriteImage(&svg, p, "svg", render.DefaultWidth, render.DefaultHeight); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Error("not an SVG image")
	}
	if err := render.WriteImage(&svg, p, "bmp", render.DefaultWidth, render.DefaultHeight); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestCreateImage(t *testing.T) {
	p, err := render.Plot(render.SideView, twin(t, 20)...)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "side.png")
	if err := render.CreateImage(path, p, render.DefaultWidth, render.DefaultHeight); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("image not written: %v", err)
	}
	if err := render.CreateImage(filepath.Join(t.TempDir(), "side"), p, render.DefaultWidth, render.DefaultHeight); err == nil {
		t.Error("expected error for file without extension")
	}
}

func TestPlotWithoutOutlines(t *testing.T) {
	p, err := nacelle.NewBuilder().ID("N1").DiameterMax(quantity.Metres(2)).Length(quantity.Metres(5)).Build()
	if err != nil {
		t.Fatal(err)
	}
	n, _ := nacelle.New(&longRef{}, p)
	if _, err := render.Plot(render.TopView, n); err == nil {
		t.Error("expected error plotting nacelle without outlines")
	}
}

type longRef struct{}

func (longRef) ID() string       { return "E" }
func (longRef) Category() string { return "TEST" }
func (longRef) Length() (quantity.Amount, bool) {
	return quantity.Metres(50), true
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := render.WriteCSV(&buf, twin(t, 8)); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+2*4*8 {
		t.Fatalf("got %d rows, want %d", len(rows), 1+2*4*8)
	}
	if strings.Join(rows[0], ",") != "id,projection,index,x,y" {
		t.Errorf("header: %v", rows[0])
	}
	if strings.Join(rows[1], ",") != "N1,xz-upper,0,0,0.8" {
		t.Errorf("first row: %v", rows[1])
	}
	if got := rows[8]; got[2] != "7" || got[3] != "5" {
		t.Errorf("last xz-upper row: %v", got)
	}

	buf.Reset()
	if err := render.WriteCSV(&buf, twin(t, 3), acgeom.XYLeft); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 1+2*3 {
		t.Errorf("single projection: got %d lines", n)
	}
}

func TestParseView(t *testing.T) {
	for _, v := range []render.View{render.TopView, render.SideView} {
		got, err := render.ParseView(v.String())
		if err != nil || got != v {
			t.Errorf("ParseView(%q): %v %v", v.String(), got, err)
		}
	}
	if _, err := render.ParseView("front"); err == nil {
		t.Error("expected error for unknown view")
	}
	if render.SideView.Projections()[0] != acgeom.XZUpper {
		t.Error("side view does not start with xz-upper")
	}
}
