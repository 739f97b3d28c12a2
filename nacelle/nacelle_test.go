package nacelle

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/soypat/acgeom"
	"github.com/soypat/acgeom/engine"
	"github.com/soypat/acgeom/quantity"
	"github.com/soypat/acgeom/spline"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

type fakeRef struct {
	id     string
	length quantity.Amount
}

func (f *fakeRef) ID() string       { return f.id }
func (f *fakeRef) Category() string { return "TEST" }
func (f *fakeRef) Length() (quantity.Amount, bool) {
	return f.length, f.length.Valid()
}

func mustParams(t testing.TB, b *Builder) Parameters {
	t.Helper()
	p, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// fiveByTwo is a 5 m long, 2 m maximum diameter nacelle with default ratios.
func fiveByTwo(t testing.TB) Parameters {
	return mustParams(t, NewBuilder().ID("N1").DiameterMax(quantity.Metres(2)).Length(quantity.Metres(5)))
}

func equal(a quantity.Amount, want float64) bool {
	return scalar.EqualWithinAbsOrRel(a.SI(), want, tol, tol)
}

func TestConcreteScenario(t *testing.T) {
	n, err := New(nil, fiveByTwo(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name string
		got  quantity.Amount
		want float64
	}{
		{"length", n.Length(), 5},
		{"diameter inlet", n.DiameterInlet(), 1.6},
		{"diameter outlet", n.DiameterOutlet(), 0.4},
		{"x station max diameter", n.XStationMaxDiameter(), 1.75},
		{"z station outlet", n.ZStationOutlet(), 0},
		{"wetted area", n.WettedArea(), 10 * math.Pi},
	} {
		if !equal(test.got, test.want) {
			t.Errorf("%s: got %v, want %g", test.name, test.got, test.want)
		}
	}
	if !n.WettedArea().IsArea() || n.WettedArea().Unit() != quantity.SquareMetre {
		t.Errorf("wetted area unit: %v", n.WettedArea().Unit())
	}
	if !scalar.EqualWithinAbs(n.WettedArea().Value(), 31.416, 1e-3) {
		t.Errorf("wetted area: got %v", n.WettedArea())
	}
	upper := n.Outline(acgeom.XZUpper)
	if len(upper) != DefaultSamples {
		t.Fatalf("got %d samples, want %d", len(upper), DefaultSamples)
	}
	if upper[0].X != 0 || !scalar.EqualWithinAbs(upper[0].Y, 0.8, tol) {
		t.Errorf("xz-upper at inlet: got %v, want (0, 0.8)", upper[0])
	}
}

func TestStationsReproduced(t *testing.T) {
	// 21 samples over 5 m put a sample at x = 1.75.
	n, err := New(nil, fiveByTwo(t), WithSamples(21))
	if err != nil {
		t.Fatal(err)
	}
	want := map[acgeom.Projection][3]float64{
		acgeom.XZUpper: {0.8, 1, 0.2},
		acgeom.XZLower: {-0.8, -1, -0.2},
		acgeom.XYRight: {0.8, 1, 0.2},
		acgeom.XYLeft:  {-0.8, -1, -0.2},
	}
	for p, w := range want {
		o := n.Outline(p)
		for j, i := range []int{0, 7, 20} {
			if j == 1 && !scalar.EqualWithinAbs(o[i].X, 1.75, tol) {
				t.Fatalf("sample 7 at x=%g, want 1.75", o[i].X)
			}
			if !scalar.EqualWithinAbsOrRel(o[i].Y, w[j], 1e-9, 1e-9) {
				t.Errorf("%v station %d: got %g, want %g", p, j, o[i].Y, w[j])
			}
		}
	}
}

func TestOutletOffset(t *testing.T) {
	p := mustParams(t, NewBuilder().ID("N1").DiameterMax(quantity.Metres(2)).Length(quantity.Metres(5)).KDiameterOutlet(0.1))
	n, err := New(nil, p)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(n.ZStationOutlet(), 0.2) {
		t.Errorf("z station outlet: got %v", n.ZStationOutlet())
	}
	last := DefaultSamples - 1
	for _, test := range []struct {
		p    acgeom.Projection
		want float64
	}{
		{acgeom.XZUpper, 0.4},
		{acgeom.XZLower, 0},
		{acgeom.XYRight, 0.2},
		{acgeom.XYLeft, -0.2},
	} {
		if got := n.Outline(test.p)[last].Y; !scalar.EqualWithinAbs(got, test.want, 1e-9) {
			t.Errorf("%v outlet: got %g, want %g", test.p, got, test.want)
		}
	}
}

func TestDeterministic(t *testing.T) {
	p := fiveByTwo(t)
	a, err := New(nil, p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(nil, p)
	if err != nil {
		t.Fatal(err)
	}
	for _, proj := range acgeom.Projections {
		oa, ob := a.Outline(proj), b.Outline(proj)
		for i := range oa {
			if oa[i] != ob[i] {
				t.Fatalf("%v point %d: %v != %v", proj, i, oa[i], ob[i])
			}
		}
	}
	if a.WettedArea() != b.WettedArea() || a.DiameterInlet() != b.DiameterInlet() {
		t.Error("derived scalars differ")
	}
	if a.String() != b.String() {
		t.Error("reports differ")
	}
}

func TestComputeIdempotent(t *testing.T) {
	n, err := New(nil, fiveByTwo(t))
	if err != nil {
		t.Fatal(err)
	}
	before := n.Outline(acgeom.XYLeft)
	area := n.WettedArea()
	for i := 0; i < 2; i++ {
		if err := n.ComputeGeometry(DefaultSamples); err != nil {
			t.Fatal(err)
		}
	}
	after := n.Outline(acgeom.XYLeft)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("point %d changed: %v -> %v", i, before[i], after[i])
		}
	}
	if n.WettedArea() != area {
		t.Errorf("wetted area changed: %v -> %v", area, n.WettedArea())
	}
}

func TestSampleEndpointsMonotonic(t *testing.T) {
	n, err := New(nil, mustParams(t, NewBuilder().ID("N").DiameterMax(quantity.New(70, quantity.Inch)).Length(quantity.New(4.3, quantity.Metre))))
	if err != nil {
		t.Fatal(err)
	}
	L := n.Length().Value()
	for _, samples := range []int{2, 3, 5, 20, 33, 100, 1001} {
		if err := n.ComputeGeometry(samples); err != nil {
			t.Fatal(err)
		}
		if n.Samples() != samples {
			t.Errorf("Samples: got %d, want %d", n.Samples(), samples)
		}
		for _, p := range acgeom.Projections {
			o := n.Outline(p)
			if len(o) != samples {
				t.Fatalf("%v: got %d points, want %d", p, len(o), samples)
			}
			if o[0].X != 0 || o[len(o)-1].X != L {
				t.Errorf("%v with %d samples: ends at %g, %g", p, samples, o[0].X, o[len(o)-1].X)
			}
			if !o.StrictlyIncreasingX() {
				t.Errorf("%v with %d samples: x not strictly increasing", p, samples)
			}
		}
	}
}

func TestSampleCount(t *testing.T) {
	n, err := New(nil, fiveByTwo(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, samples := range []int{1, 0, -3} {
		if err := n.ComputeGeometry(samples); !errors.Is(err, ErrSampleCount) {
			t.Errorf("ComputeGeometry(%d): got %v, want ErrSampleCount", samples, err)
		}
	}
	if n.Samples() != DefaultSamples || len(n.Outline(acgeom.XZUpper)) != DefaultSamples {
		t.Error("failed computation modified outlines")
	}
	if _, err := New(nil, fiveByTwo(t), WithSamples(1)); !errors.Is(err, ErrSampleCount) {
		t.Errorf("New WithSamples(1): got %v", err)
	}
}

func TestConstraintGuard(t *testing.T) {
	ref := &fakeRef{id: "E1", length: quantity.Metres(4)}
	n, err := New(ref, fiveByTwo(t))
	if err != nil {
		t.Fatal(err)
	}
	before := n.Outline(acgeom.XZUpper)

	ref.length = quantity.Metres(5.5)
	err = n.ComputeGeometry(40)
	if !errors.Is(err, ErrGeometryConstraint) {
		t.Fatalf("got %v, want ErrGeometryConstraint", err)
	}
	after := n.Outline(acgeom.XZUpper)
	if len(after) != len(before) || n.Samples() != DefaultSamples {
		t.Fatalf("outline length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("point %d changed: %v -> %v", i, before[i], after[i])
		}
	}

	// Equal lengths fit.
	ref.length = quantity.Metres(5)
	if err := n.ComputeGeometry(40); err != nil {
		t.Errorf("equal lengths: %v", err)
	}
	// Units are compared after conversion: 17 ft is about 5.18 m.
	ref.length = quantity.New(17, quantity.Foot)
	if err := n.ComputeGeometry(40); !errors.Is(err, ErrGeometryConstraint) {
		t.Errorf("17 ft reference: got %v", err)
	}
}

func TestNewConstraintViolation(t *testing.T) {
	ref := &fakeRef{id: "E1", length: quantity.Metres(6)}
	n, err := New(ref, fiveByTwo(t))
	if !errors.Is(err, ErrGeometryConstraint) {
		t.Fatalf("got %v, want ErrGeometryConstraint", err)
	}
	if n == nil {
		t.Fatal("model not returned with constraint warning")
	}
	if len(n.Outline(acgeom.XZUpper)) != 0 {
		t.Error("outlines computed despite constraint violation")
	}
	if !equal(n.DiameterInlet(), 1.6) {
		t.Error("scalars not derived")
	}
	if n.WettedArea().Valid() {
		t.Errorf("wetted area set without geometry: %v", n.WettedArea())
	}
	if !strings.Contains(n.String(), "not computed") {
		t.Errorf("report does not flag missing outlines:\n%s", n)
	}
}

func TestSetParametersConstraintKeepsState(t *testing.T) {
	n, err := New(&fakeRef{id: "E1", length: quantity.Metres(4)}, fiveByTwo(t))
	if err != nil {
		t.Fatal(err)
	}
	before := n.String()
	area := n.WettedArea()
	short, err := n.Parameters().Override(func(b *Builder) {
		b.Length(quantity.Metres(3)).DiameterMax(quantity.Metres(4))
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := n.SetParameters(short); !errors.Is(err, ErrGeometryConstraint) {
		t.Fatalf("got %v, want ErrGeometryConstraint", err)
	}
	if n.WettedArea() != area || !equal(n.DiameterInlet(), 1.6) || !equal(n.Length(), 5) {
		t.Errorf("derived state changed: area=%v din=%v length=%v", n.WettedArea(), n.DiameterInlet(), n.Length())
	}
	if n.Parameters().DiameterMax().Value() != 2 {
		t.Errorf("parameters committed: %v", n.Parameters().DiameterMax())
	}
	if n.String() != before {
		t.Errorf("report changed after constraint violation:\n%s\nwant:\n%s", n, before)
	}
	if err := n.SetReference(&fakeRef{id: "E2", length: quantity.Metres(9)}); !errors.Is(err, ErrGeometryConstraint) {
		t.Fatalf("got %v, want ErrGeometryConstraint", err)
	}
	if n.Reference().ID() != "E1" || n.String() != before {
		t.Error("reference committed after constraint violation")
	}
}

func TestLengthFromReference(t *testing.T) {
	p := mustParams(t, NewBuilder().ID("N1").DiameterMax(quantity.Metres(1.8)))
	e := &engine.Engine{Name: "E1", Type: engine.Turbofan, OverallLength: quantity.New(420, quantity.Centimetre)}
	n, err := New(e, p)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(n.Length(), 4.2) || n.Length().Unit() != quantity.Metre {
		t.Errorf("length: got %v, want 4.2 m", n.Length())
	}
	if !equal(n.XStationMaxDiameter(), 4.2*0.35) {
		t.Errorf("x station: got %v", n.XStationMaxDiameter())
	}

	if _, err := New(nil, p); !errors.Is(err, ErrIncompleteConfiguration) {
		t.Errorf("no length anywhere: got %v", err)
	}
	if _, err := New(&engine.Engine{Name: "E2"}, p); !errors.Is(err, ErrIncompleteConfiguration) {
		t.Errorf("reference without length: got %v", err)
	}
	if _, err := New(nil, Parameters{}); !errors.Is(err, ErrIncompleteConfiguration) {
		t.Errorf("zero parameters: got %v", err)
	}
}

func TestDegenerateShape(t *testing.T) {
	for _, k := range []float64{0, 1} {
		p := mustParams(t, NewBuilder().ID("N1").DiameterMax(quantity.Metres(2)).Length(quantity.Metres(5)).KLength(k))
		n, err := New(nil, p)
		if !errors.Is(err, spline.ErrDegenerateInput) {
			t.Errorf("kLength=%g: got %v, want ErrDegenerateInput", k, err)
		}
		if n != nil {
			t.Errorf("kLength=%g: model returned on hard error", k)
		}
	}
}

func TestSetParametersRederives(t *testing.T) {
	n, err := New(nil, fiveByTwo(t), WithSamples(11))
	if err != nil {
		t.Fatal(err)
	}
	p, err := n.Parameters().Override(func(b *Builder) { b.DiameterMax(quantity.Metres(3)).KOutlet(0.5) })
	if err != nil {
		t.Fatal(err)
	}
	if err := n.SetParameters(p); err != nil {
		t.Fatal(err)
	}
	if !equal(n.DiameterInlet(), 2.4) || !equal(n.DiameterOutlet(), 1.5) || !equal(n.WettedArea(), 15*math.Pi) {
		t.Errorf("not rederived: din=%v dout=%v area=%v", n.DiameterInlet(), n.DiameterOutlet(), n.WettedArea())
	}
	o := n.Outline(acgeom.XYRight)
	if len(o) != 11 || !scalar.EqualWithinAbs(o[0].Y, 1.2, tol) || !scalar.EqualWithinAbs(o[10].Y, 0.75, tol) {
		t.Errorf("outline not recomputed: %v", o)
	}
}

func TestSetParametersKeepsStateOnError(t *testing.T) {
	n, err := New(nil, fiveByTwo(t))
	if err != nil {
		t.Fatal(err)
	}
	before := n.String()
	bad, err := n.Parameters().Override(func(b *Builder) { b.KLength(1).DiameterMax(quantity.Metres(9)) })
	if err != nil {
		t.Fatal(err)
	}
	if err := n.SetParameters(bad); !errors.Is(err, spline.ErrDegenerateInput) {
		t.Fatalf("got %v, want ErrDegenerateInput", err)
	}
	if n.String() != before || n.DiameterMax().Value() != 2 {
		t.Error("state changed after failed SetParameters")
	}
	noLength, err := n.Parameters().Override(func(b *Builder) { b.ClearLength() })
	if err != nil {
		t.Fatal(err)
	}
	if err := n.SetParameters(noLength); !errors.Is(err, ErrIncompleteConfiguration) {
		t.Fatalf("got %v, want ErrIncompleteConfiguration", err)
	}
	if n.String() != before {
		t.Error("state changed after failed SetParameters")
	}
}

func TestSetReference(t *testing.T) {
	p := mustParams(t, NewBuilder().ID("N1").DiameterMax(quantity.Metres(2)))
	n, err := New(&fakeRef{id: "E1", length: quantity.Metres(3)}, p)
	if err != nil {
		t.Fatal(err)
	}
	if err := n.SetReference(&fakeRef{id: "E2", length: quantity.Metres(6)}); err != nil {
		t.Fatal(err)
	}
	if n.Reference().ID() != "E2" || !equal(n.Length(), 6) || !equal(n.WettedArea(), 12*math.Pi) {
		t.Errorf("reference not applied: %v %v", n.Length(), n.WettedArea())
	}
	if o := n.Outline(acgeom.XZUpper); o[len(o)-1].X != 6 {
		t.Errorf("outline not recomputed, ends at %g", o[len(o)-1].X)
	}
}

func TestOutlineIsCopy(t *testing.T) {
	n, err := New(nil, fiveByTwo(t))
	if err != nil {
		t.Fatal(err)
	}
	o := n.Outline(acgeom.XZUpper)
	o[0].Y = 100
	if n.Outline(acgeom.XZUpper)[0].Y == 100 {
		t.Error("outline shares memory with model")
	}
	if n.Outline(acgeom.Projection(9)) != nil {
		t.Error("unknown projection returned data")
	}
}

func TestPlacement(t *testing.T) {
	n, err := New(nil, fiveByTwo(t), WithApex(r3.Vec{X: 12, Y: -4.5, Z: -1.2}), WithMounting(Wing))
	if err != nil {
		t.Fatal(err)
	}
	top := acgeom.Place(n, acgeom.XYRight)
	if top[0].X != 12 || !scalar.EqualWithinAbs(top[0].Y, -4.5+0.8, tol) {
		t.Errorf("placed inlet: %v", top[0])
	}
	n.SetApex(r3.Vec{})
	if n.Apex() != (r3.Vec{}) {
		t.Error("SetApex not applied")
	}
}

func TestReport(t *testing.T) {
	n, err := New(&fakeRef{id: "E1", length: quantity.Metres(4)}, fiveByTwo(t))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := n.WriteReport(&buf); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if got != n.String() {
		t.Error("WriteReport and String differ")
	}
	for _, want := range []string{
		"Nacelle N1",
		"E1 (TEST)",
		"diameter inlet         1.6 m",
		"wetted area            31.42 m2",
		"outline xz-upper (5 of 20 points) [m]",
		"    0.0000     0.8000",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
	for _, r := range got {
		if r > 127 {
			t.Fatalf("report contains non-ASCII rune %q", r)
		}
	}
}
