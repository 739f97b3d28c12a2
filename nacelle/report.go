package nacelle

import (
	"bytes"
	"fmt"
	"io"

	"github.com/soypat/acgeom"
	"github.com/soypat/acgeom/quantity"
)

// ReportPoints is the number of outline points printed per projection.
const ReportPoints = 5

// WriteReport writes a human readable description of the nacelle to w:
// every derived scalar and the outlines reduced to ReportPoints points.
// The output depends only on the nacelle state.
func (n *Nacelle) WriteReport(w io.Writer) error {
	var buf bytes.Buffer
	n.report(&buf, "")
	_, err := w.Write(buf.Bytes())
	return err
}

func (n *Nacelle) String() string {
	var buf bytes.Buffer
	n.report(&buf, "")
	return buf.String()
}

func (n *Nacelle) report(buf *bytes.Buffer, indent string) {
	row := func(name string, v interface{}) {
		fmt.Fprintf(buf, "%s  %-22s %v\n", indent, name, v)
	}
	fmt.Fprintf(buf, "%sNacelle %s\n", indent, n.ID())
	row("mounting", n.mounting)
	if n.ref != nil {
		row("reference", n.ref.ID()+" ("+n.ref.Category()+")")
	} else {
		row("reference", "none")
	}
	row("apex [m]", fmt.Sprintf("%.4f %.4f %.4f", n.apex.X, n.apex.Y, n.apex.Z))
	for _, r := range []struct {
		name string
		a    quantity.Amount
	}{
		{"length", n.length},
		{"diameter max", n.params.diameterMax},
		{"diameter inlet", n.diameterInlet},
		{"diameter outlet", n.diameterOutlet},
		{"x station max diameter", n.xStationMaxDiameter},
		{"z station outlet", n.zStationOutlet},
		{"wetted area", n.wettedArea},
		{"roughness", n.params.roughness},
	} {
		if !r.a.Valid() {
			row(r.name, "not computed")
			continue
		}
		row(r.name, fmt.Sprintf("%.4g", r.a))
	}
	row("k inlet", n.params.kInlet)
	row("k outlet", n.params.kOutlet)
	row("k length", n.params.kLength)
	row("k diameter outlet", n.params.kDiameterOutlet)
	for _, p := range acgeom.Projections {
		o := n.outlines[p]
		if len(o) == 0 {
			fmt.Fprintf(buf, "%s  outline %s: not computed\n", indent, p)
			continue
		}
		r := o.Reduce(ReportPoints)
		fmt.Fprintf(buf, "%s  outline %s (%d of %d points) [m]\n", indent, p, len(r), len(o))
		for _, v := range r {
			fmt.Fprintf(buf, "%s    %10.4f %10.4f\n", indent, v.X, v.Y)
		}
	}
}

// WriteReport writes the member count, the aggregates and the report of
// every member to w.
func (c *Collection) WriteReport(w io.Writer) error {
	var buf bytes.Buffer
	c.report(&buf)
	_, err := w.Write(buf.Bytes())
	return err
}

func (c *Collection) String() string {
	var buf bytes.Buffer
	c.report(&buf)
	return buf.String()
}

func (c *Collection) report(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "Nacelles: %d\n", len(c.members))
	fmt.Fprintf(buf, "  %-22s %.4g\n", "wetted area", c.WettedArea())
	if s, ok := c.SpacingInboard(); ok {
		fmt.Fprintf(buf, "  %-22s %.4g\n", "spacing inboard", s)
	}
	if s, ok := c.SpacingOutboard(); ok {
		fmt.Fprintf(buf, "  %-22s %.4g\n", "spacing outboard", s)
	}
	for i, n := range c.members {
		fmt.Fprintf(buf, "[%d] ", i)
		n.report(buf, "")
	}
}
