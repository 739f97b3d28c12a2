package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/soypat/acgeom/engine"
	"github.com/soypat/acgeom/nacelle"
)

// Aircraft is the content of an aircraft document.
type Aircraft struct {
	Name     string
	Engines  []*engine.Engine
	Nacelles *nacelle.Collection
}

// Engine returns the engine with the given identifier.
func (a *Aircraft) Engine(id string) (*engine.Engine, bool) {
	for _, e := range a.Engines {
		if e.Name == id {
			return e, true
		}
	}
	return nil, false
}

type xmlAircraft struct {
	XMLName  xml.Name     `xml:"aircraft"`
	Name     string       `xml:"name,attr"`
	Engines  []xmlElement `xml:"engines>engine"`
	Nacelles []xmlElement `xml:"nacelles>nacelle"`
}

type xmlElement struct {
	Attrs  []xml.Attr `xml:",any,attr"`
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Value   string     `xml:",chardata"`
}

// record flattens an element: its attributes by name, each child's text
// by the child name and each child attribute as "child.attribute".
func (e xmlElement) record() Record {
	rec := make(Record, len(e.Attrs)+len(e.Fields))
	for _, a := range e.Attrs {
		rec[a.Name.Local] = a.Value
	}
	for _, f := range e.Fields {
		name := f.XMLName.Local
		rec[name] = strings.TrimSpace(f.Value)
		for _, a := range f.Attrs {
			rec[name+"."+a.Name.Local] = a.Value
		}
	}
	return rec
}

// Decode reads the raw engine and nacelle records of an aircraft document.
//
//	<aircraft name="ATR-like">
//	  <engines>
//	    <engine id="E1" type="TURBOPROP">
//	      <length unit="m">2.1</length>
//	      <shaft_power unit="kW">2050</shaft_power>
//	    </engine>
//	  </engines>
//	  <nacelles>
//	    <nacelle id="N1" engine="E1" mounting="wing">
//	      <apex x="8.5" y="4.1" z="0.6"/>
//	      <diameter_max calculate="true"/>
//	      <length unit="m">3.9</length>
//	    </nacelle>
//	  </nacelles>
//	</aircraft>
func Decode(r io.Reader) (name string, engines, nacelles []Record, err error) {
	var doc xmlAircraft
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return "", nil, nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	for _, e := range doc.Engines {
		engines = append(engines, e.record())
	}
	for _, n := range doc.Nacelles {
		nacelles = append(nacelles, n.record())
	}
	return doc.Name, engines, nacelles, nil
}

// Load reads an aircraft document and builds its engines and nacelles.
// est may be nil if no nacelle asks for a calculated diameter.
//
// Nacelles whose engine is longer than the nacelle are kept without
// outlines; Load then returns the aircraft together with a
// *nacelle.ConstraintWarnings error.
func Load(r io.Reader, est Estimator) (*Aircraft, error) {
	name, engineRecs, nacelleRecs, err := Decode(r)
	if err != nil {
		return nil, err
	}
	ac := &Aircraft{Name: name}
	for _, rec := range engineRecs {
		e, err := Engine(rec)
		if err != nil {
			return nil, err
		}
		if _, dup := ac.Engine(e.Name); dup {
			return nil, fmt.Errorf("%w: engine %q defined twice", ErrSyntax, e.Name)
		}
		ac.Engines = append(ac.Engines, e)
	}
	var members []*nacelle.Nacelle
	var warns []error
	for _, rec := range nacelleRecs {
		var e *engine.Engine
		if id, ok := rec.get(keyEngine); ok {
			var found bool
			e, found = ac.Engine(id)
			if !found {
				return nil, fmt.Errorf("%w: nacelle %q names engine %q", ErrUnknownEngine, rec[keyID], id)
			}
		}
		b, err := Resolve(rec, e, est)
		if err != nil {
			return nil, err
		}
		params, err := b.Build()
		if err != nil {
			return nil, err
		}
		opts, err := Options(rec)
		if err != nil {
			return nil, err
		}
		var ref nacelle.Reference
		if e != nil {
			ref = e
		}
		n, err := nacelle.New(ref, params, opts...)
		if errors.Is(err, nacelle.ErrGeometryConstraint) {
			warns = append(warns, err)
		} else if err != nil {
			return nil, err
		}
		members = append(members, n)
	}
	ac.Nacelles = nacelle.NewCollection(members...)
	if len(warns) > 0 {
		return ac, &nacelle.ConstraintWarnings{Errs: warns}
	}
	return ac, nil
}
