package render

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/soypat/acgeom"
)

var csvHeader = []string{"id", "projection", "index", "x", "y"}

// WriteCSV writes the outlines of components in the given projections to
// w, one point per row, relative to each component apex. All four
// projections are written when none is given.
func WriteCSV(w io.Writer, components []acgeom.Outliner, projections ...acgeom.Projection) error {
	if len(projections) == 0 {
		projections = acgeom.Projections[:]
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, len(csvHeader))
	for _, c := range components {
		for _, p := range projections {
			for i, v := range c.Outline(p) {
				row[0] = c.ID()
				row[1] = p.String()
				row[2] = strconv.Itoa(i)
				row[3] = strconv.FormatFloat(v.X, 'g', -1, 64)
				row[4] = strconv.FormatFloat(v.Y, 'g', -1, 64)
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// CreateCSV writes the outlines to the file at path, as WriteCSV does.
func CreateCSV(path string, components []acgeom.Outliner, projections ...acgeom.Projection) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := WriteCSV(file, components, projections...); err != nil {
		return err
	}
	return file.Close()
}
