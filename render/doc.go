// Package render draws component outlines as top and side view plots and
// exports their coordinates as CSV.
package render
