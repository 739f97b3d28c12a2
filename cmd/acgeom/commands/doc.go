// Package commands implements the acgeom command line: reports, plots and
// outline exports of the components described in an aircraft XML file.
package commands
