// Package format identifies and dispatches the vendor export formats this
// module can read.
//
// Each vendor layout lives in its own subpackage (ltspice, siglent) and
// registers itself here, so reader logic stays free of heuristic
// branching: detection is a separate pre-pass producing a Kind, and Read
// dispatches on that Kind alone.
//
//	kind, err := format.Detect("bode_transfer.csv")
//	series, err := format.Read("bode_transfer.csv", kind)
//
// Importing a reader subpackage (directly or blank) makes its Kind
// readable through Read.
package format
