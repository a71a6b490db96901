package format

import "fmt"

// FormatError reports a malformed or unrecognized file layout. Line is
// 1-based; it is 0 when the whole file fails structural expectations
// rather than a specific row. Column names the offending column when one
// can be identified.
type FormatError struct {
	Path   string
	Line   int
	Column string
	Msg    string
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("format: %s:%d: column %q: %s", e.Path, e.Line, e.Column, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("format: %s:%d: %s", e.Path, e.Line, e.Msg)
	case e.Column != "":
		return fmt.Sprintf("format: %s: column %q: %s", e.Path, e.Column, e.Msg)
	default:
		return fmt.Sprintf("format: %s: %s", e.Path, e.Msg)
	}
}

// RowError describes a single data row a reader could not use. Under the
// default fail-fast policy it is wrapped into the returned error; under
// skip-and-warn it is passed to the configured handler instead.
type RowError struct {
	Path string
	Line int // 1-based line number in the file
	Msg  string
}

func (e RowError) String() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}
