package format

import (
	"fmt"

	"github.com/cwbudde/algo-bode/response"
)

// ReadFunc parses one export file into a response series.
type ReadFunc func(path string, opts ...Option) (*response.Series, error)

var readers = map[Kind]ReadFunc{}

// Register wires a reader implementation for kind. Reader subpackages
// call this from init; registering the same kind twice is a programming
// error and panics.
func Register(kind Kind, fn ReadFunc) {
	if kind == KindUnknown {
		panic("format registry: cannot register KindUnknown")
	}
	if fn == nil {
		panic("format registry: nil reader for " + kind.String())
	}
	if _, exists := readers[kind]; exists {
		panic("format registry: duplicate reader for " + kind.String())
	}
	readers[kind] = fn
}

// Read parses path with the reader registered for kind.
func Read(path string, kind Kind, opts ...Option) (*response.Series, error) {
	fn, ok := readers[kind]
	if !ok {
		return nil, fmt.Errorf("format: no reader registered for %s (missing import?)", kind)
	}
	return fn(path, opts...)
}
