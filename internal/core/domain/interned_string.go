package domain

import "unique"

// InternedString wraps a unique.Handle[string] so repeated values share one
// allocation. Analysis output repeats the same file path hundreds of times
// (one Issue per finding), and checkpoints repeat them again; interning keeps
// those to a single backing string and makes equality a pointer compare.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s and returns its handle.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	return is.h.Value()
}

// MarshalText implements encoding.TextMarshaler so interned file paths
// serialize as plain strings in checkpoints and reports.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.h.Value()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
