package spi

// Arguments is the read-only view of a parsed invocation.
//
// Accessors return an *ArgError wrapping ErrNotFound when the flag was not
// matched and ErrTypeMismatch when the matched value has another kind or
// cannot be converted. Guard with Contains before reading optional flags.
type Arguments interface {
	// Contains reports whether the flag was matched. A switch that parsed to
	// false counts as absent.
	Contains(f *Flag) bool
	Bool(f *Flag) (bool, error)
	Int(f *Flag) (int, error)
	Float(f *Flag) (float64, error)
	String(f *Flag) (string, error)
	// List returns the values of a many-value flag. A single string value is
	// returned as a one-element list.
	List(f *Flag) ([]string, error)
}
