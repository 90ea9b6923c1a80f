package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gaspardpetit/harness/sdk/spi"
)

// Kind is the type tag of a parsed value.
type Kind int

const (
	KindBool Kind = iota + 1
	KindInt
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "absent"
	}
}

// Value is a single tagged parse result.
type Value struct {
	Kind Kind
	b    bool
	i    int
	s    string
	l    []string
}

func Bool(b bool) Value      { return Value{Kind: KindBool, b: b} }
func Int(i int) Value        { return Value{Kind: KindInt, i: i} }
func String(s string) Value  { return Value{Kind: KindString, s: s} }
func List(l ...string) Value { return Value{Kind: KindList, l: append([]string(nil), l...)} }

// Arguments is the immutable result of a successful parse, keyed by flag key.
type Arguments struct {
	values map[string]Value
}

var _ spi.Arguments = (*Arguments)(nil)

// NewArguments copies values into an Arguments set.
func NewArguments(values map[string]Value) *Arguments {
	a := &Arguments{values: make(map[string]Value, len(values))}
	for k, v := range values {
		a.values[k] = v
	}
	return a
}

func (a *Arguments) lookup(f *spi.Flag) (Value, error) {
	v, ok := a.values[f.Key]
	if !ok {
		return Value{}, &spi.ArgError{Key: f.Key, Err: spi.ErrNotFound}
	}
	return v, nil
}

func mismatch(f *spi.Flag, want string, got Value) error {
	return &spi.ArgError{Key: f.Key, Err: spi.ErrTypeMismatch, Detail: "want " + want + ", have " + got.Kind.String()}
}

// Contains reports whether the flag was matched. A false switch counts as absent.
func (a *Arguments) Contains(f *spi.Flag) bool {
	v, ok := a.values[f.Key]
	if !ok {
		return false
	}
	if v.Kind == KindBool {
		return v.b
	}
	return true
}

func (a *Arguments) Bool(f *spi.Flag) (bool, error) {
	v, err := a.lookup(f)
	if err != nil {
		return false, err
	}
	if v.Kind != KindBool {
		return false, mismatch(f, "bool", v)
	}
	return v.b, nil
}

func (a *Arguments) Int(f *spi.Flag) (int, error) {
	v, err := a.lookup(f)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case KindInt:
		return v.i, nil
	case KindString:
		n, err := strconv.Atoi(strings.TrimSpace(v.s))
		if err != nil {
			return 0, &spi.ArgError{Key: f.Key, Err: spi.ErrTypeMismatch, Detail: strconv.Quote(v.s) + " is not an integer"}
		}
		return n, nil
	default:
		return 0, mismatch(f, "int", v)
	}
}

func (a *Arguments) Float(f *spi.Flag) (float64, error) {
	v, err := a.lookup(f)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case KindInt:
		return float64(v.i), nil
	case KindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, &spi.ArgError{Key: f.Key, Err: spi.ErrTypeMismatch, Detail: strconv.Quote(v.s) + " is not a number"}
		}
		return n, nil
	default:
		return 0, mismatch(f, "float", v)
	}
}

func (a *Arguments) String(f *spi.Flag) (string, error) {
	v, err := a.lookup(f)
	if err != nil {
		return "", err
	}
	if v.Kind != KindString {
		return "", mismatch(f, "string", v)
	}
	return v.s, nil
}

func (a *Arguments) List(f *spi.Flag) ([]string, error) {
	v, err := a.lookup(f)
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case KindList:
		return append([]string(nil), v.l...), nil
	case KindString:
		return []string{v.s}, nil
	default:
		return nil, mismatch(f, "list", v)
	}
}

// Keys returns the matched keys in sorted order.
func (a *Arguments) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
