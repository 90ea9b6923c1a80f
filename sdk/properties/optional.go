package properties

// Optional holds a value that is either set or unset.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, set: true} }

// None returns an unset Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Set stores v and marks the Optional as set.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.set = true
}

// Clear marks the Optional as unset.
func (o *Optional[T]) Clear() { *o = Optional[T]{} }

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool { return o.set }

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// Or returns the value when set, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Combine returns second when it is set and first otherwise.
func Combine[T any](first, second Optional[T]) Optional[T] {
	if second.set {
		return second
	}
	return first
}
