package apps

// Variants is a spi.Configuration cycling through n configurations by index.
type Variants struct {
	n     int
	index int
	apply func(int)
}

// NewVariants applies configuration 0 and returns the cursor.
func NewVariants(n int, apply func(int)) *Variants {
	v := &Variants{n: n, apply: apply}
	if n > 0 {
		apply(0)
	}
	return v
}

// Next applies the following configuration. After the last one it wraps to
// the first and returns false.
func (v *Variants) Next() bool {
	if v.n == 0 {
		return false
	}
	v.index++
	if v.index >= v.n {
		v.index = 0
		v.apply(0)
		return false
	}
	v.apply(v.index)
	return true
}

// Reset applies the first configuration.
func (v *Variants) Reset() {
	v.index = 0
	if v.n > 0 {
		v.apply(0)
	}
}

func (v *Variants) Len() int { return v.n }

// Index returns the active configuration.
func (v *Variants) Index() int { return v.index }
