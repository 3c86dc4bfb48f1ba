package typeless

import "reflect"

// TypeGuard decides whether a typed access to a Vector is allowed.
type TypeGuard interface {
	// Init records t as the vector's element type.
	Init(t reflect.Type)
	// Compare reports whether t may be used to access elements.
	Compare(t reflect.Type) bool
	// Reset forgets the recorded type.
	Reset()
	// Type returns the recorded type, or nil when none is recorded.
	Type() reflect.Type
}

// NoCheck accepts every type. It is the default guard.
type NoCheck struct{}

func (NoCheck) Init(reflect.Type)         {}
func (NoCheck) Compare(reflect.Type) bool { return true }
func (NoCheck) Reset()                    {}
func (NoCheck) Type() reflect.Type        { return nil }

// RuntimeCheck only accepts the type recorded by the last Init.
// A vector initialized with InitRaw rejects every typed access.
type RuntimeCheck struct {
	sign reflect.Type // nil means unset
}

func (c *RuntimeCheck) Init(t reflect.Type) { c.sign = t }

func (c *RuntimeCheck) Compare(t reflect.Type) bool {
	return c.sign != nil && c.sign == t
}

func (c *RuntimeCheck) Reset() { c.sign = nil }

func (c *RuntimeCheck) Type() reflect.Type { return c.sign }
