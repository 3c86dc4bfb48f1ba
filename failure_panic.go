//go:build typeless_panic

package typeless

// PanicOnFailure reports whether failures panic (typeless_panic build tag)
// or are returned as errors alongside an absent result.
const PanicOnFailure = true

// fail panics with err. Callers still write `return fail(err)` so both
// builds share one code path.
func fail(err error) error {
	panic(err)
}
