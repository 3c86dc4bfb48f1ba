//go:build !typeless_panic

package typeless

// PanicOnFailure reports whether failures panic (typeless_panic build tag)
// or are returned as errors alongside an absent result.
const PanicOnFailure = false

func fail(err error) error {
	return err
}
