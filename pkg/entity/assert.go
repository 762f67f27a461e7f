//go:build !debugassert

package entity

// debugAssert is a no-op in release builds. The debugassert build tag turns
// failed assertions into panics.
func debugAssert(bool, string) {}
