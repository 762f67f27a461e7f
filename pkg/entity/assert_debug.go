//go:build debugassert

package entity

func debugAssert(ok bool, msg string) {
	if !ok {
		panic("entity: assertion failed: " + msg)
	}
}
