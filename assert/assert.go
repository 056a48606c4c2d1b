package assert

import "github.com/oomph-ac/pistonsim/oerror"

// IsTrue panics with a formatted message if ok is false. It guards internal invariants that can only be broken
// by a bug in this module, never by world contents.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
