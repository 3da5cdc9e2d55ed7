// Package guard provides the constructor-guard pattern used by domain objects
// to ensure they are only created through their validating constructors.
// A zero-value guard fails validation, so a struct instantiated directly
// (bypassing its NewX constructor) is detectable at the first Validate call.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no custom error is
// supplied and the guarded object was not created via its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it as a
// field and initialize it with NewConstructorGuard inside the constructor.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil if the guard was created via NewConstructorGuard.
// Otherwise it returns notConstructed, or ErrDefaultConstructorGuard when
// notConstructed is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed != nil {
		return notConstructed
	}
	return ErrDefaultConstructorGuard
}
